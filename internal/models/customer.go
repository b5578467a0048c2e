package models

import (
	"time"
)

// Customer represents a subscriber billed once per cycle
type Customer struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Phone            string    `json:"phone"`
	SubscriptionType string    `gorm:"default:pppoe;not null;index" json:"subscription_type"`
	Address          string    `json:"address"`
	Price            float64   `gorm:"type:decimal(15,2);not null" json:"price"`
	Status           string    `gorm:"default:unpaid;not null;index" json:"status"`
	Arrears          float64   `gorm:"type:decimal(15,2);not null;default:0" json:"arrears"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// Customer status constants
const (
	CustomerStatusPaid   = "paid"
	CustomerStatusUnpaid = "unpaid"
)

// Subscription type constants
const (
	SubscriptionPPPoE          = "pppoe"
	SubscriptionStatic         = "static"
	SubscriptionHotspot        = "hotspot"
	SubscriptionVoucherPartner = "voucher_partner"
)

// ValidSubscriptionType reports whether t is one of the known subscription types
func ValidSubscriptionType(t string) bool {
	switch t {
	case SubscriptionPPPoE, SubscriptionStatic, SubscriptionHotspot, SubscriptionVoucherPartner:
		return true
	}
	return false
}

// TotalDue returns the amount owed for the current cycle: monthly fee plus
// arrears carried over from previous cycles.
func (c *Customer) TotalDue() float64 {
	return c.Price + c.Arrears
}

// MayPay returns true if a payment can be recorded for this customer
func (c *Customer) MayPay() bool {
	return c.Status == CustomerStatusUnpaid
}

// IsPaid returns true if the customer settled the current cycle
func (c *Customer) IsPaid() bool {
	return c.Status == CustomerStatusPaid
}

// CustomerResponse is the JSON response format for customers
type CustomerResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	SubscriptionType string    `json:"subscription_type"`
	Address          string    `json:"address"`
	Price            float64   `json:"price"`
	Status           string    `json:"status"`
	Arrears          float64   `json:"arrears"`
	TotalDue         float64   `json:"total_due"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToResponse converts Customer to CustomerResponse
func (c *Customer) ToResponse() CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Phone:            c.Phone,
		SubscriptionType: c.SubscriptionType,
		Address:          c.Address,
		Price:            c.Price,
		Status:           c.Status,
		Arrears:          c.Arrears,
		TotalDue:         c.TotalDue(),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
