package models

import (
	"time"
)

// FinanceEntry is a single row in the company ledger. Entries are append-only:
// every payment, reserve transfer and profit distribution writes one, and only
// an explicit edit or delete ever changes them afterwards.
type FinanceEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"not null" json:"description"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Category    string    `gorm:"not null;index" json:"category"`
	Method      string    `gorm:"not null" json:"method"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for FinanceEntry
func (FinanceEntry) TableName() string {
	return "finance_entries"
}

// Entry category constants
const (
	CategoryIncome  = "income"
	CategoryExpense = "expense"
)

// Payment method constants. Internal marks reserve transfers that move money
// between the main balance and the reserve pool without touching a real account.
const (
	MethodTransfer = "transfer"
	MethodCash     = "cash"
	MethodInternal = "internal"
)

// Synthetic entry descriptions written by the billing, reserve and
// profit-sharing services. The report categorizer keys off these strings.
const (
	DescriptionReserveDeposit  = "Transfer to Reserve Cash"
	DescriptionReserveWithdraw = "Withdraw from Reserve Cash"
)

// ValidCategory reports whether c is income or expense
func ValidCategory(c string) bool {
	return c == CategoryIncome || c == CategoryExpense
}

// ValidMethod reports whether m is a known payment method
func ValidMethod(m string) bool {
	switch m {
	case MethodTransfer, MethodCash, MethodInternal:
		return true
	}
	return false
}

// IsIncome returns true for income entries
func (e *FinanceEntry) IsIncome() bool {
	return e.Category == CategoryIncome
}

// Signed returns the amount with income positive and expense negative
func (e *FinanceEntry) Signed() float64 {
	if e.IsIncome() {
		return e.Amount
	}
	return -e.Amount
}

// FinanceEntryResponse is the JSON response format for ledger entries
type FinanceEntryResponse struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Category    string    `json:"category"`
	Method      string    `json:"method"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts FinanceEntry to FinanceEntryResponse
func (e *FinanceEntry) ToResponse() FinanceEntryResponse {
	return FinanceEntryResponse{
		ID:          e.ID,
		Description: e.Description,
		Date:        e.Date.Format("2006-01-02"),
		Category:    e.Category,
		Method:      e.Method,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
	}
}
