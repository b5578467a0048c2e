package models

import (
	"time"
)

// ProfitShare is one member's cut of a profit distribution. The table holds
// exactly one snapshot: each new distribution replaces all previous rows.
type ProfitShare struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	MemberName     string    `gorm:"not null" json:"member_name"`
	AmountReceived float64   `gorm:"type:decimal(15,2);not null" json:"amount_received"`
	DistributedAt  time.Time `gorm:"not null" json:"distributed_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName specifies the table name for ProfitShare
func (ProfitShare) TableName() string {
	return "profit_shares"
}

// ReserveBalance is the single-row reserve cash pool. Only the two reserve
// transfer operations mutate it, always together with a ledger entry.
type ReserveBalance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Balance   float64   `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for ReserveBalance
func (ReserveBalance) TableName() string {
	return "reserve_balances"
}
