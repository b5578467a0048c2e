package models

import (
	"time"
)

// CompanyInfo is the single-row settings document: identity printed on
// invoices, bank account shown in billing reminders, and the optional
// WhatsApp gateway used for payment confirmations.
type CompanyInfo struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	BankName       string    `json:"bank_name"`
	AccountNumber  string    `json:"account_number"`
	AccountHolder  string    `json:"account_holder"`
	WAGatewayURL   string    `gorm:"column:wa_gateway_url" json:"wa_gateway_url"`
	WAGatewayToken string    `gorm:"column:wa_gateway_token" json:"wa_gateway_token"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for CompanyInfo
func (CompanyInfo) TableName() string {
	return "company_infos"
}

// HasGateway returns true when the WhatsApp gateway is fully configured
func (c *CompanyInfo) HasGateway() bool {
	return c.WAGatewayURL != "" && c.WAGatewayToken != ""
}

// HasBankAccount returns true when all bank details are filled in
func (c *CompanyInfo) HasBankAccount() bool {
	return c.BankName != "" && c.AccountNumber != "" && c.AccountHolder != ""
}
