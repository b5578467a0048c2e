package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
)

// CompanyService manages the single company settings row used on invoices,
// reports and outbound WhatsApp messages.
type CompanyService struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// CompanyInput holds the editable company settings
type CompanyInput struct {
	Name           string `json:"name" binding:"required"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	BankName       string `json:"bank_name"`
	AccountNumber  string `json:"account_number"`
	AccountHolder  string `json:"account_holder"`
	WAGatewayURL   string `json:"wa_gateway_url"`
	WAGatewayToken string `json:"wa_gateway_token"`
}

// Get returns the company settings, creating an empty row on first access
func (s *CompanyService) Get(ctx context.Context) (*models.CompanyInfo, error) {
	return s.companyRepo.Get(ctx)
}

// Update overwrites the company settings
func (s *CompanyService) Update(ctx context.Context, in *CompanyInput) (*models.CompanyInfo, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errors.New("company name is required")
	}

	info, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	info.Name = strings.TrimSpace(in.Name)
	info.Address = in.Address
	info.Phone = in.Phone
	info.BankName = in.BankName
	info.AccountNumber = in.AccountNumber
	info.AccountHolder = in.AccountHolder
	info.WAGatewayURL = strings.TrimSpace(in.WAGatewayURL)
	info.WAGatewayToken = strings.TrimSpace(in.WAGatewayToken)

	if err := s.companyRepo.Save(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}
