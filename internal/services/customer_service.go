package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
	"gorm.io/gorm"
)

// CustomerService handles roster CRUD. Billing-state mutations live in
// BillingService; edits here never touch status or arrears.
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput holds the editable customer fields
type CustomerInput struct {
	Name             string  `json:"name" binding:"required"`
	Phone            string  `json:"phone"`
	SubscriptionType string  `json:"subscription_type" binding:"required"`
	Address          string  `json:"address"`
	Price            float64 `json:"price"`
}

func (in *CustomerInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name is required")
	}
	if !models.ValidSubscriptionType(in.SubscriptionType) {
		return fmt.Errorf("invalid subscription type %q", in.SubscriptionType)
	}
	if in.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// Create registers a new customer. New customers always start the cycle
// unpaid with zero arrears.
func (s *CustomerService) Create(ctx context.Context, in *CustomerInput) (*models.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:             strings.TrimSpace(in.Name),
		Phone:            strings.TrimSpace(in.Phone),
		SubscriptionType: in.SubscriptionType,
		Address:          in.Address,
		Price:            in.Price,
		Status:           models.CustomerStatusUnpaid,
		Arrears:          0,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Update edits a customer in place, preserving id, status and arrears
func (s *CustomerService) Update(ctx context.Context, id uint, in *CustomerInput) (*models.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	customer.Name = strings.TrimSpace(in.Name)
	customer.Phone = strings.TrimSpace(in.Phone)
	customer.SubscriptionType = in.SubscriptionType
	customer.Address = in.Address
	customer.Price = in.Price

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Get returns a single customer
func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer permanently
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

// List returns a filtered, paginated page of the roster
func (s *CustomerService) List(ctx context.Context, query *repository.ListQuery) ([]models.Customer, int64, error) {
	return s.customerRepo.List(ctx, query)
}
