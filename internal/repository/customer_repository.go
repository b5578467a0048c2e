package repository

import (
	"context"

	"github.com/sidompet/sidompet-api/internal/models"
	"gorm.io/gorm"
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Customer, int64, error)
	FindAll(ctx context.Context) ([]models.Customer, error)
	FindUnpaid(ctx context.Context) ([]models.Customer, error)
	Count(ctx context.Context) (int64, error)
	ApplyPayment(ctx context.Context, customer *models.Customer, entry *models.FinanceEntry) error
	StartNewCycle(ctx context.Context) error
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Customer{}, id).Error
}

func (r *customerRepository) List(ctx context.Context, query *ListQuery) ([]models.Customer, int64, error) {
	var customers []models.Customer
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Customer{})

	// Apply search
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR phone ILIKE ? OR address ILIKE ?", search, search, search)
	}

	// Apply subscription type filter
	if query.Filters["subscription_type"] != "" {
		db = db.Where("subscription_type = ?", query.Filters["subscription_type"])
	}

	// Apply status filter
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	// Count total
	db.Count(&total)

	// Apply sorting
	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("name ASC")
	}

	// Apply pagination
	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&customers).Error
	return customers, total, err
}

func (r *customerRepository) FindAll(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).Order("id ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) FindUnpaid(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("status = ?", models.CustomerStatusUnpaid).
		Order("name ASC").
		Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&total).Error
	return total, err
}

// ApplyPayment persists a payment in one transaction: the customer flips to
// paid with arrears cleared and the income entry lands in the ledger. Neither
// change is ever observed without the other.
func (r *customerRepository) ApplyPayment(ctx context.Context, customer *models.Customer, entry *models.FinanceEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Model(&models.Customer{}).
			Where("id = ?", customer.ID).
			Updates(map[string]interface{}{
				"status":  customer.Status,
				"arrears": customer.Arrears,
			}).Error
	})
}

// StartNewCycle rolls the whole roster into a new billing cycle: unpaid
// customers accumulate their monthly fee as arrears, then everyone is reset
// to unpaid. Runs as one transaction so a partial rollover cannot happen.
func (r *customerRepository) StartNewCycle(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Customer{}).
			Where("status = ?", models.CustomerStatusUnpaid).
			Update("arrears", gorm.Expr("arrears + price")).Error; err != nil {
			return err
		}
		return tx.Model(&models.Customer{}).
			Where("1 = 1").
			Update("status", models.CustomerStatusUnpaid).Error
	})
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}
