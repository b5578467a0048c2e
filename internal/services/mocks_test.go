package services

import (
	"context"
	"strings"
	"time"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes shared across the service tests.

type fakeCustomerRepo struct {
	customers map[uint]*models.Customer
	applied   []models.FinanceEntry
	nextID    uint
	findErr   error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uint]*models.Customer)}
}

func (f *fakeCustomerRepo) add(c models.Customer) *models.Customer {
	f.nextID++
	c.ID = f.nextID
	f.customers[c.ID] = &c
	return &c
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	c, ok := f.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	f.nextID++
	customer.ID = f.nextID
	copied := *customer
	f.customers[customer.ID] = &copied
	return nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	if _, ok := f.customers[customer.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *customer
	f.customers[customer.ID] = &copied
	return nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id uint) error {
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.Customer, int64, error) {
	all, _ := f.FindAll(ctx)
	return all, int64(len(all)), nil
}

func (f *fakeCustomerRepo) FindAll(ctx context.Context) ([]models.Customer, error) {
	result := make([]models.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		result = append(result, *c)
	}
	return result, nil
}

func (f *fakeCustomerRepo) FindUnpaid(ctx context.Context) ([]models.Customer, error) {
	var result []models.Customer
	for _, c := range f.customers {
		if c.Status == models.CustomerStatusUnpaid {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (f *fakeCustomerRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.customers)), nil
}

func (f *fakeCustomerRepo) ApplyPayment(ctx context.Context, customer *models.Customer, entry *models.FinanceEntry) error {
	copied := *customer
	f.customers[customer.ID] = &copied
	f.applied = append(f.applied, *entry)
	return nil
}

func (f *fakeCustomerRepo) StartNewCycle(ctx context.Context) error {
	for _, c := range f.customers {
		if c.Status == models.CustomerStatusUnpaid {
			c.Arrears += c.Price
		}
		c.Status = models.CustomerStatusUnpaid
	}
	return nil
}

type fakeFinanceRepo struct {
	entries []models.FinanceEntry
	nextID  uint
}

func (f *fakeFinanceRepo) FindByID(ctx context.Context, id uint) (*models.FinanceEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			copied := f.entries[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFinanceRepo) Create(ctx context.Context, entry *models.FinanceEntry) error {
	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeFinanceRepo) Update(ctx context.Context, entry *models.FinanceEntry) error {
	for i := range f.entries {
		if f.entries[i].ID == entry.ID {
			f.entries[i] = *entry
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeFinanceRepo) Delete(ctx context.Context, id uint) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeFinanceRepo) FindAll(ctx context.Context) ([]models.FinanceEntry, error) {
	return append([]models.FinanceEntry(nil), f.entries...), nil
}

func (f *fakeFinanceRepo) FindByDateRange(ctx context.Context, start, end time.Time) ([]models.FinanceEntry, error) {
	var result []models.FinanceEntry
	for _, e := range f.entries {
		if !e.Date.Before(start) && !e.Date.After(end) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeFinanceRepo) FindByDescription(ctx context.Context, keyword string) ([]models.FinanceEntry, error) {
	var result []models.FinanceEntry
	for _, e := range f.entries {
		if strings.Contains(strings.ToLower(e.Description), strings.ToLower(keyword)) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeFinanceRepo) NetBalance(ctx context.Context) (float64, error) {
	var net float64
	for _, e := range f.entries {
		net += e.Signed()
	}
	return net, nil
}

type fakeReserveRepo struct {
	balance   float64
	transfers []models.FinanceEntry

	// Mirrors the real ApplyTransfer, which lands the entry in the ledger
	// and the balance delta together
	financeRepo *fakeFinanceRepo
}

func (f *fakeReserveRepo) Get(ctx context.Context) (*models.ReserveBalance, error) {
	return &models.ReserveBalance{Balance: f.balance}, nil
}

func (f *fakeReserveRepo) ApplyTransfer(ctx context.Context, entry *models.FinanceEntry, delta float64) error {
	f.transfers = append(f.transfers, *entry)
	f.balance += delta
	if f.financeRepo != nil {
		return f.financeRepo.Create(ctx, entry)
	}
	return nil
}

type fakeProfitShareRepo struct {
	shares []models.ProfitShare
	entry  *models.FinanceEntry
}

func (f *fakeProfitShareRepo) FindAll(ctx context.Context) ([]models.ProfitShare, error) {
	return append([]models.ProfitShare(nil), f.shares...), nil
}

func (f *fakeProfitShareRepo) ReplaceAll(ctx context.Context, shares []models.ProfitShare, expenseEntry *models.FinanceEntry) error {
	f.shares = append([]models.ProfitShare(nil), shares...)
	copied := *expenseEntry
	f.entry = &copied
	return nil
}

type fakeCompanyRepo struct {
	info models.CompanyInfo
}

func (f *fakeCompanyRepo) Get(ctx context.Context) (*models.CompanyInfo, error) {
	copied := f.info
	return &copied, nil
}

func (f *fakeCompanyRepo) Save(ctx context.Context, info *models.CompanyInfo) error {
	f.info = *info
	return nil
}

// fakeBackupRepo models the all-or-nothing restore: on error nothing is
// applied, on success every table swaps.
type fakeBackupRepo struct {
	customerRepo *fakeCustomerRepo
	financeRepo  *fakeFinanceRepo
	reserveRepo  *fakeReserveRepo
	companyRepo  *fakeCompanyRepo
	restoreErr   error
}

func (f *fakeBackupRepo) Restore(ctx context.Context, set *repository.RestoreSet) error {
	if f.restoreErr != nil {
		return f.restoreErr
	}

	f.customerRepo.customers = make(map[uint]*models.Customer)
	for i := range set.Customers {
		copied := set.Customers[i]
		f.customerRepo.customers[copied.ID] = &copied
	}

	f.financeRepo.entries = append([]models.FinanceEntry(nil), set.FinanceHistory...)

	if set.ReserveBalance != nil {
		f.reserveRepo.balance = *set.ReserveBalance
	}

	if set.CompanyInfo != nil {
		info := *set.CompanyInfo
		info.ID = f.companyRepo.info.ID
		f.companyRepo.info = info
	}

	return nil
}
