package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sidompet/sidompet-api/internal/jobs"
	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBillingFixture(t *testing.T) (*BillingService, *fakeCustomerRepo, *fakeFinanceRepo) {
	t.Helper()
	customerRepo := newFakeCustomerRepo()
	financeRepo := &fakeFinanceRepo{}
	whatsappSvc := NewWhatsAppService(&fakeCompanyRepo{}, "62")
	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	return NewBillingService(customerRepo, financeRepo, whatsappSvc, worker), customerRepo, financeRepo
}

func TestRecordPayment(t *testing.T) {
	svc, customerRepo, _ := newBillingFixture(t)

	c := customerRepo.add(models.Customer{
		Name:             "Budi Santoso",
		Phone:            "081234567890",
		SubscriptionType: models.SubscriptionPPPoE,
		Price:            150000,
		Arrears:          300000,
		Status:           models.CustomerStatusUnpaid,
	})

	customer, entry, err := svc.RecordPayment(context.Background(), c.ID, models.MethodCash)
	require.NoError(t, err)

	assert.Equal(t, models.CustomerStatusPaid, customer.Status)
	assert.Equal(t, float64(0), customer.Arrears)

	// Entry settles price plus arrears in one line
	assert.Equal(t, float64(450000), entry.Amount)
	assert.Equal(t, models.CategoryIncome, entry.Category)
	assert.Equal(t, models.MethodCash, entry.Method)
	assert.Equal(t, "Subscription payment - Budi Santoso", entry.Description)

	// Persisted through the transactional path
	require.Len(t, customerRepo.applied, 1)
	stored, err := customerRepo.FindByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CustomerStatusPaid, stored.Status)
}

func TestRecordPaymentAlreadyPaid(t *testing.T) {
	svc, customerRepo, _ := newBillingFixture(t)

	c := customerRepo.add(models.Customer{
		Name:   "Siti Aminah",
		Price:  100000,
		Status: models.CustomerStatusPaid,
	})

	_, _, err := svc.RecordPayment(context.Background(), c.ID, models.MethodTransfer)
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Empty(t, customerRepo.applied)
}

func TestRecordPaymentInvalidMethod(t *testing.T) {
	svc, customerRepo, _ := newBillingFixture(t)

	c := customerRepo.add(models.Customer{
		Name:   "Joko",
		Price:  100000,
		Status: models.CustomerStatusUnpaid,
	})

	for _, method := range []string{"", "check", models.MethodInternal} {
		_, _, err := svc.RecordPayment(context.Background(), c.ID, method)
		assert.ErrorIs(t, err, ErrInvalidMethod, "method %q", method)
	}
}

func TestRecordPaymentNotFound(t *testing.T) {
	svc, _, _ := newBillingFixture(t)

	_, _, err := svc.RecordPayment(context.Background(), 999, models.MethodCash)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordPaymentLookupErrorPassesThrough(t *testing.T) {
	svc, customerRepo, _ := newBillingFixture(t)

	lookupErr := errors.New("connection reset")
	customerRepo.findErr = lookupErr

	_, _, err := svc.RecordPayment(context.Background(), 1, models.MethodCash)
	assert.ErrorIs(t, err, lookupErr)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRunBillingCycleEmptyRoster(t *testing.T) {
	svc, _, _ := newBillingFixture(t)

	_, err := svc.RunBillingCycle(context.Background())
	assert.ErrorIs(t, err, ErrEmptyRoster)
}

func TestRunBillingCycle(t *testing.T) {
	svc, customerRepo, _ := newBillingFixture(t)

	paid := customerRepo.add(models.Customer{
		Name: "Lunas", Price: 100000, Status: models.CustomerStatusPaid,
	})
	unpaid := customerRepo.add(models.Customer{
		Name: "Nunggak", Price: 150000, Arrears: 150000, Status: models.CustomerStatusUnpaid,
	})

	count, err := svc.RunBillingCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Paid customer resets clean; unpaid customer accrues another month
	after, _ := customerRepo.FindByID(context.Background(), paid.ID)
	assert.Equal(t, models.CustomerStatusUnpaid, after.Status)
	assert.Equal(t, float64(0), after.Arrears)

	after, _ = customerRepo.FindByID(context.Background(), unpaid.ID)
	assert.Equal(t, models.CustomerStatusUnpaid, after.Status)
	assert.Equal(t, float64(300000), after.Arrears)
}

func TestUnpaidSummary(t *testing.T) {
	svc, customerRepo, _ := newBillingFixture(t)

	customerRepo.add(models.Customer{Name: "A", Price: 100000, Status: models.CustomerStatusPaid})
	customerRepo.add(models.Customer{Name: "B", Price: 150000, Arrears: 150000, Status: models.CustomerStatusUnpaid})
	customerRepo.add(models.Customer{Name: "C", Price: 200000, Status: models.CustomerStatusUnpaid})

	count, total, err := svc.UnpaidSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, float64(500000), total)
}
