package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sidompet/sidompet-api/internal/jobs"
	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
	"github.com/sidompet/sidompet-api/internal/statemachine"
	"github.com/sidompet/sidompet-api/pkg/logger"
	"gorm.io/gorm"
)

// BillingService records subscription payments and runs billing-cycle
// rollovers. Mutations are serialized with a single-writer lock: payments and
// cycle rollovers never interleave.
type BillingService struct {
	customerRepo repository.CustomerRepository
	financeRepo  repository.FinanceRepository
	whatsappSvc  *WhatsAppService
	worker       *jobs.Worker
	mu           sync.Mutex
}

// NewBillingService creates a new billing service
func NewBillingService(
	customerRepo repository.CustomerRepository,
	financeRepo repository.FinanceRepository,
	whatsappSvc *WhatsAppService,
	worker *jobs.Worker,
) *BillingService {
	return &BillingService{
		customerRepo: customerRepo,
		financeRepo:  financeRepo,
		whatsappSvc:  whatsappSvc,
		worker:       worker,
	}
}

// RecordPayment settles a customer's current cycle: the full amount due
// (monthly fee plus arrears) is written to the ledger as income, the customer
// flips to paid with arrears cleared, and a confirmation is dispatched
// fire-and-forget after the transaction commits.
func (s *BillingService) RecordPayment(ctx context.Context, customerID uint, method string) (*models.Customer, *models.FinanceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	// Internal is reserved for reserve transfers
	if !models.ValidMethod(method) || method == models.MethodInternal {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	totalDue := customer.TotalDue()

	bfsm := statemachine.NewBillingFSM(customer)
	if err := bfsm.Pay(ctx); err != nil {
		return nil, nil, ErrAlreadyPaid
	}

	entry := &models.FinanceEntry{
		Description: fmt.Sprintf("Subscription payment - %s", customer.Name),
		Date:        today(),
		Category:    models.CategoryIncome,
		Method:      method,
		Amount:      totalDue,
	}

	if err := s.customerRepo.ApplyPayment(ctx, customer, entry); err != nil {
		return nil, nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	logger.Info("Payment recorded", "customer", customer.Name, "amount", totalDue, "method", method)

	// Notification runs detached; its outcome never reaches the caller
	notifyCustomer := *customer
	s.worker.EnqueueAsync(func(jobCtx context.Context) error {
		return s.whatsappSvc.SendPaymentConfirmation(jobCtx, &notifyCustomer, totalDue)
	})

	return customer, entry, nil
}

// RunBillingCycle rolls every customer into a new cycle: still-unpaid
// customers carry their monthly fee forward as arrears, then the whole roster
// resets to unpaid. The rollover is atomic across the roster.
func (s *BillingService) RunBillingCycle(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total, err := s.customerRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	if total == 0 {
		return 0, ErrEmptyRoster
	}

	if err := s.customerRepo.StartNewCycle(ctx); err != nil {
		return 0, fmt.Errorf("failed to start new billing cycle: %w", err)
	}

	logger.Info("Billing cycle started", "customers", total)
	return total, nil
}

// UnpaidSummary reports how many customers still owe money and the total
// outstanding amount. Logged by the daily scheduled job.
func (s *BillingService) UnpaidSummary(ctx context.Context) (int, float64, error) {
	unpaid, err := s.customerRepo.FindUnpaid(ctx)
	if err != nil {
		return 0, 0, err
	}

	var outstanding float64
	for i := range unpaid {
		outstanding += unpaid[i].TotalDue()
	}
	return len(unpaid), outstanding, nil
}

// today returns the current date truncated to midnight UTC, matching the
// date-only column type.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
