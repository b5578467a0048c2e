package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
	"github.com/sidompet/sidompet-api/pkg/logger"
)

// ReserveService moves money between the main ledger and the reserve cash
// pool. Every transfer is a two-part update (ledger entry plus balance delta)
// applied in a single transaction.
type ReserveService struct {
	reserveRepo repository.ReserveRepository
	financeRepo repository.FinanceRepository
	mu          sync.Mutex
}

// NewReserveService creates a new reserve service
func NewReserveService(reserveRepo repository.ReserveRepository, financeRepo repository.FinanceRepository) *ReserveService {
	return &ReserveService{
		reserveRepo: reserveRepo,
		financeRepo: financeRepo,
	}
}

// Balance returns the current reserve balance
func (s *ReserveService) Balance(ctx context.Context) (float64, error) {
	reserve, err := s.reserveRepo.Get(ctx)
	if err != nil {
		return 0, err
	}
	return reserve.Balance, nil
}

// History returns the ledger entries produced by reserve transfers, newest first
func (s *ReserveService) History(ctx context.Context) ([]models.FinanceEntry, error) {
	return s.financeRepo.FindByDescription(ctx, "Reserve Cash")
}

// Deposit moves amount from the main balance into the reserve pool. The move
// is recorded as an internal expense entry so the net balance drops by the
// same amount the reserve gains.
func (s *ReserveService) Deposit(ctx context.Context, amount float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateAmount(amount); err != nil {
		return 0, err
	}

	netBalance, err := s.financeRepo.NetBalance(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to compute net balance: %w", err)
	}
	if amount > netBalance {
		return 0, ErrInsufficientBalance
	}

	entry := &models.FinanceEntry{
		Description: models.DescriptionReserveDeposit,
		Date:        today(),
		Category:    models.CategoryExpense,
		Method:      models.MethodInternal,
		Amount:      amount,
	}

	if err := s.reserveRepo.ApplyTransfer(ctx, entry, amount); err != nil {
		return 0, fmt.Errorf("failed to apply reserve deposit: %w", err)
	}

	reserve, err := s.reserveRepo.Get(ctx)
	if err != nil {
		return 0, err
	}

	logger.Info("Reserve deposit recorded", "amount", amount, "reserve", reserve.Balance)
	return reserve.Balance, nil
}

// Withdraw moves amount from the reserve pool back into the main balance,
// recorded as an internal income entry.
func (s *ReserveService) Withdraw(ctx context.Context, amount float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateAmount(amount); err != nil {
		return 0, err
	}

	reserve, err := s.reserveRepo.Get(ctx)
	if err != nil {
		return 0, err
	}
	if amount > reserve.Balance {
		return 0, ErrInsufficientReserve
	}

	entry := &models.FinanceEntry{
		Description: models.DescriptionReserveWithdraw,
		Date:        today(),
		Category:    models.CategoryIncome,
		Method:      models.MethodInternal,
		Amount:      amount,
	}

	if err := s.reserveRepo.ApplyTransfer(ctx, entry, -amount); err != nil {
		return 0, fmt.Errorf("failed to apply reserve withdrawal: %w", err)
	}

	logger.Info("Reserve withdrawal recorded", "amount", amount, "reserve", reserve.Balance-amount)
	return reserve.Balance - amount, nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
