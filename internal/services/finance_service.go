package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
	"gorm.io/gorm"
)

// FinanceService handles manual ledger entries: the bookkeeping rows typed in
// by hand, as opposed to the synthetic ones written by billing, reserve and
// profit-sharing operations.
type FinanceService struct {
	financeRepo repository.FinanceRepository
}

// NewFinanceService creates a new finance service
func NewFinanceService(financeRepo repository.FinanceRepository) *FinanceService {
	return &FinanceService{financeRepo: financeRepo}
}

// EntryInput holds the editable ledger entry fields
type EntryInput struct {
	Description string  `json:"description" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Method      string  `json:"method" binding:"required"`
	Amount      float64 `json:"amount"`
}

func (in *EntryInput) toEntry() (*models.FinanceEntry, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !models.ValidCategory(in.Category) {
		return nil, fmt.Errorf("invalid category %q", in.Category)
	}
	if !models.ValidMethod(in.Method) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, in.Method)
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", in.Date)
	}

	return &models.FinanceEntry{
		Description: in.Description,
		Date:        date,
		Category:    in.Category,
		Method:      in.Method,
		Amount:      in.Amount,
	}, nil
}

// Create appends a manual entry to the ledger
func (s *FinanceService) Create(ctx context.Context, in *EntryInput) (*models.FinanceEntry, error) {
	entry, err := in.toEntry()
	if err != nil {
		return nil, err
	}
	if err := s.financeRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update replaces all fields of an existing entry
func (s *FinanceService) Update(ctx context.Context, id uint, in *EntryInput) (*models.FinanceEntry, error) {
	existing, err := s.financeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updated, err := in.toEntry()
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.financeRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an entry from the ledger
func (s *FinanceService) Delete(ctx context.Context, id uint) error {
	if _, err := s.financeRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.financeRepo.Delete(ctx, id)
}

// List returns ledger entries, optionally restricted to a date range
func (s *FinanceService) List(ctx context.Context, startDate, endDate string) ([]models.FinanceEntry, error) {
	if startDate == "" && endDate == "" {
		return s.financeRepo.FindAll(ctx)
	}

	start := time.Time{}
	end := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	var err error

	if startDate != "" {
		start, err = time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q", startDate)
		}
	}
	if endDate != "" {
		end, err = time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q", endDate)
		}
	}

	return s.financeRepo.FindByDateRange(ctx, start, end)
}

// NetBalance returns total income minus total expense across the ledger
func (s *FinanceService) NetBalance(ctx context.Context) (float64, error) {
	return s.financeRepo.NetBalance(ctx)
}
