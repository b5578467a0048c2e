package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
	"github.com/sidompet/sidompet-api/pkg/logger"
)

// ProfitSharingService distributes the current net balance across a member
// roster. Each distribution replaces the previous snapshot entirely and
// debits the full balance as one expense entry.
type ProfitSharingService struct {
	profitShareRepo repository.ProfitShareRepository
	financeRepo     repository.FinanceRepository
	mu              sync.Mutex
}

// NewProfitSharingService creates a new profit sharing service
func NewProfitSharingService(profitShareRepo repository.ProfitShareRepository, financeRepo repository.FinanceRepository) *ProfitSharingService {
	return &ProfitSharingService{
		profitShareRepo: profitShareRepo,
		financeRepo:     financeRepo,
	}
}

// Snapshot returns the current distribution snapshot
func (s *ProfitSharingService) Snapshot(ctx context.Context) ([]models.ProfitShare, error) {
	return s.profitShareRepo.FindAll(ctx)
}

// Distribute splits the current net balance evenly across members. The share
// is plain float division with no rounding; only display formatting rounds.
// The snapshot replacement and the expense entry land in one transaction.
func (s *ProfitSharingService) Distribute(ctx context.Context, members []string) ([]models.ProfitShare, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(members))
	for _, m := range members {
		if name := strings.TrimSpace(m); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, ErrNoMembers
	}

	netBalance, err := s.financeRepo.NetBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute net balance: %w", err)
	}
	if netBalance <= 0 {
		return nil, ErrInsufficientBalance
	}

	share := netBalance / float64(len(names))
	now := time.Now()

	shares := make([]models.ProfitShare, 0, len(names))
	for _, name := range names {
		shares = append(shares, models.ProfitShare{
			MemberName:     name,
			AmountReceived: share,
			DistributedAt:  now,
		})
	}

	entry := &models.FinanceEntry{
		Description: fmt.Sprintf("Profit-sharing to %d members", len(names)),
		Date:        today(),
		Category:    models.CategoryExpense,
		Method:      models.MethodTransfer,
		Amount:      netBalance,
	}

	if err := s.profitShareRepo.ReplaceAll(ctx, shares, entry); err != nil {
		return nil, fmt.Errorf("failed to record distribution: %w", err)
	}

	logger.Info("Profit distributed", "members", len(names), "total", netBalance, "share", share)
	return shares, nil
}
