package repository

import (
	"context"

	"github.com/sidompet/sidompet-api/internal/models"
	"gorm.io/gorm"
)

// ProfitShareRepository defines the interface for the distribution snapshot
type ProfitShareRepository interface {
	FindAll(ctx context.Context) ([]models.ProfitShare, error)
	ReplaceAll(ctx context.Context, shares []models.ProfitShare, expenseEntry *models.FinanceEntry) error
}

type profitShareRepository struct {
	db *gorm.DB
}

// NewProfitShareRepository creates a new profit share repository
func NewProfitShareRepository(db *gorm.DB) ProfitShareRepository {
	return &profitShareRepository{db: db}
}

func (r *profitShareRepository) FindAll(ctx context.Context) ([]models.ProfitShare, error) {
	var shares []models.ProfitShare
	err := r.db.WithContext(ctx).Order("id ASC").Find(&shares).Error
	return shares, err
}

// ReplaceAll swaps the whole snapshot and writes the distribution expense in
// one transaction. The snapshot is replaced, never appended: only the latest
// distribution is kept.
func (r *profitShareRepository) ReplaceAll(ctx context.Context, shares []models.ProfitShare, expenseEntry *models.FinanceEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ProfitShare{}).Error; err != nil {
			return err
		}
		if len(shares) > 0 {
			if err := tx.Create(&shares).Error; err != nil {
				return err
			}
		}
		if expenseEntry != nil {
			return tx.Create(expenseEntry).Error
		}
		return nil
	})
}
