package repository

import (
	"context"
	"errors"

	"github.com/sidompet/sidompet-api/internal/models"
	"gorm.io/gorm"
)

// ReserveRepository defines the interface for the reserve cash pool
type ReserveRepository interface {
	Get(ctx context.Context) (*models.ReserveBalance, error)
	ApplyTransfer(ctx context.Context, entry *models.FinanceEntry, delta float64) error
}

type reserveRepository struct {
	db *gorm.DB
}

// NewReserveRepository creates a new reserve repository
func NewReserveRepository(db *gorm.DB) ReserveRepository {
	return &reserveRepository{db: db}
}

// Get returns the single reserve row, creating it at zero on first use
func (r *reserveRepository) Get(ctx context.Context) (*models.ReserveBalance, error) {
	var reserve models.ReserveBalance
	err := r.db.WithContext(ctx).First(&reserve).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		reserve = models.ReserveBalance{Balance: 0}
		if err := r.db.WithContext(ctx).Create(&reserve).Error; err != nil {
			return nil, err
		}
		return &reserve, nil
	}
	if err != nil {
		return nil, err
	}
	return &reserve, nil
}

// ApplyTransfer records a reserve movement in one transaction: the ledger
// entry and the balance delta land together or not at all.
func (r *reserveRepository) ApplyTransfer(ctx context.Context, entry *models.FinanceEntry, delta float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		res := tx.Model(&models.ReserveBalance{}).
			Where("1 = 1").
			Update("balance", gorm.Expr("balance + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Create(&models.ReserveBalance{Balance: delta}).Error
		}
		return nil
	})
}
