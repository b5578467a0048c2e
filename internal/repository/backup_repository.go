package repository

import (
	"context"
	"errors"

	"github.com/sidompet/sidompet-api/internal/models"
	"gorm.io/gorm"
)

// RestoreSet is the validated content of a backup about to be applied.
// ReserveBalance and CompanyInfo are optional; nil leaves the current value
// untouched.
type RestoreSet struct {
	Customers      []models.Customer
	FinanceHistory []models.FinanceEntry
	ReserveBalance *float64
	CompanyInfo    *models.CompanyInfo
}

// BackupRepository applies a full dataset restore
type BackupRepository interface {
	Restore(ctx context.Context, set *RestoreSet) error
}

type backupRepository struct {
	db *gorm.DB
}

// NewBackupRepository creates a new backup repository
func NewBackupRepository(db *gorm.DB) BackupRepository {
	return &backupRepository{db: db}
}

// Restore swaps the roster and the ledger, and overwrites the reserve balance
// and company settings when present. Everything runs in one transaction: a
// failure on any table rolls back the whole restore, so the previous dataset
// survives intact.
func (r *backupRepository) Restore(ctx context.Context, set *RestoreSet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Customer{}).Error; err != nil {
			return err
		}
		if len(set.Customers) > 0 {
			if err := tx.Create(&set.Customers).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("1 = 1").Delete(&models.FinanceEntry{}).Error; err != nil {
			return err
		}
		if len(set.FinanceHistory) > 0 {
			if err := tx.Create(&set.FinanceHistory).Error; err != nil {
				return err
			}
		}

		if set.ReserveBalance != nil {
			res := tx.Model(&models.ReserveBalance{}).
				Where("1 = 1").
				Update("balance", *set.ReserveBalance)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if err := tx.Create(&models.ReserveBalance{Balance: *set.ReserveBalance}).Error; err != nil {
					return err
				}
			}
		}

		if set.CompanyInfo != nil {
			var info models.CompanyInfo
			err := tx.First(&info).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			id := info.ID
			info = *set.CompanyInfo
			info.ID = id
			return tx.Save(&info).Error
		}

		return nil
	})
}
