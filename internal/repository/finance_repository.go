package repository

import (
	"context"
	"time"

	"github.com/sidompet/sidompet-api/internal/models"
	"gorm.io/gorm"
)

// FinanceRepository defines the interface for ledger data access
type FinanceRepository interface {
	FindByID(ctx context.Context, id uint) (*models.FinanceEntry, error)
	Create(ctx context.Context, entry *models.FinanceEntry) error
	Update(ctx context.Context, entry *models.FinanceEntry) error
	Delete(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]models.FinanceEntry, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]models.FinanceEntry, error)
	FindByDescription(ctx context.Context, keyword string) ([]models.FinanceEntry, error)
	NetBalance(ctx context.Context) (float64, error)
}

type financeRepository struct {
	db *gorm.DB
}

// NewFinanceRepository creates a new finance repository
func NewFinanceRepository(db *gorm.DB) FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) FindByID(ctx context.Context, id uint) (*models.FinanceEntry, error) {
	var entry models.FinanceEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *financeRepository) Create(ctx context.Context, entry *models.FinanceEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *financeRepository) Update(ctx context.Context, entry *models.FinanceEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *financeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FinanceEntry{}, id).Error
}

func (r *financeRepository) FindAll(ctx context.Context) ([]models.FinanceEntry, error) {
	var entries []models.FinanceEntry
	err := r.db.WithContext(ctx).
		Order("date ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *financeRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]models.FinanceEntry, error) {
	var entries []models.FinanceEntry
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC, created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *financeRepository) FindByDescription(ctx context.Context, keyword string) ([]models.FinanceEntry, error) {
	var entries []models.FinanceEntry
	err := r.db.WithContext(ctx).
		Where("description ILIKE ?", "%"+keyword+"%").
		Order("date DESC, created_at DESC").
		Find(&entries).Error
	return entries, err
}

// NetBalance computes total income minus total expense across the whole ledger
func (r *financeRepository) NetBalance(ctx context.Context) (float64, error) {
	var result struct {
		Balance float64
	}

	err := r.db.WithContext(ctx).
		Model(&models.FinanceEntry{}).
		Select("COALESCE(SUM(CASE WHEN category = ? THEN amount ELSE -amount END), 0) as balance", models.CategoryIncome).
		Scan(&result).Error

	return result.Balance, err
}
