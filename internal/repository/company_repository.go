package repository

import (
	"context"
	"errors"

	"github.com/sidompet/sidompet-api/internal/models"
	"gorm.io/gorm"
)

// CompanyRepository defines the interface for the settings document
type CompanyRepository interface {
	Get(ctx context.Context) (*models.CompanyInfo, error)
	Save(ctx context.Context, info *models.CompanyInfo) error
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// Get returns the single settings row, creating an empty one on first use
func (r *companyRepository) Get(ctx context.Context) (*models.CompanyInfo, error) {
	var info models.CompanyInfo
	err := r.db.WithContext(ctx).First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		info = models.CompanyInfo{}
		if err := r.db.WithContext(ctx).Create(&info).Error; err != nil {
			return nil, err
		}
		return &info, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *companyRepository) Save(ctx context.Context, info *models.CompanyInfo) error {
	return r.db.WithContext(ctx).Save(info).Error
}
