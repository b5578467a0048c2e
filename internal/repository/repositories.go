package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	RefreshToken RefreshTokenRepository
	Customer     CustomerRepository
	Finance      FinanceRepository
	Reserve      ReserveRepository
	ProfitShare  ProfitShareRepository
	Company      CompanyRepository
	Backup       BackupRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Customer:     NewCustomerRepository(db),
		Finance:      NewFinanceRepository(db),
		Reserve:      NewReserveRepository(db),
		ProfitShare:  NewProfitShareRepository(db),
		Company:      NewCompanyRepository(db),
		Backup:       NewBackupRepository(db),
	}
}
