package services

import (
	"github.com/sidompet/sidompet-api/internal/config"
	"github.com/sidompet/sidompet-api/internal/jobs"
	"github.com/sidompet/sidompet-api/internal/repository"
	"github.com/sidompet/sidompet-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth          *AuthService
	User          *UserService
	Customer      *CustomerService
	Finance       *FinanceService
	Billing       *BillingService
	Reserve       *ReserveService
	ProfitSharing *ProfitSharingService
	Report        *ReportService
	Export        *ExportService
	Backup        *BackupService
	Invoice       *InvoiceService
	Company       *CompanyService
	WhatsApp      *WhatsAppService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, store *storage.LocalStorage, cfg *config.Config) *Services {
	whatsappSvc := NewWhatsAppService(repos.Company, cfg.CountryCode)
	reportSvc := NewReportService(repos.Finance, repos.Company)

	return &Services{
		Auth:          NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:          NewUserService(repos.User),
		Customer:      NewCustomerService(repos.Customer),
		Finance:       NewFinanceService(repos.Finance),
		Billing:       NewBillingService(repos.Customer, repos.Finance, whatsappSvc, worker),
		Reserve:       NewReserveService(repos.Reserve, repos.Finance),
		ProfitSharing: NewProfitSharingService(repos.ProfitShare, repos.Finance),
		Report:        reportSvc,
		Export:        NewExportService(reportSvc),
		Backup:        NewBackupService(repos.Backup, repos.Customer, repos.Finance, repos.Reserve, repos.Company, store),
		Invoice:       NewInvoiceService(repos.Customer, repos.Company, whatsappSvc, store),
		Company:       NewCompanyService(repos.Company),
		WhatsApp:      whatsappSvc,
	}
}
