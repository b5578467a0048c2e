package handlers

import (
	"github.com/sidompet/sidompet-api/internal/jobs"
	"github.com/sidompet/sidompet-api/internal/services"
	"github.com/sidompet/sidompet-api/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health        *HealthHandler
	Auth          *AuthHandler
	User          *UserHandler
	Customer      *CustomerHandler
	Finance       *FinanceHandler
	Billing       *BillingHandler
	Reserve       *ReserveHandler
	ProfitSharing *ProfitSharingHandler
	Report        *ReportHandler
	Backup        *BackupHandler
	Invoice       *InvoiceHandler
	Company       *CompanyHandler
	Job           *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, worker *jobs.Worker, store *storage.LocalStorage) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(),
		Auth:          NewAuthHandler(svcs.Auth),
		User:          NewUserHandler(svcs.User),
		Customer:      NewCustomerHandler(svcs.Customer, svcs.WhatsApp),
		Finance:       NewFinanceHandler(svcs.Finance, svcs.Report),
		Billing:       NewBillingHandler(svcs.Billing),
		Reserve:       NewReserveHandler(svcs.Reserve),
		ProfitSharing: NewProfitSharingHandler(svcs.ProfitSharing),
		Report:        NewReportHandler(svcs.Report, svcs.Export),
		Backup:        NewBackupHandler(svcs.Backup, store),
		Invoice:       NewInvoiceHandler(svcs.Invoice),
		Company:       NewCompanyHandler(svcs.Company),
		Job:           NewJobHandler(worker),
	}
}
