package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
	"github.com/sidompet/sidompet-api/internal/storage"
	"github.com/sidompet/sidompet-api/pkg/logger"
)

// BackupService exports the full dataset to a single JSON document and
// restores it. Restore is fail-fast: the payload is validated in full before
// any row is touched, and the swap itself runs in one transaction. A corrupt
// upload or a mid-restore write failure can never leave the database partially
// restored or emptied.
type BackupService struct {
	backupRepo   repository.BackupRepository
	customerRepo repository.CustomerRepository
	financeRepo  repository.FinanceRepository
	reserveRepo  repository.ReserveRepository
	companyRepo  repository.CompanyRepository
	storage      *storage.LocalStorage
}

// NewBackupService creates a new backup service
func NewBackupService(
	backupRepo repository.BackupRepository,
	customerRepo repository.CustomerRepository,
	financeRepo repository.FinanceRepository,
	reserveRepo repository.ReserveRepository,
	companyRepo repository.CompanyRepository,
	store *storage.LocalStorage,
) *BackupService {
	return &BackupService{
		backupRepo:   backupRepo,
		customerRepo: customerRepo,
		financeRepo:  financeRepo,
		reserveRepo:  reserveRepo,
		companyRepo:  companyRepo,
		storage:      store,
	}
}

// BackupDocument is the on-disk backup format
type BackupDocument struct {
	ExportedAt     string                `json:"exported_at"`
	CompanyInfo    *models.CompanyInfo   `json:"company_info,omitempty"`
	Customers      []models.Customer     `json:"customers"`
	FinanceHistory []models.FinanceEntry `json:"finance_history"`
	ReserveBalance *float64              `json:"reserve_balance,omitempty"`
}

// Export serializes the dataset. Scope "data" exports customers and the
// ledger only; scope "all" additionally includes company settings and the
// reserve balance.
func (s *BackupService) Export(ctx context.Context, scope string) ([]byte, string, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, "", err
	}

	entries, err := s.financeRepo.FindAll(ctx)
	if err != nil {
		return nil, "", err
	}

	doc := BackupDocument{
		ExportedAt:     time.Now().Format(time.RFC3339),
		Customers:      customers,
		FinanceHistory: entries,
	}

	if scope == "all" {
		info, err := s.companyRepo.Get(ctx)
		if err != nil {
			return nil, "", err
		}
		balance, err := s.reserveRepo.Get(ctx)
		if err != nil {
			return nil, "", err
		}
		doc.CompanyInfo = info
		doc.ReserveBalance = &balance.Balance
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("sidompet_backup_%s.json", time.Now().Format("2006-01-02"))

	// Keep a server-side copy so an operator mistake on the download side
	// does not lose the snapshot
	if s.storage != nil {
		if _, err := s.storage.SaveBytes(data, filename, "backups"); err != nil {
			logger.Warn("failed to archive backup export", "error", err)
		}
	}

	return data, filename, nil
}

// Import validates and restores a backup document. Validation runs against
// the raw JSON first so malformed payloads are rejected before any mutation.
func (s *BackupService) Import(ctx context.Context, data []byte) error {
	if err := validateBackup(data); err != nil {
		return err
	}

	var doc BackupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	set := &repository.RestoreSet{
		Customers:      doc.Customers,
		FinanceHistory: doc.FinanceHistory,
		ReserveBalance: doc.ReserveBalance,
		CompanyInfo:    doc.CompanyInfo,
	}
	if err := s.backupRepo.Restore(ctx, set); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	logger.Info("backup restored",
		"customers", len(doc.Customers),
		"finance_entries", len(doc.FinanceHistory),
	)

	return nil
}

// validateBackup checks the raw document shape before unmarshalling into
// typed models. Both collections must be present and must be arrays.
func validateBackup(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: not a JSON object", ErrInvalidBackup)
	}

	for _, key := range []string{"customers", "finance_history"} {
		field, ok := raw[key]
		if !ok {
			return fmt.Errorf("%w: missing %q", ErrInvalidBackup, key)
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(field, &arr); err != nil {
			return fmt.Errorf("%w: %q is not an array", ErrInvalidBackup, key)
		}
	}

	return nil
}
