package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackupFixture() (*BackupService, *fakeBackupRepo) {
	backupRepo := &fakeBackupRepo{
		customerRepo: newFakeCustomerRepo(),
		financeRepo:  &fakeFinanceRepo{},
		reserveRepo:  &fakeReserveRepo{},
		companyRepo:  &fakeCompanyRepo{},
	}
	svc := NewBackupService(
		backupRepo,
		backupRepo.customerRepo,
		backupRepo.financeRepo,
		backupRepo.reserveRepo,
		backupRepo.companyRepo,
		nil,
	)
	return svc, backupRepo
}

func TestBackupExportDataScope(t *testing.T) {
	svc, repo := newBackupFixture()
	repo.customerRepo.add(models.Customer{Name: "Budi", Status: models.CustomerStatusUnpaid})
	repo.financeRepo.entries = []models.FinanceEntry{{Description: "Subscription payment - Budi", Category: models.CategoryIncome, Amount: 150000}}
	repo.reserveRepo.balance = 500000

	data, filename, err := svc.Export(context.Background(), "data")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "sidompet_backup_"))

	var doc BackupDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Customers, 1)
	assert.Len(t, doc.FinanceHistory, 1)
	assert.Nil(t, doc.ReserveBalance)
	assert.Nil(t, doc.CompanyInfo)
}

func TestBackupExportAllScope(t *testing.T) {
	svc, repo := newBackupFixture()
	repo.reserveRepo.balance = 500000
	repo.companyRepo.info = models.CompanyInfo{Name: "Sidompet Net"}

	data, _, err := svc.Export(context.Background(), "all")
	require.NoError(t, err)

	var doc BackupDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	require.NotNil(t, doc.ReserveBalance)
	assert.Equal(t, float64(500000), *doc.ReserveBalance)
	require.NotNil(t, doc.CompanyInfo)
	assert.Equal(t, "Sidompet Net", doc.CompanyInfo.Name)
}

func TestBackupImportRejectsCorruptPayloads(t *testing.T) {
	svc, repo := newBackupFixture()
	repo.customerRepo.add(models.Customer{Name: "Existing"})
	repo.financeRepo.entries = []models.FinanceEntry{{ID: 1, Description: "keep me"}}

	payloads := []string{
		`not json at all`,
		`[]`,
		`{"finance_history": []}`,
		`{"customers": []}`,
		`{"customers": "oops", "finance_history": []}`,
		`{"customers": [], "finance_history": {"a": 1}}`,
	}

	for _, payload := range payloads {
		err := svc.Import(context.Background(), []byte(payload))
		assert.ErrorIs(t, err, ErrInvalidBackup, payload)
	}

	// Nothing was touched by any of the rejected payloads
	customers, _ := repo.customerRepo.FindAll(context.Background())
	assert.Len(t, customers, 1)
	assert.Len(t, repo.financeRepo.entries, 1)
}

func TestBackupImportRestores(t *testing.T) {
	svc, repo := newBackupFixture()
	repo.customerRepo.add(models.Customer{Name: "Old"})

	payload := `{
		"customers": [{"id": 7, "name": "Restored", "status": "unpaid", "price": 150000}],
		"finance_history": [{"id": 3, "description": "Subscription payment - Restored", "category": "income", "method": "cash", "amount": 150000}],
		"reserve_balance": 250000
	}`

	require.NoError(t, svc.Import(context.Background(), []byte(payload)))

	customers, _ := repo.customerRepo.FindAll(context.Background())
	require.Len(t, customers, 1)
	assert.Equal(t, "Restored", customers[0].Name)

	require.Len(t, repo.financeRepo.entries, 1)
	assert.Equal(t, "Subscription payment - Restored", repo.financeRepo.entries[0].Description)

	assert.Equal(t, float64(250000), repo.reserveRepo.balance)
}

func TestBackupImportFailureLeavesDataIntact(t *testing.T) {
	svc, repo := newBackupFixture()
	repo.customerRepo.add(models.Customer{Name: "Existing"})
	repo.financeRepo.entries = []models.FinanceEntry{{ID: 1, Description: "keep me"}}
	repo.restoreErr = errors.New("write failed")

	payload := `{
		"customers": [{"id": 7, "name": "Restored", "status": "unpaid", "price": 150000}],
		"finance_history": []
	}`

	err := svc.Import(context.Background(), []byte(payload))
	require.Error(t, err)

	// The restore rolled back as a whole: the previous dataset is untouched
	customers, _ := repo.customerRepo.FindAll(context.Background())
	require.Len(t, customers, 1)
	assert.Equal(t, "Existing", customers[0].Name)
	require.Len(t, repo.financeRepo.entries, 1)
	assert.Equal(t, "keep me", repo.financeRepo.entries[0].Description)
}
