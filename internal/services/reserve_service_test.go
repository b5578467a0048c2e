package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReserveFixture() (*ReserveService, *fakeReserveRepo, *fakeFinanceRepo) {
	financeRepo := &fakeFinanceRepo{}
	reserveRepo := &fakeReserveRepo{financeRepo: financeRepo}
	return NewReserveService(reserveRepo, financeRepo), reserveRepo, financeRepo
}

func TestReserveDeposit(t *testing.T) {
	svc, reserveRepo, financeRepo := newReserveFixture()
	financeRepo.entries = []models.FinanceEntry{
		{Description: "Subscription payment - A", Date: time.Now(), Category: models.CategoryIncome, Method: models.MethodCash, Amount: 1000000},
	}

	balance, err := svc.Deposit(context.Background(), 400000)
	require.NoError(t, err)
	assert.Equal(t, float64(400000), balance)

	// Transfer leaves an internal expense trail in the ledger
	require.Len(t, reserveRepo.transfers, 1)
	entry := reserveRepo.transfers[0]
	assert.Equal(t, models.DescriptionReserveDeposit, entry.Description)
	assert.Equal(t, models.CategoryExpense, entry.Category)
	assert.Equal(t, models.MethodInternal, entry.Method)
	assert.Equal(t, float64(400000), entry.Amount)
}

func TestReserveDepositInsufficientBalance(t *testing.T) {
	svc, _, financeRepo := newReserveFixture()
	financeRepo.entries = []models.FinanceEntry{
		{Category: models.CategoryIncome, Amount: 100000},
	}

	_, err := svc.Deposit(context.Background(), 100001)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestReserveTransferInvalidAmounts(t *testing.T) {
	svc, _, _ := newReserveFixture()

	for _, amount := range []float64{0, -100, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := svc.Deposit(context.Background(), amount)
		assert.ErrorIs(t, err, ErrInvalidAmount, "deposit %v", amount)

		_, err = svc.Withdraw(context.Background(), amount)
		assert.ErrorIs(t, err, ErrInvalidAmount, "withdraw %v", amount)
	}
}

func TestReserveWithdraw(t *testing.T) {
	svc, reserveRepo, _ := newReserveFixture()
	reserveRepo.balance = 500000

	balance, err := svc.Withdraw(context.Background(), 200000)
	require.NoError(t, err)
	assert.Equal(t, float64(300000), balance)

	require.Len(t, reserveRepo.transfers, 1)
	entry := reserveRepo.transfers[0]
	assert.Equal(t, models.DescriptionReserveWithdraw, entry.Description)
	assert.Equal(t, models.CategoryIncome, entry.Category)
	assert.Equal(t, models.MethodInternal, entry.Method)
}

func TestReserveWithdrawInsufficientReserve(t *testing.T) {
	svc, reserveRepo, _ := newReserveFixture()
	reserveRepo.balance = 100000

	_, err := svc.Withdraw(context.Background(), 100001)
	assert.ErrorIs(t, err, ErrInsufficientReserve)
	assert.Empty(t, reserveRepo.transfers)
}

func TestReserveDepositWithdrawRoundTrip(t *testing.T) {
	svc, reserveRepo, financeRepo := newReserveFixture()
	financeRepo.entries = []models.FinanceEntry{
		{Description: "Subscription payment - A", Date: time.Now(), Category: models.CategoryIncome, Method: models.MethodCash, Amount: 1000000},
	}

	_, err := svc.Deposit(context.Background(), 300000)
	require.NoError(t, err)

	net, err := financeRepo.NetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(700000), net)

	balance, err := svc.Withdraw(context.Background(), 300000)
	require.NoError(t, err)

	// Back where we started: the internal expense and income cancel out
	assert.Equal(t, float64(0), balance)
	assert.Equal(t, float64(0), reserveRepo.balance)

	net, err = financeRepo.NetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(1000000), net)

	require.Len(t, reserveRepo.transfers, 2)
	assert.Equal(t, models.DescriptionReserveDeposit, reserveRepo.transfers[0].Description)
	assert.Equal(t, models.DescriptionReserveWithdraw, reserveRepo.transfers[1].Description)
}

func TestReserveHistory(t *testing.T) {
	svc, _, financeRepo := newReserveFixture()
	financeRepo.entries = []models.FinanceEntry{
		{Description: models.DescriptionReserveDeposit, Amount: 100},
		{Description: "Subscription payment - A", Amount: 200},
		{Description: models.DescriptionReserveWithdraw, Amount: 50},
	}

	entries, err := svc.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
