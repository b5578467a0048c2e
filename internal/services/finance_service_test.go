package services

import (
	"context"
	"testing"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceCreate(t *testing.T) {
	repo := &fakeFinanceRepo{}
	svc := NewFinanceService(repo)

	entry, err := svc.Create(context.Background(), &EntryInput{
		Description: "Electricity bill",
		Date:        "2024-03-15",
		Category:    models.CategoryExpense,
		Method:      models.MethodTransfer,
		Amount:      450000,
	})
	require.NoError(t, err)

	assert.NotZero(t, entry.ID)
	assert.Equal(t, "2024-03-15", entry.Date.Format("2006-01-02"))
	assert.Len(t, repo.entries, 1)
}

func TestFinanceCreateValidation(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceRepo{})

	base := EntryInput{
		Description: "x",
		Date:        "2024-03-15",
		Category:    models.CategoryIncome,
		Method:      models.MethodCash,
		Amount:      100,
	}

	zeroAmount := base
	zeroAmount.Amount = 0
	_, err := svc.Create(context.Background(), &zeroAmount)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	negative := base
	negative.Amount = -50
	_, err = svc.Create(context.Background(), &negative)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	badCategory := base
	badCategory.Category = "revenue"
	_, err = svc.Create(context.Background(), &badCategory)
	assert.Error(t, err)

	badMethod := base
	badMethod.Method = "check"
	_, err = svc.Create(context.Background(), &badMethod)
	assert.ErrorIs(t, err, ErrInvalidMethod)

	badDate := base
	badDate.Date = "15/03/2024"
	_, err = svc.Create(context.Background(), &badDate)
	assert.Error(t, err)
}

func TestFinanceListDateRange(t *testing.T) {
	repo := &fakeFinanceRepo{}
	svc := NewFinanceService(repo)

	for _, date := range []string{"2024-01-10", "2024-02-10", "2024-03-10"} {
		_, err := svc.Create(context.Background(), &EntryInput{
			Description: "entry " + date,
			Date:        date,
			Category:    models.CategoryIncome,
			Method:      models.MethodCash,
			Amount:      100,
		})
		require.NoError(t, err)
	}

	entries, err := svc.List(context.Background(), "2024-02-01", "2024-02-28")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "entry 2024-02-10", entries[0].Description)

	// Open-ended ranges
	entries, err = svc.List(context.Background(), "2024-02-01", "")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestFinanceUpdateNotFound(t *testing.T) {
	svc := NewFinanceService(&fakeFinanceRepo{})

	_, err := svc.Update(context.Background(), 99, &EntryInput{
		Description: "x",
		Date:        "2024-01-01",
		Category:    models.CategoryIncome,
		Method:      models.MethodCash,
		Amount:      100,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
