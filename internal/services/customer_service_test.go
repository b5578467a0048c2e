package services

import (
	"context"
	"testing"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCreateStartsUnpaid(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	customer, err := svc.Create(context.Background(), &CustomerInput{
		Name:             "  Budi Santoso  ",
		Phone:            "081234567890",
		SubscriptionType: models.SubscriptionPPPoE,
		Price:            150000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Budi Santoso", customer.Name)
	assert.Equal(t, models.CustomerStatusUnpaid, customer.Status)
	assert.Equal(t, float64(0), customer.Arrears)
}

func TestCustomerCreateValidation(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	_, err := svc.Create(context.Background(), &CustomerInput{
		Name: "   ", SubscriptionType: models.SubscriptionPPPoE,
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), &CustomerInput{
		Name: "Budi", SubscriptionType: "satellite",
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), &CustomerInput{
		Name: "Budi", SubscriptionType: models.SubscriptionHotspot, Price: -1,
	})
	assert.Error(t, err)
}

func TestCustomerUpdatePreservesBillingState(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := NewCustomerService(repo)

	c := repo.add(models.Customer{
		Name:             "Budi",
		SubscriptionType: models.SubscriptionPPPoE,
		Price:            150000,
		Status:           models.CustomerStatusUnpaid,
		Arrears:          300000,
	})

	updated, err := svc.Update(context.Background(), c.ID, &CustomerInput{
		Name:             "Budi Santoso",
		SubscriptionType: models.SubscriptionStatic,
		Price:            200000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Budi Santoso", updated.Name)
	assert.Equal(t, models.SubscriptionStatic, updated.SubscriptionType)
	assert.Equal(t, float64(200000), updated.Price)

	// Billing state is never edited through CRUD
	assert.Equal(t, models.CustomerStatusUnpaid, updated.Status)
	assert.Equal(t, float64(300000), updated.Arrears)
}

func TestCustomerGetNotFound(t *testing.T) {
	svc := NewCustomerService(newFakeCustomerRepo())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
