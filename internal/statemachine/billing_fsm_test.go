package statemachine

import (
	"context"
	"testing"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayFromUnpaid(t *testing.T) {
	customer := &models.Customer{
		Status:  models.CustomerStatusUnpaid,
		Price:   150000,
		Arrears: 300000,
	}

	bfsm := NewBillingFSM(customer)
	require.NoError(t, bfsm.Pay(context.Background()))

	assert.Equal(t, models.CustomerStatusPaid, customer.Status)
	assert.Equal(t, float64(0), customer.Arrears)
	assert.Equal(t, models.CustomerStatusPaid, bfsm.Current())
}

func TestPayFromPaidFails(t *testing.T) {
	customer := &models.Customer{Status: models.CustomerStatusPaid, Price: 150000}

	bfsm := NewBillingFSM(customer)
	err := bfsm.Pay(context.Background())

	assert.Error(t, err)
	assert.Equal(t, models.CustomerStatusPaid, customer.Status)
}

func TestRolloverFromPaid(t *testing.T) {
	customer := &models.Customer{Status: models.CustomerStatusPaid, Price: 150000}

	bfsm := NewBillingFSM(customer)
	require.NoError(t, bfsm.Rollover(context.Background()))

	// Settled customer starts the new cycle clean
	assert.Equal(t, models.CustomerStatusUnpaid, customer.Status)
	assert.Equal(t, float64(0), customer.Arrears)
}

func TestRolloverFromUnpaidAccruesArrears(t *testing.T) {
	customer := &models.Customer{
		Status:  models.CustomerStatusUnpaid,
		Price:   150000,
		Arrears: 150000,
	}

	bfsm := NewBillingFSM(customer)
	require.NoError(t, bfsm.Rollover(context.Background()))

	assert.Equal(t, models.CustomerStatusUnpaid, customer.Status)
	assert.Equal(t, float64(300000), customer.Arrears)
}

func TestCan(t *testing.T) {
	unpaid := NewBillingFSM(&models.Customer{Status: models.CustomerStatusUnpaid})
	assert.True(t, unpaid.Can("pay"))
	assert.True(t, unpaid.Can("rollover"))

	paid := NewBillingFSM(&models.Customer{Status: models.CustomerStatusPaid})
	assert.False(t, paid.Can("pay"))
	assert.True(t, paid.Can("rollover"))
}
