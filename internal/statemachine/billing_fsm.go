package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/sidompet/sidompet-api/internal/models"
)

// BillingFSM wraps a customer with its billing-cycle state machine
type BillingFSM struct {
	customer *models.Customer
	fsm      *fsm.FSM
}

// NewBillingFSM creates a new billing state machine for a customer
func NewBillingFSM(customer *models.Customer) *BillingFSM {
	bfsm := &BillingFSM{
		customer: customer,
	}

	bfsm.fsm = fsm.NewFSM(
		customer.Status,
		fsm.Events{
			// unpaid → paid (payment settles the full amount due)
			{Name: "pay", Src: []string{models.CustomerStatusUnpaid}, Dst: models.CustomerStatusPaid},

			// paid/unpaid → unpaid (new billing cycle)
			{Name: "rollover", Src: []string{models.CustomerStatusPaid, models.CustomerStatusUnpaid}, Dst: models.CustomerStatusUnpaid},
		},
		fsm.Callbacks{},
	)

	return bfsm
}

// Pay transitions the customer to paid and clears arrears
func (b *BillingFSM) Pay(ctx context.Context) error {
	if !b.customer.MayPay() {
		return fmt.Errorf("customer cannot be paid in current state: %s", b.customer.Status)
	}

	if err := b.fsm.Event(ctx, "pay"); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	b.customer.Status = b.fsm.Current()
	b.customer.Arrears = 0
	return nil
}

// Rollover resets the customer to unpaid for a new billing cycle. A customer
// that was still unpaid carries the monthly fee forward as arrears.
func (b *BillingFSM) Rollover(ctx context.Context) error {
	wasUnpaid := b.customer.Status == models.CustomerStatusUnpaid

	if err := b.fsm.Event(ctx, "rollover"); err != nil {
		// looplab/fsm reports a no-transition error when src == dst; the
		// rollover of an already-unpaid customer is still a valid cycle step
		if _, ok := err.(fsm.NoTransitionError); !ok {
			return fmt.Errorf("failed to roll over customer: %w", err)
		}
	}

	if wasUnpaid {
		b.customer.Arrears += b.customer.Price
	}
	b.customer.Status = models.CustomerStatusUnpaid
	return nil
}

// Current returns the current state
func (b *BillingFSM) Current() string {
	return b.fsm.Current()
}

// Can checks if a transition is possible
func (b *BillingFSM) Can(event string) bool {
	return b.fsm.Can(event)
}
