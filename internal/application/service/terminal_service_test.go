package service

import (
	"context"
	"sync"
	"testing"

	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/pos"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTerminalTestEnv() (*TerminalService, *paymentTestEnv) {
	env := newPaymentTestEnv()
	return NewTerminalService(env.orderRepo, env.registerRepo, env.svc), env
}

func TestStartSession_SelectsAllRemaining(t *testing.T) {
	terminal, env := newTerminalTestEnv()
	ctx := context.Background()
	operatorID := uuid.New()
	order := env.seedOrder(t, nil) // 2 x 10.00 + 1 x 5.00, grand total 28.75

	view, err := terminal.StartSession(ctx, operatorID, order.ID)
	require.NoError(t, err)

	assert.Len(t, view.Lines, 2)
	assert.Equal(t, 2, view.Selected[order.Items[0].ID])
	assert.Equal(t, 1, view.Selected[order.Items[1].ID])
	assert.Equal(t, int64(2500), view.Totals.Subtotal)
	assert.Equal(t, int64(2875), view.Totals.Payable)
	assert.Equal(t, int64(2875), view.Owed)
}

func TestStartSession_RejectsSettledOrder(t *testing.T) {
	terminal, env := newTerminalTestEnv()
	ctx := context.Background()
	order := env.seedOrder(t, nil)
	order.TotalPaid = order.GrandTotal

	_, err := terminal.StartSession(ctx, uuid.New(), order.ID)
	assert.Error(t, err)
}

func TestPressKey_TypesAnAmount(t *testing.T) {
	terminal, env := newTerminalTestEnv()
	ctx := context.Background()
	operatorID := uuid.New()
	order := env.seedOrder(t, nil)
	_, err := terminal.StartSession(ctx, operatorID, order.ID)
	require.NoError(t, err)

	for _, key := range []string{"5", "0", ".", "5", "0"} {
		_, err = terminal.PressKey(ctx, operatorID, key)
		require.NoError(t, err)
	}
	view, err := terminal.PressKey(ctx, operatorID, "back")
	require.NoError(t, err)

	assert.Equal(t, "50.5", view.EnteredAmount)
	assert.Equal(t, int64(5050), view.EnteredCents)

	_, err = terminal.PressKey(ctx, operatorID, "x")
	assert.Error(t, err)

	view, err = terminal.PressKey(ctx, operatorID, "clear")
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.EnteredCents)
}

func TestQuickAmount_PresetsFromPayable(t *testing.T) {
	terminal, env := newTerminalTestEnv()
	ctx := context.Background()
	operatorID := uuid.New()
	order := env.seedOrder(t, nil)
	_, err := terminal.StartSession(ctx, operatorID, order.ID)
	require.NoError(t, err)

	// Full selection payable is 28.75; 100% preset types exactly that.
	view, err := terminal.QuickAmount(ctx, operatorID, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2875), view.EnteredCents)

	view, err = terminal.QuickAmount(ctx, operatorID, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1437), view.EnteredCents)
}

func TestSession_ConcurrentRequestsSerialize(t *testing.T) {
	terminal, env := newTerminalTestEnv()
	ctx := context.Background()
	operatorID := uuid.New()
	order := env.seedOrder(t, nil)
	_, err := terminal.StartSession(ctx, operatorID, order.ID)
	require.NoError(t, err)

	// Two handlers firing for the same operator must not corrupt the
	// session; run with -race.
	var wg sync.WaitGroup
	for _, lineID := range []uuid.UUID{order.Items[0].ID, order.Items[1].ID} {
		wg.Add(2)
		go func(id uuid.UUID) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_, err := terminal.ToggleLine(ctx, operatorID, id)
				assert.NoError(t, err)
			}
		}(lineID)
		go func(id uuid.UUID) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_, err := terminal.SetLineQuantity(ctx, operatorID, id, 1)
				assert.NoError(t, err)
				_, err = terminal.PressKey(ctx, operatorID, "5")
				assert.NoError(t, err)
			}
		}(lineID)
	}
	wg.Wait()

	view, err := terminal.View(ctx, operatorID)
	require.NoError(t, err)
	remaining := map[uuid.UUID]int{
		order.Items[0].ID: order.Items[0].RemainingQuantity,
		order.Items[1].ID: order.Items[1].RemainingQuantity,
	}
	for lineID, qty := range view.Selected {
		assert.Greater(t, qty, 0)
		assert.LessOrEqual(t, qty, remaining[lineID])
	}
}

func TestSubmit_RequiresOpenRegister(t *testing.T) {
	terminal, env := newTerminalTestEnv()
	ctx := context.Background()
	operatorID := uuid.New()
	order := env.seedOrder(t, nil)
	_, err := terminal.StartSession(ctx, operatorID, order.ID)
	require.NoError(t, err)

	_, err = terminal.Submit(ctx, operatorID, &SubmitTerminalInput{Method: enum.PaymentMethodCash})
	assert.ErrorIs(t, err, pos.ErrNoOpenRegister)
}

func TestSubmit_FullSelectionExactTender(t *testing.T) {
	terminal, env := newTerminalTestEnv()
	ctx := context.Background()
	operatorID := uuid.New()
	env.openRegister(t, operatorID)
	order := env.seedOrder(t, nil)
	_, err := terminal.StartSession(ctx, operatorID, order.ID)
	require.NoError(t, err)

	// No amount typed: exact tender for the full selection.
	result, err := terminal.Submit(ctx, operatorID, &SubmitTerminalInput{Method: enum.PaymentMethodCash})
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.ChangeDue)
	payment, err := env.paymentRepo.GetByID(ctx, result.PaymentID)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, int64(2875), payment.Amount)
	assert.True(t, payment.IsSigned)
	assert.Equal(t, enum.PaymentStatusPaid, order.PaymentStatus)

	// A successful submission ends the session.
	_, err = terminal.View(ctx, operatorID)
	assert.Error(t, err)
}

func TestSubmit_PartialNeedsConfirmation(t *testing.T) {
	terminal, env := newTerminalTestEnv()
	ctx := context.Background()
	operatorID := uuid.New()
	env.openRegister(t, operatorID)
	order := env.seedOrder(t, nil)
	_, err := terminal.StartSession(ctx, operatorID, order.ID)
	require.NoError(t, err)

	// Deselect the second line: tender 23.00 against 28.75 owed.
	_, err = terminal.ToggleLine(ctx, operatorID, order.Items[1].ID)
	require.NoError(t, err)

	_, err = terminal.Submit(ctx, operatorID, &SubmitTerminalInput{Method: enum.PaymentMethodCash})
	assert.ErrorIs(t, err, pos.ErrPartialDeclined)

	// The selection survives the declined attempt.
	view, err := terminal.View(ctx, operatorID)
	require.NoError(t, err)
	assert.Equal(t, int64(2300), view.Totals.Payable)

	result, err := terminal.Submit(ctx, operatorID, &SubmitTerminalInput{
		Method:         enum.PaymentMethodCash,
		ConfirmPartial: true,
	})
	require.NoError(t, err)

	payment, err := env.paymentRepo.GetByID(ctx, result.PaymentID)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, int64(2300), payment.Amount)
	assert.Equal(t, enum.PaymentStatusPartiallyPaid, order.PaymentStatus)
}

func TestSubmit_ManualKeypadAmountCapsAtBalance(t *testing.T) {
	terminal, env := newTerminalTestEnv()
	ctx := context.Background()
	operatorID := uuid.New()
	env.openRegister(t, operatorID)
	order := env.seedOrder(t, nil)
	_, err := terminal.StartSession(ctx, operatorID, order.ID)
	require.NoError(t, err)

	_, err = terminal.SetManualMode(ctx, operatorID, true)
	require.NoError(t, err)
	// Customer hands over 100.00 against a 28.75 balance.
	for _, key := range []string{"1", "0", "0"} {
		_, err = terminal.PressKey(ctx, operatorID, key)
		require.NoError(t, err)
	}

	result, err := terminal.Submit(ctx, operatorID, &SubmitTerminalInput{Method: enum.PaymentMethodCash})
	require.NoError(t, err)

	assert.Equal(t, int64(7125), result.ChangeDue)
	payment, err := env.paymentRepo.GetByID(ctx, result.PaymentID)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, int64(2875), payment.Amount)
	assert.Equal(t, enum.PaymentStatusPaid, order.PaymentStatus)
}

func TestSubmit_EmptySelectionRejected(t *testing.T) {
	terminal, env := newTerminalTestEnv()
	ctx := context.Background()
	operatorID := uuid.New()
	env.openRegister(t, operatorID)
	order := env.seedOrder(t, nil)
	_, err := terminal.StartSession(ctx, operatorID, order.ID)
	require.NoError(t, err)

	_, err = terminal.SelectNone(ctx, operatorID)
	require.NoError(t, err)

	_, err = terminal.Submit(ctx, operatorID, &SubmitTerminalInput{Method: enum.PaymentMethodCash})
	assert.ErrorIs(t, err, pos.ErrEmptySelection)
}
