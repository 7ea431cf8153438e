package pos

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   int
	lastReq Request
	result  *Result
	err     error
	block   chan struct{} // when set, SubmitPayment waits on it
}

func (f *fakeSubmitter) SubmitPayment(ctx context.Context, req Request) (*Result, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func submitInput(l *Ledger) SubmitInput {
	return SubmitInput{
		OrderID:      uuid.New(),
		RegisterOpen: true,
		Ledger:       l,
		Tendered:     25000,
		Owed:         23000,
		Method:       enum.PaymentMethodCash,
	}
}

func TestGuardSubmitSuccess(t *testing.T) {
	item := orderItem("Cachupa", 10000, 2, 2)
	l := NewLedger([]entity.OrderItem{item})
	sub := &fakeSubmitter{result: &Result{PaymentID: uuid.New(), ChangeDue: 2000}}
	g := NewGuard(sub, nil)

	res, err := g.Submit(context.Background(), submitInput(l))

	require.NoError(t, err)
	assert.Equal(t, int64(2000), res.ChangeDue)
	assert.Equal(t, StateSuccess, g.State())
	assert.Equal(t, 1, sub.callCount())
	assert.Equal(t, map[uuid.UUID]int{item.ID: 2}, sub.lastReq.Items)
	assert.Equal(t, int64(25000), sub.lastReq.Amount)
}

func TestGuardRejectsClosedRegister(t *testing.T) {
	l := NewLedger([]entity.OrderItem{orderItem("Cachupa", 10000, 2, 2)})
	sub := &fakeSubmitter{}
	g := NewGuard(sub, nil)

	in := submitInput(l)
	in.RegisterOpen = false
	_, err := g.Submit(context.Background(), in)

	assert.ErrorIs(t, err, ErrNoOpenRegister)
	assert.Equal(t, StateIdle, g.State())
	assert.Equal(t, 0, sub.callCount())
}

func TestGuardRejectsEmptySelection(t *testing.T) {
	l := NewLedger([]entity.OrderItem{orderItem("Cachupa", 10000, 2, 2)})
	l.SelectNone()
	sub := &fakeSubmitter{}
	g := NewGuard(sub, nil)

	_, err := g.Submit(context.Background(), submitInput(l))

	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Equal(t, 0, sub.callCount())
}

func TestGuardManualModeAllowsEmptyLedger(t *testing.T) {
	sub := &fakeSubmitter{result: &Result{}}
	g := NewGuard(sub, nil)

	in := submitInput(nil)
	in.ManualMode = true
	_, err := g.Submit(context.Background(), in)

	require.NoError(t, err)
	assert.True(t, sub.lastReq.Manual)
	assert.Nil(t, sub.lastReq.Items)
}

func TestGuardRejectsNonPositiveAmount(t *testing.T) {
	l := NewLedger([]entity.OrderItem{orderItem("Cachupa", 10000, 2, 2)})
	sub := &fakeSubmitter{}
	g := NewGuard(sub, nil)

	in := submitInput(l)
	in.Tendered = 0
	_, err := g.Submit(context.Background(), in)

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, 0, sub.callCount())
}

func TestGuardPartialPaymentNeedsConfirmation(t *testing.T) {
	l := NewLedger([]entity.OrderItem{orderItem("Cachupa", 10000, 2, 2)})
	sub := &fakeSubmitter{result: &Result{}}

	declined := NewGuard(sub, func(tendered, owed int64) bool { return false })
	in := submitInput(l)
	in.Tendered = 10000 // less than the 23000 owed
	_, err := declined.Submit(context.Background(), in)

	assert.ErrorIs(t, err, ErrPartialDeclined)
	assert.Equal(t, StateIdle, declined.State())
	assert.Equal(t, 0, sub.callCount())
	// Declining leaves the selection untouched for a retry.
	assert.Equal(t, 1, l.Len())

	var gotTendered, gotOwed int64
	accepted := NewGuard(sub, func(tendered, owed int64) bool {
		gotTendered, gotOwed = tendered, owed
		return true
	})
	_, err = accepted.Submit(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, int64(10000), gotTendered)
	assert.Equal(t, int64(23000), gotOwed)
	assert.Equal(t, 1, sub.callCount())
}

func TestGuardNilConfirmDeclinesPartial(t *testing.T) {
	l := NewLedger([]entity.OrderItem{orderItem("Cachupa", 10000, 2, 2)})
	sub := &fakeSubmitter{}
	g := NewGuard(sub, nil)

	in := submitInput(l)
	in.Tendered = 5000
	_, err := g.Submit(context.Background(), in)

	assert.ErrorIs(t, err, ErrPartialDeclined)
	assert.Equal(t, 0, sub.callCount())
}

func TestGuardSingleInFlightSubmission(t *testing.T) {
	l := NewLedger([]entity.OrderItem{orderItem("Cachupa", 10000, 2, 2)})
	block := make(chan struct{})
	sub := &fakeSubmitter{result: &Result{}, block: block}
	g := NewGuard(sub, nil)

	done := make(chan error, 1)
	go func() {
		_, err := g.Submit(context.Background(), submitInput(l))
		done <- err
	}()

	// Wait for the first submission to be in flight.
	require.Eventually(t, func() bool {
		return g.State() == StateSubmitting
	}, time.Second, time.Millisecond)

	_, err := g.Submit(context.Background(), submitInput(l))
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, sub.callCount())
}

func TestGuardFailureRevertsToIdle(t *testing.T) {
	l := NewLedger([]entity.OrderItem{orderItem("Cachupa", 10000, 2, 2)})
	sub := &fakeSubmitter{err: errors.New("order already paid")}
	g := NewGuard(sub, nil)

	_, err := g.Submit(context.Background(), submitInput(l))

	assert.EqualError(t, err, "order already paid")
	assert.Equal(t, StateIdle, g.State())
	assert.Nil(t, g.Result())
	// The selection survives so the operator can adjust and retry.
	assert.Equal(t, 1, l.Len())

	sub.err = nil
	sub.result = &Result{ChangeDue: 2000}
	res, err := g.Submit(context.Background(), submitInput(l))
	require.NoError(t, err)
	assert.Equal(t, int64(2000), res.ChangeDue)
}

func TestGuardSuccessBlocksResubmitUntilReset(t *testing.T) {
	l := NewLedger([]entity.OrderItem{orderItem("Cachupa", 10000, 2, 2)})
	sub := &fakeSubmitter{result: &Result{PaymentID: uuid.New()}}
	g := NewGuard(sub, nil)

	_, err := g.Submit(context.Background(), submitInput(l))
	require.NoError(t, err)

	_, err = g.Submit(context.Background(), submitInput(l))
	assert.ErrorIs(t, err, ErrAlreadySucceeded)
	assert.Equal(t, 1, sub.callCount())

	g.Reset()
	assert.Equal(t, StateIdle, g.State())
	assert.Nil(t, g.Result())

	_, err = g.Submit(context.Background(), submitInput(l))
	require.NoError(t, err)
	assert.Equal(t, 2, sub.callCount())
}
