package service

import (
	"context"
	"testing"

	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegisterServiceForTest() (*CashRegisterService, *mockRegisterRepo) {
	repo := newMockRegisterRepo()
	return NewCashRegisterService(repo, NewAuditService(&mockLogRepo{})), repo
}

func TestOpen_OnePerOperator(t *testing.T) {
	svc, _ := newRegisterServiceForTest()
	ctx := context.Background()
	operatorID := uuid.New()

	register, err := svc.Open(ctx, operatorID, 50000)
	require.NoError(t, err)
	assert.True(t, register.IsOpen)
	assert.Equal(t, int64(50000), register.InitialAmount)

	_, err = svc.Open(ctx, operatorID, 10000)
	assert.Error(t, err)

	// A different operator can still open a session
	_, err = svc.Open(ctx, uuid.New(), 10000)
	assert.NoError(t, err)
}

func TestOpen_RejectsNegativeFloat(t *testing.T) {
	svc, _ := newRegisterServiceForTest()

	_, err := svc.Open(context.Background(), uuid.New(), -1)
	assert.Error(t, err)
}

func TestClose_ReconcilesDeclaredAmounts(t *testing.T) {
	svc, _ := newRegisterServiceForTest()
	ctx := context.Background()
	operatorID := uuid.New()

	register, err := svc.Open(ctx, operatorID, 10000) // 100.00 float
	require.NoError(t, err)
	register.AddTransaction(2300, enum.PaymentMethodCash)
	register.AddTransaction(5000, enum.PaymentMethodDebitCard)

	// Operator counts 120.00 cash (3.00 short) and 50.00 card
	result, err := svc.Close(ctx, operatorID, 12000, 5000)
	require.NoError(t, err)

	assert.False(t, result.Register.IsOpen)
	require.NotNil(t, result.Register.EndTime)
	assert.InDelta(t, 123.00, result.Summary.ExpectedCash, 0.001)
	assert.InDelta(t, -3.00, result.Summary.CashDifference, 0.001)
	assert.InDelta(t, 50.00, result.Summary.ExpectedCard, 0.001)
	assert.InDelta(t, 0.00, result.Summary.CardDifference, 0.001)

	// Closing again fails: there is no open session left
	_, err = svc.Close(ctx, operatorID, 0, 0)
	assert.Error(t, err)
}

func TestInsertAndExtractMoney(t *testing.T) {
	svc, _ := newRegisterServiceForTest()
	ctx := context.Background()
	operatorID := uuid.New()

	_, err := svc.Open(ctx, operatorID, 10000)
	require.NoError(t, err)

	register, err := svc.InsertMoney(ctx, operatorID, 5000, "change float top-up")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), register.OperationsCash)

	register, err = svc.ExtractMoney(ctx, operatorID, 12000, "bank deposit")
	require.NoError(t, err)
	assert.Equal(t, int64(-7000), register.OperationsCash)

	// Cannot extract more than the till holds (100.00 - 70.00 = 30.00 left)
	_, err = svc.ExtractMoney(ctx, operatorID, 4000, "too much")
	assert.Error(t, err)
}

func TestCurrent_RequiresOpenSession(t *testing.T) {
	svc, _ := newRegisterServiceForTest()

	_, err := svc.Current(context.Background(), uuid.New())
	assert.Error(t, err)
}
