package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFiscalServiceForTest() (*FiscalService, *mockPaymentRepo, *mockOrderRepo) {
	paymentRepo := &mockPaymentRepo{}
	orderRepo := newMockOrderRepo()
	companyRepo := &mockCompanyRepo{settings: testSettings()}
	audit := NewAuditService(&mockLogRepo{})
	return NewFiscalService(paymentRepo, orderRepo, companyRepo, audit, mockTxManager{}), paymentRepo, orderRepo
}

func TestDocumentHash_Deterministic(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	h1 := DocumentHash(date, "FT A/2026/00001", 230000, "")
	h2 := DocumentHash(date, "FT A/2026/00001", 230000, "")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	// Any input change must produce a different hash
	assert.NotEqual(t, h1, DocumentHash(date, "FT A/2026/00002", 230000, ""))
	assert.NotEqual(t, h1, DocumentHash(date, "FT A/2026/00001", 230001, ""))
	assert.NotEqual(t, h1, DocumentHash(date, "FT A/2026/00001", 230000, h1))
}

func TestBuildIUD_Format(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	iud := BuildIUD("251234567", "FT A/2026/00001", date)

	assert.Len(t, iud, 45)
	assert.True(t, strings.HasPrefix(iud, "CV"))
	assert.Equal(t, strings.ToUpper(iud), iud)
	assert.Equal(t, iud, BuildIUD("251234567", "FT A/2026/00001", date))
	assert.NotEqual(t, iud, BuildIUD("251234567", "FT A/2026/00002", date))
}

func TestSign_AssignsSequentialNumbersAndChains(t *testing.T) {
	svc, paymentRepo, _ := newFiscalServiceForTest()
	ctx := context.Background()
	at := time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC)

	first := &entity.Payment{OrderID: uuid.New(), Amount: 100000, InvoiceType: enum.InvoiceTypeInvoiceReceipt}
	require.NoError(t, svc.Sign(ctx, first, at))
	require.NoError(t, paymentRepo.Create(ctx, first))

	assert.Equal(t, "FT A/2026/00001", first.InvoiceNo)
	assert.True(t, first.IsSigned)
	assert.Empty(t, first.PreviousInvoiceHash)
	assert.Equal(t, "SHA-256", first.HashAlgorithm)
	assert.Len(t, first.IUD, 45)

	second := &entity.Payment{OrderID: uuid.New(), Amount: 50000, InvoiceType: enum.InvoiceTypeInvoiceReceipt}
	require.NoError(t, svc.Sign(ctx, second, at.Add(time.Hour)))
	require.NoError(t, paymentRepo.Create(ctx, second))

	assert.Equal(t, "FT A/2026/00002", second.InvoiceNo)
	assert.Equal(t, first.InvoiceHash, second.PreviousInvoiceHash)

	// A different document type starts its own chain and numbering
	receipt := &entity.Payment{OrderID: uuid.New(), Amount: 20000, InvoiceType: enum.InvoiceTypeSalesReceipt}
	require.NoError(t, svc.Sign(ctx, receipt, at))
	assert.Equal(t, "TV A/2026/00001", receipt.InvoiceNo)
	assert.Empty(t, receipt.PreviousInvoiceHash)
}

func TestSign_RejectsAlreadySigned(t *testing.T) {
	svc, _, _ := newFiscalServiceForTest()

	payment := &entity.Payment{OrderID: uuid.New(), Amount: 1000, InvoiceType: enum.InvoiceTypeInvoice}
	require.NoError(t, svc.Sign(context.Background(), payment, time.Now()))

	err := svc.Sign(context.Background(), payment, time.Now())
	assert.Error(t, err)
}

func TestSign_DefaultsToFinalConsumer(t *testing.T) {
	svc, _, _ := newFiscalServiceForTest()

	payment := &entity.Payment{OrderID: uuid.New(), Amount: 1000, InvoiceType: enum.InvoiceTypeInvoice}
	require.NoError(t, svc.Sign(context.Background(), payment, time.Now()))

	assert.Equal(t, entity.FinalConsumerTaxID, payment.CustomerTaxID)
	assert.Equal(t, "Consumidor Final", payment.CustomerName)
}

func TestCreditNote_ReversesSignedInvoice(t *testing.T) {
	svc, paymentRepo, orderRepo := newFiscalServiceForTest()
	ctx := context.Background()
	userID := uuid.New()

	order := &entity.Order{
		ID:         uuid.New(),
		GrandTotal: 115000,
		TotalPaid:  115000,
	}
	require.NoError(t, orderRepo.Create(ctx, order))

	original := &entity.Payment{
		OrderID:     order.ID,
		Amount:      115000,
		Method:      enum.PaymentMethodCash,
		InvoiceType: enum.InvoiceTypeInvoiceReceipt,
	}
	require.NoError(t, svc.Sign(ctx, original, time.Now()))
	require.NoError(t, paymentRepo.Create(ctx, original))

	note, err := svc.CreditNote(ctx, &CreditNoteInput{
		UserID:    userID,
		PaymentID: original.ID,
		Reason:    "wrong order settled",
	})
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceTypeCreditNote, note.InvoiceType)
	assert.True(t, note.IsSigned)
	assert.Equal(t, original.Amount, note.Amount)
	require.NotNil(t, note.CreditedByID)
	assert.Equal(t, original.ID, *note.CreditedByID)
	assert.True(t, strings.HasPrefix(note.InvoiceNo, "NC A/"))

	// The original document is untouched; the order's paid total is reduced
	assert.True(t, strings.HasPrefix(original.InvoiceNo, "FT A/"))
	assert.Equal(t, int64(0), order.TotalPaid)
	assert.Equal(t, enum.PaymentStatusPending, order.PaymentStatus)
}

func TestCreditNote_RejectsDoubleCredit(t *testing.T) {
	svc, paymentRepo, orderRepo := newFiscalServiceForTest()
	ctx := context.Background()

	order := &entity.Order{ID: uuid.New(), GrandTotal: 10000, TotalPaid: 10000}
	require.NoError(t, orderRepo.Create(ctx, order))

	original := &entity.Payment{OrderID: order.ID, Amount: 10000, InvoiceType: enum.InvoiceTypeInvoice}
	require.NoError(t, svc.Sign(ctx, original, time.Now()))
	require.NoError(t, paymentRepo.Create(ctx, original))

	_, err := svc.CreditNote(ctx, &CreditNoteInput{UserID: uuid.New(), PaymentID: original.ID, Reason: "dup"})
	require.NoError(t, err)

	_, err = svc.CreditNote(ctx, &CreditNoteInput{UserID: uuid.New(), PaymentID: original.ID, Reason: "dup"})
	assert.Error(t, err)
}

func TestCreditNote_PropagatesPaymentLookupError(t *testing.T) {
	svc, paymentRepo, orderRepo := newFiscalServiceForTest()
	ctx := context.Background()

	order := &entity.Order{ID: uuid.New(), GrandTotal: 10000, TotalPaid: 10000}
	require.NoError(t, orderRepo.Create(ctx, order))

	original := &entity.Payment{OrderID: order.ID, Amount: 10000, InvoiceType: enum.InvoiceTypeInvoice}
	require.NoError(t, svc.Sign(ctx, original, time.Now()))
	require.NoError(t, paymentRepo.Create(ctx, original))

	paymentRepo.getByOrderErr = errors.New("connection reset")

	_, err := svc.CreditNote(ctx, &CreditNoteInput{UserID: uuid.New(), PaymentID: original.ID, Reason: "x"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")
	assert.Len(t, paymentRepo.payments, 1, "no credit note may be minted when the double-credit check cannot run")
}

func TestCreditNote_RejectsUnsignedAndCreditNotes(t *testing.T) {
	svc, paymentRepo, _ := newFiscalServiceForTest()
	ctx := context.Background()

	unsigned := &entity.Payment{OrderID: uuid.New(), Amount: 5000, InvoiceType: enum.InvoiceTypeInvoice}
	require.NoError(t, paymentRepo.Create(ctx, unsigned))

	_, err := svc.CreditNote(ctx, &CreditNoteInput{UserID: uuid.New(), PaymentID: unsigned.ID, Reason: "x"})
	assert.Error(t, err)

	note := &entity.Payment{OrderID: uuid.New(), Amount: 5000, InvoiceType: enum.InvoiceTypeCreditNote}
	require.NoError(t, svc.Sign(ctx, note, time.Now()))
	require.NoError(t, paymentRepo.Create(ctx, note))

	_, err = svc.CreditNote(ctx, &CreditNoteInput{UserID: uuid.New(), PaymentID: note.ID, Reason: "x"})
	assert.Error(t, err)
}

func TestValidateChain_DetectsTampering(t *testing.T) {
	svc, paymentRepo, _ := newFiscalServiceForTest()
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		p := &entity.Payment{OrderID: uuid.New(), Amount: int64(1000 * (i + 1)), InvoiceType: enum.InvoiceTypeInvoice}
		require.NoError(t, svc.Sign(ctx, p, at.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, paymentRepo.Create(ctx, p))
	}

	start := at.Add(-24 * time.Hour)
	end := at.Add(24 * time.Hour)

	report, err := svc.ValidateChain(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Checked)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Breaks)

	// Tamper with the middle document's amount
	paymentRepo.payments[1].Amount += 100

	report, err = svc.ValidateChain(ctx, start, end)
	require.NoError(t, err)
	assert.False(t, report.Valid)
	require.NotEmpty(t, report.Breaks)
	assert.Equal(t, paymentRepo.payments[1].InvoiceNo, report.Breaks[0].InvoiceNo)
}
