package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/google/uuid"
)

const hashAlgorithm = "SHA-256"

// FiscalService turns payments into signed fiscal documents: sequential
// numbering per series and year, a SHA-256 hash chain per document type,
// and the 45-character IUD required by the Cape Verde e-Fatura platform.
type FiscalService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	companyRepo repository.CompanySettingsRepository
	audit       *AuditService
	tx          repository.TransactionManager
}

// NewFiscalService creates a new fiscal service
func NewFiscalService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	companyRepo repository.CompanySettingsRepository,
	audit *AuditService,
	tx repository.TransactionManager,
) *FiscalService {
	return &FiscalService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		companyRepo: companyRepo,
		audit:       audit,
		tx:          tx,
	}
}

// Sign fills the fiscal fields on an unsigned payment: invoice number,
// hash chained to the previous document of the same type, and IUD. The
// caller persists the payment. Signed payments are immutable.
func (s *FiscalService) Sign(ctx context.Context, payment *entity.Payment, at time.Time) error {
	if payment.IsSigned {
		return apperror.NewConflictError("Payment is already signed")
	}
	if !payment.InvoiceType.IsValid() {
		return apperror.NewBadRequestError("Invalid invoice type")
	}

	settings, err := s.companyRepo.Get(ctx)
	if err != nil {
		return err
	}

	series := seriesFor(settings, payment.InvoiceType)
	count, err := s.paymentRepo.CountByTypeAndYear(ctx, payment.InvoiceType, at.Year())
	if err != nil {
		return err
	}
	invoiceNo := fmt.Sprintf("%s/%d/%05d", series, at.Year(), count+1)

	previousHash := ""
	last, err := s.paymentRepo.GetLastSigned(ctx, payment.InvoiceType)
	if err != nil {
		return err
	}
	if last != nil {
		previousHash = last.InvoiceHash
	}

	invoiceDate := at.Truncate(24 * time.Hour)
	payment.InvoiceNo = invoiceNo
	payment.InvoiceDate = &invoiceDate
	payment.PreviousInvoiceHash = previousHash
	payment.InvoiceHash = DocumentHash(invoiceDate, invoiceNo, payment.Amount, previousHash)
	payment.HashAlgorithm = hashAlgorithm
	payment.IUD = BuildIUD(settings.TaxRegistrationNumber, invoiceNo, invoiceDate)
	payment.IsSigned = true
	payment.SignedAt = &at

	if payment.CustomerTaxID == "" {
		payment.CustomerTaxID = entity.FinalConsumerTaxID
	}
	if payment.CustomerName == "" {
		payment.CustomerName = "Consumidor Final"
	}
	return nil
}

// DocumentHash computes the chained signature over the document's date,
// number, amount (with two decimal places) and the previous document's
// hash. An empty previous hash starts a new chain.
func DocumentHash(date time.Time, invoiceNo string, amount int64, previousHash string) string {
	payload := fmt.Sprintf("%s;%s;%.2f;%s",
		date.Format("2006-01-02"), invoiceNo, float64(amount)/100, previousHash)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// BuildIUD derives the 45-character unique document identifier from the
// issuer NIF, the invoice number and the issue date.
func BuildIUD(taxID, invoiceNo string, date time.Time) string {
	seed := fmt.Sprintf("%s;%s;%s", taxID, invoiceNo, date.Format("20060102"))
	sum := sha256.Sum256([]byte(seed))
	return "CV" + strings.ToUpper(hex.EncodeToString(sum[:]))[:43]
}

// CreditNoteInput identifies the invoice being reversed.
type CreditNoteInput struct {
	UserID    uuid.UUID
	PaymentID uuid.UUID
	Reason    string
}

// CreditNote issues a signed NC document reversing a signed invoice. The
// original document is never modified; the credit note references it and
// the order's paid total is reduced accordingly.
func (s *FiscalService) CreditNote(ctx context.Context, input *CreditNoteInput) (*entity.Payment, error) {
	original, err := s.paymentRepo.GetWithItems(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	if !original.IsSigned {
		return nil, apperror.NewConflictError("Only signed documents can be credited")
	}
	if original.InvoiceType == enum.InvoiceTypeCreditNote {
		return nil, apperror.NewConflictError("Credit notes cannot be credited")
	}
	existing, err := s.paymentRepo.GetByOrderID(ctx, original.OrderID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.CreditedByID != nil && *p.CreditedByID == original.ID {
			return nil, apperror.NewConflictError("Payment has already been credited")
		}
	}

	note := &entity.Payment{
		OrderID:       original.OrderID,
		Amount:        original.Amount,
		Method:        original.Method,
		State:         enum.PaymentStateCompleted,
		ProcessedByID: &input.UserID,
		InvoiceType:   enum.InvoiceTypeCreditNote,
		CustomerName:  original.CustomerName,
		CustomerTaxID: original.CustomerTaxID,
		CreditedByID:  &original.ID,
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.Sign(ctx, note, time.Now()); err != nil {
			return err
		}
		if err := s.paymentRepo.Create(ctx, note); err != nil {
			return err
		}

		order, err := s.orderRepo.GetByID(ctx, original.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return nil
		}
		totalPaid := order.TotalPaid - original.Amount
		if totalPaid < 0 {
			totalPaid = 0
		}
		status := enum.PaymentStatusPartiallyPaid
		if totalPaid == 0 {
			status = enum.PaymentStatusPending
		} else if totalPaid >= order.GrandTotal {
			status = enum.PaymentStatusPaid
		}
		return s.orderRepo.UpdatePaymentStatus(ctx, order.ID, status, totalPaid)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, input.UserID, enum.AuditActionCreate, "Payment", note.ID.String(),
		note.InvoiceNo, fmt.Sprintf("credit note for %s: %s", original.InvoiceNo, input.Reason))

	return note, nil
}

// ChainBreak describes one discontinuity found during chain validation.
type ChainBreak struct {
	InvoiceNo string `json:"invoice_no"`
	Reason    string `json:"reason"`
}

// ChainReport summarizes a hash chain validation run.
type ChainReport struct {
	Checked int          `json:"checked"`
	Valid   bool         `json:"valid"`
	Breaks  []ChainBreak `json:"breaks,omitempty"`
}

// ValidateChain recomputes every document hash in the period and checks
// each link against its predecessor of the same type.
func (s *FiscalService) ValidateChain(ctx context.Context, start, end time.Time) (*ChainReport, error) {
	payments, err := s.paymentRepo.ListSignedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &ChainReport{Valid: true}
	previous := make(map[enum.InvoiceType]string)
	for i := range payments {
		p := &payments[i]
		report.Checked++

		if p.InvoiceDate == nil {
			report.Breaks = append(report.Breaks, ChainBreak{p.InvoiceNo, "missing invoice date"})
			continue
		}
		expected := DocumentHash(*p.InvoiceDate, p.InvoiceNo, p.Amount, p.PreviousInvoiceHash)
		if expected != p.InvoiceHash {
			report.Breaks = append(report.Breaks, ChainBreak{p.InvoiceNo, "stored hash does not match recomputation"})
		}
		if prev, seen := previous[p.InvoiceType]; seen && prev != p.PreviousInvoiceHash {
			report.Breaks = append(report.Breaks, ChainBreak{p.InvoiceNo, "previous hash does not link to prior document"})
		}
		previous[p.InvoiceType] = p.InvoiceHash
	}
	report.Valid = len(report.Breaks) == 0
	return report, nil
}

func seriesFor(settings *entity.CompanySettings, invoiceType enum.InvoiceType) string {
	switch invoiceType {
	case enum.InvoiceTypeCreditNote:
		return settings.CreditNoteSeries
	case enum.InvoiceTypeSalesReceipt:
		return settings.ReceiptSeries
	default:
		return settings.InvoiceSeries
	}
}
