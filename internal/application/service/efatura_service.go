package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dcruzdev/restopos/internal/config"
	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/dcruzdev/restopos/pkg/qrcode"
	"github.com/google/uuid"
)

// EFaturaService generates the DNRE e-Fatura electronic document for a
// signed payment. Generation is one-shot: once the XML exists on disk the
// document can only be downloaded, never regenerated.
type EFaturaService struct {
	paymentRepo repository.PaymentRepository
	companyRepo repository.CompanySettingsRepository
	storage     config.StorageConfig
	audit       *AuditService
}

// NewEFaturaService creates a new e-Fatura service
func NewEFaturaService(
	paymentRepo repository.PaymentRepository,
	companyRepo repository.CompanySettingsRepository,
	storage config.StorageConfig,
	audit *AuditService,
) *EFaturaService {
	return &EFaturaService{
		paymentRepo: paymentRepo,
		companyRepo: companyRepo,
		storage:     storage,
		audit:       audit,
	}
}

// dfe is the electronic fiscal document envelope.
type dfe struct {
	XMLName      xml.Name     `xml:"Dfe"`
	IUD          string       `xml:"Iud,attr"`
	DocumentType string       `xml:"DocumentTypeCode,attr"`
	IssueDate    string       `xml:"IssueDate,attr"`
	Number       string       `xml:"DocumentNumber,attr"`
	Currency     string       `xml:"CurrencyCode,attr"`
	Emitter      dfeParty     `xml:"EmitterParty"`
	Receiver     dfeParty     `xml:"ReceiverParty"`
	Lines        []dfeLine    `xml:"Lines>Line"`
	Totals       dfeTotals    `xml:"Totals"`
	Payment      dfePayment   `xml:"Payment"`
	Signature    dfeSignature `xml:"Signature"`
	Reference    *dfeRef      `xml:"ReferencedDocument,omitempty"`
}

type dfeParty struct {
	TaxID   string `xml:"TaxId"`
	Name    string `xml:"Name"`
	Address string `xml:"Address,omitempty"`
}

type dfeLine struct {
	Number      int    `xml:"LineNumber,attr"`
	Description string `xml:"Description"`
	Quantity    int    `xml:"Quantity"`
	UnitPrice   string `xml:"UnitPrice"`
	LineTotal   string `xml:"LineTotal"`
	TaxRate     int    `xml:"Tax>Rate"`
}

type dfeTotals struct {
	Subtotal   string `xml:"TaxableAmount"`
	Tax        string `xml:"TaxAmount"`
	GrandTotal string `xml:"PayableAmount"`
}

type dfePayment struct {
	MeansCode string `xml:"PaymentMeansCode"`
	Amount    string `xml:"PaidAmount"`
}

type dfeSignature struct {
	Algorithm    string `xml:"Algorithm"`
	Hash         string `xml:"Hash"`
	PreviousHash string `xml:"PreviousHash,omitempty"`
}

type dfeRef struct {
	IUD string `xml:"Iud"`
}

// PaymentMeansCode maps a payment method to its DNRE payment-means code.
func PaymentMeansCode(method enum.PaymentMethod) string {
	switch method {
	case enum.PaymentMethodCash:
		return "10"
	case enum.PaymentMethodCreditCard:
		return "48"
	case enum.PaymentMethodDebitCard:
		return "49"
	case enum.PaymentMethodOnline:
		return "30"
	default:
		return "90"
	}
}

// Generate writes the e-Fatura XML for a signed payment and records the
// file path on the payment. Fails if the document was already generated.
func (s *EFaturaService) Generate(ctx context.Context, userID uuid.UUID, paymentID uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetWithItems(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	if !payment.IsSigned {
		return nil, apperror.NewConflictError("Only signed payments can be issued as e-Fatura documents")
	}
	if payment.HasEFatura() {
		return nil, apperror.NewConflictError("The e-Fatura document was already generated")
	}

	settings, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	refIUD := ""
	if payment.InvoiceType == enum.InvoiceTypeCreditNote && payment.CreditedByID != nil {
		original, err := s.paymentRepo.GetByID(ctx, *payment.CreditedByID)
		if err != nil {
			return nil, err
		}
		if original != nil {
			refIUD = original.IUD
		}
	}

	doc := s.buildDocument(payment, settings, refIUD)
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal e-fatura document: %w", err)
	}
	data = append([]byte(xml.Header), data...)

	dir := filepath.Join(s.storage.Path, s.storage.EFaturaDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create e-fatura directory: %w", err)
	}
	path := filepath.Join(dir, payment.IUD+".xml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write e-fatura document: %w", err)
	}

	payment.EFaturaXMLPath = path
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, enum.AuditActionUpdate, "Payment", payment.ID.String(),
		payment.InvoiceNo, "e-fatura generated")
	return payment, nil
}

// DocumentPath returns the path of a generated e-Fatura XML for download.
func (s *EFaturaService) DocumentPath(ctx context.Context, paymentID uuid.UUID) (string, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return "", err
	}
	if payment == nil {
		return "", apperror.NewNotFoundError("Payment")
	}
	if !payment.HasEFatura() {
		return "", apperror.NewNotFoundError("e-Fatura document")
	}
	return payment.EFaturaXMLPath, nil
}

// QRCode renders the document's IUD as a PNG QR code.
func (s *EFaturaService) QRCode(ctx context.Context, paymentID uuid.UUID, size int) ([]byte, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	if payment.IUD == "" {
		return nil, apperror.NewConflictError("Payment has no IUD; sign it first")
	}
	return qrcode.EncodeIUD(payment.IUD, size)
}

func (s *EFaturaService) buildDocument(payment *entity.Payment, settings *entity.CompanySettings, refIUD string) *dfe {
	issueDate := time.Now()
	if payment.InvoiceDate != nil {
		issueDate = *payment.InvoiceDate
	}

	subtotal := payment.Amount * 100 / (100 + entity.IVARate)
	tax := payment.Amount - subtotal

	doc := &dfe{
		IUD:          payment.IUD,
		DocumentType: payment.InvoiceType.DocumentTypeCode(),
		IssueDate:    issueDate.Format("2006-01-02"),
		Number:       payment.InvoiceNo,
		Currency:     settings.CurrencyCode,
		Emitter: dfeParty{
			TaxID:   settings.TaxRegistrationNumber,
			Name:    settings.CompanyName,
			Address: fmt.Sprintf("%s %s, %s", settings.StreetName, settings.BuildingNumber, settings.City),
		},
		Receiver: dfeParty{
			TaxID: payment.CustomerTaxID,
			Name:  payment.CustomerName,
		},
		Totals: dfeTotals{
			Subtotal:   centsToDecimal(subtotal),
			Tax:        centsToDecimal(tax),
			GrandTotal: centsToDecimal(payment.Amount),
		},
		Payment: dfePayment{
			MeansCode: PaymentMeansCode(payment.Method),
			Amount:    centsToDecimal(payment.Amount),
		},
		Signature: dfeSignature{
			Algorithm:    payment.HashAlgorithm,
			Hash:         payment.InvoiceHash,
			PreviousHash: payment.PreviousInvoiceHash,
		},
	}

	for i, item := range payment.Items {
		name := item.MenuItemID.String()
		if item.MenuItem != nil {
			name = item.MenuItem.Name
		}
		doc.Lines = append(doc.Lines, dfeLine{
			Number:      i + 1,
			Description: name,
			Quantity:    item.Quantity,
			UnitPrice:   centsToDecimal(item.UnitPrice),
			LineTotal:   centsToDecimal(item.UnitPrice * int64(item.Quantity)),
			TaxRate:     entity.IVARate,
		})
	}
	if len(doc.Lines) == 0 {
		doc.Lines = append(doc.Lines, dfeLine{
			Number:      1,
			Description: "Pagamento parcial",
			Quantity:    1,
			UnitPrice:   centsToDecimal(subtotal),
			LineTotal:   centsToDecimal(subtotal),
			TaxRate:     entity.IVARate,
		})
	}

	if refIUD != "" {
		doc.Reference = &dfeRef{IUD: refIUD}
	}
	return doc
}

func centsToDecimal(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}
