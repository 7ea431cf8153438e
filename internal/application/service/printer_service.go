package service

import (
	"context"
	"fmt"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/dcruzdev/restopos/pkg/printer"
	"github.com/google/uuid"
)

// PrinterService renders and prints receipts on the configured ESC/POS
// thermal printer.
type PrinterService struct {
	printer     printer.Printer
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	companyRepo repository.CompanySettingsRepository
	charWidth   int
}

// NewPrinterService creates a new printer service
func NewPrinterService(
	p printer.Printer,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanySettingsRepository,
	charWidth int,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		charWidth:   charWidth,
	}
}

// PrintPaymentReceipt composes a receipt from a payment's fiscal data and
// covered lines and sends it to the printer.
func (s *PrinterService) PrintPaymentReceipt(ctx context.Context, paymentID uuid.UUID, changeDue int64) (*entity.Receipt, error) {
	payment, err := s.paymentRepo.GetWithItems(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}

	settings, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	receipt := s.composeReceipt(ctx, payment, settings, changeDue)
	if err := s.printer.Print(FormatReceipt(receipt, s.charWidth)); err != nil {
		return nil, fmt.Errorf("print receipt: %w", err)
	}
	return receipt, nil
}

// PreviewPaymentReceipt composes the receipt without printing, for
// on-screen display.
func (s *PrinterService) PreviewPaymentReceipt(ctx context.Context, paymentID uuid.UUID) (*entity.Receipt, error) {
	payment, err := s.paymentRepo.GetWithItems(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	settings, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.composeReceipt(ctx, payment, settings, 0), nil
}

// TestPrint sends a short test page to verify connectivity.
func (s *PrinterService) TestPrint(ctx context.Context) error {
	settings, err := s.companyRepo.Get(ctx)
	if err != nil {
		return err
	}

	doc := printer.NewDocument(s.charWidth)
	doc.Init().
		SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(settings.CompanyName).
		SetBold(false).
		Text("Printer test OK").
		FeedLines(3).
		PartialCut()
	return s.printer.Print(doc.Bytes())
}

// GetStatus reports whether the printer is reachable.
func (s *PrinterService) GetStatus() map[string]bool {
	return map[string]bool{"connected": s.printer.IsConnected()}
}

func (s *PrinterService) composeReceipt(ctx context.Context, payment *entity.Payment, settings *entity.CompanySettings, changeDue int64) *entity.Receipt {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: settings.CompanyName,
			Address:   fmt.Sprintf("%s %s, %s", settings.StreetName, settings.BuildingNumber, settings.City),
			Phone:     settings.Telephone,
			TaxID:     settings.TaxRegistrationNumber,
		},
		InvoiceNo:     payment.InvoiceNo,
		Customer:      payment.CustomerName,
		PaymentMethod: string(payment.Method),
		GrandTotal:    float64(payment.Amount) / 100,
		Paid:          float64(payment.Amount+changeDue) / 100,
		ChangeDue:     float64(changeDue) / 100,
		IUD:           payment.IUD,
	}
	if payment.InvoiceDate != nil {
		receipt.Date = payment.InvoiceDate.Format("2006-01-02")
	} else {
		receipt.Date = payment.CreatedAt.Format("2006-01-02")
	}

	if payment.ProcessedByID != nil {
		if cashier, err := s.userRepo.GetByID(ctx, *payment.ProcessedByID); err == nil && cashier != nil {
			receipt.Cashier = cashier.FirstName + " " + cashier.LastName
		}
	}

	subtotal := payment.Amount * 100 / (100 + entity.IVARate)
	receipt.SubTotal = float64(subtotal) / 100
	receipt.IVA = float64(payment.Amount-subtotal) / 100

	for _, item := range payment.Items {
		name := "Item"
		if item.MenuItem != nil {
			name = item.MenuItem.Name
		}
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.UnitPrice*int64(item.Quantity)) / 100,
		})
	}
	return receipt
}

// FormatReceipt renders a receipt as an ESC/POS byte stream.
func FormatReceipt(r *entity.Receipt, charWidth int) []byte {
	doc := printer.NewDocument(charWidth)
	doc.Init().
		SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.TextF("Tel: %s", r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("NIF: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Invoice", r.InvoiceNo).
		KeyValue("Date", r.Date)
	if r.Cashier != "" {
		doc.KeyValue("Cashier", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer", r.Customer)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment", r.PaymentMethod)
	}
	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("   @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-').
		KeyValue("Subtotal", fmt.Sprintf("%.2f", r.SubTotal)).
		KeyValue("IVA (15%)", fmt.Sprintf("%.2f", r.IVA)).
		SetBold(true).
		KeyValue("TOTAL", fmt.Sprintf("%.2f", r.GrandTotal)).
		SetBold(false).
		KeyValue("Paid", fmt.Sprintf("%.2f", r.Paid)).
		KeyValue("Change", fmt.Sprintf("%.2f", r.ChangeDue))

	if r.IUD != "" {
		doc.Separator('-').
			SetAlign(printer.AlignCenter).
			Text("IUD").
			Text(r.IUD)
	}

	doc.SetAlign(printer.AlignCenter).
		FeedLines(1).
		Text("Obrigado pela sua visita!").
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
