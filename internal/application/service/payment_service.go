package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dcruzdev/restopos/internal/domain/entity"
	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/google/uuid"
)

// PaymentService settles orders: it resolves the covered amount from an
// item selection or a manual amount, creates the signed fiscal document,
// decrements the covered order lines, consumes reserved stock and books
// the money on the operator's open register session.
type PaymentService struct {
	paymentRepo     repository.PaymentRepository
	paymentItemRepo repository.PaymentItemRepository
	orderRepo       repository.OrderRepository
	orderItemRepo   repository.OrderItemRepository
	registerRepo    repository.CashRegisterRepository
	tableRepo       repository.TableRepository
	fiscal          *FiscalService
	inventory       *InventoryService
	audit           *AuditService
	tx              repository.TransactionManager
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	paymentItemRepo repository.PaymentItemRepository,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	registerRepo repository.CashRegisterRepository,
	tableRepo repository.TableRepository,
	fiscal *FiscalService,
	inventory *InventoryService,
	audit *AuditService,
	tx repository.TransactionManager,
) *PaymentService {
	return &PaymentService{
		paymentRepo:     paymentRepo,
		paymentItemRepo: paymentItemRepo,
		orderRepo:       orderRepo,
		orderItemRepo:   orderItemRepo,
		registerRepo:    registerRepo,
		tableRepo:       tableRepo,
		fiscal:          fiscal,
		inventory:       inventory,
		audit:           audit,
		tx:              tx,
	}
}

// ProcessPaymentInput is one settlement attempt against an order. Items
// maps order line IDs to the number of units being paid for; when Manual
// is set the selection is ignored and Amount is applied against the
// order's remaining balance instead.
type ProcessPaymentInput struct {
	UserID        uuid.UUID
	OrderID       uuid.UUID
	Items         map[uuid.UUID]int
	Manual        bool
	Amount        int64 // manual amount in cents
	Tendered      int64 // cents handed over by the customer
	Method        enum.PaymentMethod
	InvoiceType   enum.InvoiceType
	CustomerName  string
	CustomerTaxID string
}

// PaymentResult is the outcome of a processed payment.
type PaymentResult struct {
	Payment   *entity.Payment `json:"payment"`
	ChangeDue int64           `json:"-"`
}

// ProcessPayment settles part or all of an order. The operator must have
// an open register session; the payment is signed as a fiscal document
// before it is stored.
func (s *PaymentService) ProcessPayment(ctx context.Context, input *ProcessPaymentInput) (*PaymentResult, error) {
	if !input.Method.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}
	if input.Tendered <= 0 {
		return nil, apperror.NewBadRequestError("Tendered amount must be positive")
	}

	register, err := s.registerRepo.GetOpenByOperator(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if register == nil {
		return nil, apperror.NewConflictError("No open cash register session for this operator")
	}

	order, err := s.orderRepo.GetWithItems(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status == enum.OrderStatusCancelled {
		return nil, apperror.NewConflictError("Order is cancelled")
	}
	if order.RemainingAmount() == 0 {
		return nil, apperror.NewConflictError("Order is already paid in full")
	}

	var (
		amount  int64
		covered []coveredLine
	)
	if input.Manual {
		amount = input.Amount
		if amount <= 0 {
			return nil, apperror.NewBadRequestError("Manual amount must be positive")
		}
		if amount > order.RemainingAmount() {
			return nil, apperror.NewBadRequestError("Manual amount exceeds the order's remaining balance")
		}
	} else {
		covered, amount, err = resolveSelection(order, input.Items)
		if err != nil {
			return nil, err
		}
	}

	// Change is only handed back on cash; card and online tenders settle
	// the exact amount.
	var changeDue int64
	if input.Method == enum.PaymentMethodCash {
		changeDue = input.Tendered - amount
		if changeDue < 0 {
			changeDue = 0
		}
	}

	invoiceType := input.InvoiceType
	if invoiceType == "" {
		invoiceType = enum.InvoiceTypeInvoiceReceipt
	}
	if invoiceType == enum.InvoiceTypeCreditNote {
		return nil, apperror.NewBadRequestError("Credit notes are issued against an existing document")
	}

	payment := &entity.Payment{
		OrderID:        order.ID,
		Amount:         amount,
		Method:         input.Method,
		State:          enum.PaymentStateCompleted,
		CashRegisterID: &register.ID,
		ProcessedByID:  &input.UserID,
		InvoiceType:    invoiceType,
		CustomerName:   input.CustomerName,
		CustomerTaxID:  input.CustomerTaxID,
	}
	// Numbering, hash chaining and the settlement writes succeed or fail
	// together; the unique invoice number aborts the loser of a race.
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.fiscal.Sign(ctx, payment, time.Now()); err != nil {
			return err
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		if len(covered) > 0 {
			items := make([]entity.PaymentItem, 0, len(covered))
			for _, line := range covered {
				items = append(items, entity.PaymentItem{
					PaymentID:  payment.ID,
					MenuItemID: line.menuItemID,
					Quantity:   line.quantity,
					UnitPrice:  line.unitPrice,
				})
			}
			if err := s.paymentItemRepo.CreateBatch(ctx, items); err != nil {
				return err
			}
			for _, line := range covered {
				if err := s.orderItemRepo.DecrementRemaining(ctx, line.orderItemID, line.quantity); err != nil {
					return err
				}
				if err := s.inventory.Consume(ctx, line.menuItemID, line.quantity); err != nil {
					return err
				}
			}
		}

		totalPaid := order.TotalPaid + amount
		status := enum.PaymentStatusPartiallyPaid
		if totalPaid >= order.GrandTotal {
			status = enum.PaymentStatusPaid
		}
		if err := s.orderRepo.UpdatePaymentStatus(ctx, order.ID, status, totalPaid); err != nil {
			return err
		}

		if status == enum.PaymentStatusPaid && order.TableID != nil {
			open, err := s.orderRepo.GetOpenByTable(ctx, *order.TableID)
			if err != nil {
				return err
			}
			stillOpen := false
			for _, o := range open {
				if o.ID != order.ID {
					stillOpen = true
					break
				}
			}
			if !stillOpen {
				if err := s.tableRepo.UpdateStatus(ctx, *order.TableID, enum.TableStatusAvailable); err != nil {
					return err
				}
			}
		}

		register.AddTransaction(amount, input.Method)
		return s.registerRepo.Update(ctx, register)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, input.UserID, enum.AuditActionCreate, "Payment", payment.ID.String(),
		payment.InvoiceNo, fmt.Sprintf("%s %s", input.Method, payment.InvoiceNo))

	stored, err := s.paymentRepo.GetWithItems(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = payment
	}
	return &PaymentResult{Payment: stored, ChangeDue: changeDue}, nil
}

type coveredLine struct {
	orderItemID uuid.UUID
	menuItemID  uuid.UUID
	quantity    int
	unitPrice   int64
}

// resolveSelection validates the selection against the order's unpaid
// quantities and returns the covered lines plus the owed amount with IVA.
func resolveSelection(order *entity.Order, selection map[uuid.UUID]int) ([]coveredLine, int64, error) {
	if len(selection) == 0 {
		return nil, 0, apperror.NewBadRequestError("Payment selection is empty")
	}

	lines := make(map[uuid.UUID]*entity.OrderItem, len(order.Items))
	for i := range order.Items {
		lines[order.Items[i].ID] = &order.Items[i]
	}

	var covered []coveredLine
	var subtotal int64
	for id, qty := range selection {
		line, ok := lines[id]
		if !ok {
			return nil, 0, apperror.NewBadRequestError("Selection references an item not on this order")
		}
		if qty <= 0 || qty > line.RemainingQuantity {
			return nil, 0, apperror.NewBadRequestError(
				fmt.Sprintf("Selection quantity for %s must be between 1 and %d", id, line.RemainingQuantity))
		}
		covered = append(covered, coveredLine{
			orderItemID: id,
			menuItemID:  line.MenuItemID,
			quantity:    qty,
			unitPrice:   line.Price,
		})
		subtotal += line.Price * int64(qty)
	}

	iva := subtotal * entity.IVARate / 100
	return covered, subtotal + iva, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	return s.paymentRepo.List(ctx, params)
}
