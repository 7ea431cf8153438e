package service

import (
	"context"
	"sync"

	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/dcruzdev/restopos/internal/domain/repository"
	"github.com/dcruzdev/restopos/internal/pos"
	"github.com/dcruzdev/restopos/pkg/apperror"
	"github.com/google/uuid"
)

// TerminalService keeps one in-memory payment session per operator. A
// session wraps the selection ledger, the keypad amount and the
// submission guard for the order the operator is settling; the HTTP
// layer drives it key by key and the guard hands the frozen request to
// the payment service exactly once.
type TerminalService struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*terminalSession

	orderRepo    repository.OrderRepository
	registerRepo repository.CashRegisterRepository
	payments     *PaymentService
}

// NewTerminalService creates a new terminal service
func NewTerminalService(
	orderRepo repository.OrderRepository,
	registerRepo repository.CashRegisterRepository,
	payments *PaymentService,
) *TerminalService {
	return &TerminalService{
		sessions:     make(map[uuid.UUID]*terminalSession),
		orderRepo:    orderRepo,
		registerRepo: registerRepo,
		payments:     payments,
	}
}

// terminalSession state is guarded by mu; every operation on a session
// runs under it, so two requests from the same operator serialize.
type terminalSession struct {
	mu             sync.Mutex
	orderID        uuid.UUID
	ledger         *pos.Ledger
	amount         pos.AmountInput
	guard          *pos.Guard
	manual         bool
	confirmPartial bool
}

// terminalSubmitter adapts the payment service to the guard's Submitter.
type terminalSubmitter struct {
	payments *PaymentService
	orders   repository.OrderRepository
	userID   uuid.UUID
}

func (t *terminalSubmitter) SubmitPayment(ctx context.Context, req pos.Request) (*pos.Result, error) {
	input := &ProcessPaymentInput{
		UserID:        t.userID,
		OrderID:       req.OrderID,
		Tendered:      req.Amount,
		Method:        req.Method,
		InvoiceType:   req.InvoiceType,
		CustomerName:  req.CustomerName,
		CustomerTaxID: req.CustomerTaxID,
	}
	if req.Manual {
		order, err := t.orders.GetWithItems(ctx, req.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperror.NewNotFoundError("Order")
		}
		// The keypad amount above the balance is change, not overpayment.
		amount := req.Amount
		if remaining := order.RemainingAmount(); amount > remaining {
			amount = remaining
		}
		input.Manual = true
		input.Amount = amount
	} else {
		input.Items = req.Items
	}

	result, err := t.payments.ProcessPayment(ctx, input)
	if err != nil {
		return nil, err
	}
	return &pos.Result{PaymentID: result.Payment.ID, ChangeDue: result.ChangeDue}, nil
}

// SessionView is a snapshot of a terminal session for display.
type SessionView struct {
	OrderID       uuid.UUID
	Lines         []pos.LineItem
	Selected      map[uuid.UUID]int
	Totals        pos.Totals
	Owed          int64
	EnteredAmount string
	EnteredCents  int64
	Manual        bool
}

// StartSession begins (or restarts) the operator's payment session for
// an order. Any previous session for the operator is discarded.
func (s *TerminalService) StartSession(ctx context.Context, operatorID, orderID uuid.UUID) (*SessionView, error) {
	order, err := s.orderRepo.GetWithItems(ctx, orderID)
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

	sess := &terminalSession{
		orderID: orderID,
		ledger:  pos.NewLedger(order.Items),
	}
	submitter := &terminalSubmitter{payments: s.payments, orders: s.orderRepo, userID: operatorID}
	sess.guard = pos.NewGuard(submitter, func(_, _ int64) bool { return sess.confirmPartial })

	s.mu.Lock()
	s.sessions[operatorID] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshot(ctx, sess)
}

// EndSession discards the operator's session, if any.
func (s *TerminalService) EndSession(operatorID uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, operatorID)
	s.mu.Unlock()
}

// View returns the current session snapshot.
func (s *TerminalService) View(ctx context.Context, operatorID uuid.UUID) (*SessionView, error) {
	sess, err := s.session(operatorID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshot(ctx, sess)
}

// ToggleLine toggles an order line in and out of the selection.
func (s *TerminalService) ToggleLine(ctx context.Context, operatorID, lineID uuid.UUID) (*SessionView, error) {
	sess, err := s.session(operatorID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.ledger.Toggle(lineID)
	return s.snapshot(ctx, sess)
}

// SetLineQuantity sets the quantity-to-pay for one order line.
func (s *TerminalService) SetLineQuantity(ctx context.Context, operatorID, lineID uuid.UUID, quantity int) (*SessionView, error) {
	sess, err := s.session(operatorID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.ledger.SetQuantity(lineID, quantity)
	return s.snapshot(ctx, sess)
}

// SelectAll selects every unpaid line at its full remaining quantity.
func (s *TerminalService) SelectAll(ctx context.Context, operatorID uuid.UUID) (*SessionView, error) {
	sess, err := s.session(operatorID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.ledger.SelectAll()
	return s.snapshot(ctx, sess)
}

// SelectNone clears the selection.
func (s *TerminalService) SelectNone(ctx context.Context, operatorID uuid.UUID) (*SessionView, error) {
	sess, err := s.session(operatorID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.ledger.SelectNone()
	return s.snapshot(ctx, sess)
}

// SetManualMode switches between item-selection and manual-amount mode.
func (s *TerminalService) SetManualMode(ctx context.Context, operatorID uuid.UUID, manual bool) (*SessionView, error) {
	sess, err := s.session(operatorID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.manual = manual
	return s.snapshot(ctx, sess)
}

// PressKey feeds one keypad key into the amount input: a digit, ".",
// "back" or "clear".
func (s *TerminalService) PressKey(ctx context.Context, operatorID uuid.UUID, key string) (*SessionView, error) {
	sess, err := s.session(operatorID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	switch key {
	case ".":
		sess.amount.AppendDecimal()
	case "back":
		sess.amount.Backspace()
	case "clear":
		sess.amount.Clear()
	default:
		if len(key) != 1 || key[0] < '0' || key[0] > '9' {
			return nil, apperror.NewBadRequestError("Invalid keypad key")
		}
		sess.amount.AppendDigit(key[0])
	}
	return s.snapshot(ctx, sess)
}

// QuickAmount sets the tender to a percentage of the payable amount.
func (s *TerminalService) QuickAmount(ctx context.Context, operatorID uuid.UUID, percent int) (*SessionView, error) {
	if percent <= 0 || percent > 100 {
		return nil, apperror.NewBadRequestError("Percent must be between 1 and 100")
	}
	sess, err := s.session(operatorID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	base, err := s.payableBase(ctx, sess)
	if err != nil {
		return nil, err
	}
	sess.amount.Set(pos.QuickAmount(base, percent))
	return s.snapshot(ctx, sess)
}

// SubmitTerminalInput carries the operator's submission choices.
type SubmitTerminalInput struct {
	Method         enum.PaymentMethod
	InvoiceType    enum.InvoiceType
	CustomerName   string
	CustomerTaxID  string
	ConfirmPartial bool
}

// Submit sends the session's payment through the guard. A successful
// submission ends the session; a failed one leaves the ledger and typed
// amount intact so the operator can retry.
func (s *TerminalService) Submit(ctx context.Context, operatorID uuid.UUID, input *SubmitTerminalInput) (*pos.Result, error) {
	sess, err := s.session(operatorID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	register, err := s.registerRepo.GetOpenByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetWithItems(ctx, sess.orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	tendered := sess.amount.Cents()
	if tendered == 0 && !sess.manual {
		// No amount typed means exact tender for the selection.
		tendered = pos.Calculate(sess.ledger).Payable
	}

	sess.confirmPartial = input.ConfirmPartial
	result, err := sess.guard.Submit(ctx, pos.SubmitInput{
		OrderID:       sess.orderID,
		RegisterOpen:  register != nil,
		Ledger:        sess.ledger,
		ManualMode:    sess.manual,
		Tendered:      tendered,
		Owed:          order.RemainingAmount(),
		Method:        input.Method,
		InvoiceType:   input.InvoiceType,
		CustomerName:  input.CustomerName,
		CustomerTaxID: input.CustomerTaxID,
	})
	if err != nil {
		return nil, err
	}

	s.EndSession(operatorID)
	return result, nil
}

func (s *TerminalService) session(operatorID uuid.UUID) (*terminalSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[operatorID]
	if !ok {
		return nil, apperror.NewNotFoundError("Terminal session")
	}
	return sess, nil
}

// payableBase is what the quick-amount presets are a percentage of: the
// selection's payable in item mode, the order's remainder in manual mode.
func (s *TerminalService) payableBase(ctx context.Context, sess *terminalSession) (int64, error) {
	if !sess.manual {
		return pos.Calculate(sess.ledger).Payable, nil
	}
	order, err := s.orderRepo.GetWithItems(ctx, sess.orderID)
	if err != nil {
		return 0, err
	}
	if order == nil {
		return 0, apperror.NewNotFoundError("Order")
	}
	return order.RemainingAmount(), nil
}

func (s *TerminalService) snapshot(ctx context.Context, sess *terminalSession) (*SessionView, error) {
	order, err := s.orderRepo.GetWithItems(ctx, sess.orderID)
	if err != nil {
		return nil, err
	}
	var owed int64
	if order != nil {
		owed = order.RemainingAmount()
	}
	return &SessionView{
		OrderID:       sess.orderID,
		Lines:         sess.ledger.Lines(),
		Selected:      sess.ledger.Selection(),
		Totals:        pos.Calculate(sess.ledger),
		Owed:          owed,
		EnteredAmount: sess.amount.String(),
		EnteredCents:  sess.amount.Cents(),
		Manual:        sess.manual,
	}, nil
}
