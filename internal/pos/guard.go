package pos

import (
	"context"
	"errors"
	"sync"

	"github.com/dcruzdev/restopos/internal/domain/enum"
	"github.com/google/uuid"
)

// State is the submission guard's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
)

var (
	// ErrSubmissionInFlight is returned when Submit is called while a
	// previous submission has not finished.
	ErrSubmissionInFlight = errors.New("pos: a payment submission is already in flight")
	// ErrAlreadySucceeded is returned when Submit is called after a
	// successful submission without Reset.
	ErrAlreadySucceeded = errors.New("pos: payment already submitted for this session")
	// ErrNoOpenRegister blocks submission when the operator has no open
	// cash register session.
	ErrNoOpenRegister = errors.New("pos: no open cash register session")
	// ErrEmptySelection blocks item-based submission with nothing selected.
	ErrEmptySelection = errors.New("pos: no items selected for payment")
	// ErrInvalidAmount blocks submission of a non-positive tender.
	ErrInvalidAmount = errors.New("pos: tendered amount must be positive")
	// ErrPartialDeclined is returned when the operator declines the
	// partial-payment confirmation. No request is sent.
	ErrPartialDeclined = errors.New("pos: partial payment declined by operator")
)

// Request is the single payment request frozen at submission time.
type Request struct {
	OrderID       uuid.UUID
	Amount        int64 // cents
	Method        enum.PaymentMethod
	Manual        bool              // manual-amount mode, Items is nil
	Items         map[uuid.UUID]int // ledger selection keyed by order line ID when not manual
	InvoiceType   enum.InvoiceType
	CustomerName  string
	CustomerTaxID string
}

// Result is what the backend reports for a completed payment.
type Result struct {
	PaymentID uuid.UUID
	ChangeDue int64 // cents
}

// Submitter issues the payment request to the backend. Exactly one call
// is made per successful guard transition.
type Submitter interface {
	SubmitPayment(ctx context.Context, req Request) (*Result, error)
}

// ConfirmFunc asks the operator to confirm a partial payment (tendered
// less than owed). Returning false aborts the submission with all state
// intact.
type ConfirmFunc func(tendered, owed int64) bool

// Guard serializes payment submission for one terminal view: at most one
// in-flight request, preconditions checked atomically at the moment of
// submission, and ledger/amount state untouched on failure so the
// operator can retry.
type Guard struct {
	mu        sync.Mutex
	state     State
	submitter Submitter
	confirm   ConfirmFunc
	result    *Result
}

// NewGuard creates a submission guard. confirm may be nil, in which case
// partial payments are declined.
func NewGuard(submitter Submitter, confirm ConfirmFunc) *Guard {
	return &Guard{submitter: submitter, confirm: confirm}
}

// State returns the guard's current state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Result returns the captured result after a successful submission.
func (g *Guard) Result() *Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result
}

// Reset returns a successful guard to Idle for a new payment session.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateSubmitting {
		g.state = StateIdle
		g.result = nil
	}
}

// SubmitInput carries everything the guard needs to validate and build
// the payment request.
type SubmitInput struct {
	OrderID       uuid.UUID
	RegisterOpen  bool
	Ledger        *Ledger
	ManualMode    bool
	Tendered      int64 // cents
	Owed          int64 // order's outstanding remainder, cents
	Method        enum.PaymentMethod
	InvoiceType   enum.InvoiceType
	CustomerName  string
	CustomerTaxID string
}

// Submit performs the Idle → Submitting transition, issues exactly one
// request, and lands in Success or back in Idle with the error.
func (g *Guard) Submit(ctx context.Context, in SubmitInput) (*Result, error) {
	g.mu.Lock()
	switch g.state {
	case StateSubmitting:
		g.mu.Unlock()
		return nil, ErrSubmissionInFlight
	case StateSuccess:
		g.mu.Unlock()
		return nil, ErrAlreadySucceeded
	}

	// Preconditions, checked atomically with the state transition.
	if !in.RegisterOpen {
		g.mu.Unlock()
		return nil, ErrNoOpenRegister
	}
	if !in.ManualMode && (in.Ledger == nil || in.Ledger.IsEmpty()) {
		g.mu.Unlock()
		return nil, ErrEmptySelection
	}
	if in.Tendered <= 0 {
		g.mu.Unlock()
		return nil, ErrInvalidAmount
	}
	if in.Tendered < in.Owed {
		confirm := g.confirm
		if confirm == nil || !confirm(in.Tendered, in.Owed) {
			g.mu.Unlock()
			return nil, ErrPartialDeclined
		}
	}

	req := Request{
		OrderID:       in.OrderID,
		Amount:        in.Tendered,
		Method:        in.Method,
		Manual:        in.ManualMode,
		InvoiceType:   in.InvoiceType,
		CustomerName:  in.CustomerName,
		CustomerTaxID: in.CustomerTaxID,
	}
	if !in.ManualMode {
		req.Items = in.Ledger.Selection()
	}

	g.state = StateSubmitting
	g.mu.Unlock()

	res, err := g.submitter.SubmitPayment(ctx, req)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.state = StateIdle
		return nil, err
	}
	g.state = StateSuccess
	g.result = res
	return res, nil
}
