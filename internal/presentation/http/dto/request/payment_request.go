package request

// ProcessPaymentRequest represents a payment submission. Items maps order
// line IDs to the units being paid for; manual payments ignore the
// selection and apply Amount against the remaining balance.
type ProcessPaymentRequest struct {
	OrderID       string         `json:"order_id" binding:"required,uuid"`
	Items         map[string]int `json:"items"`
	Manual        bool           `json:"manual"`
	Amount        float64        `json:"amount" binding:"omitempty,gt=0"`
	Tendered      float64        `json:"tendered" binding:"required,gt=0"`
	Method        string         `json:"method" binding:"required,oneof=CASH CREDIT_CARD DEBIT_CARD ONLINE"`
	InvoiceType   string         `json:"invoice_type" binding:"omitempty,oneof=FT FR TV"`
	CustomerName  string         `json:"customer_name"`
	CustomerTaxID string         `json:"customer_tax_id" binding:"omitempty,len=9,numeric"`
}

// CreditNoteRequest reverses a signed document
type CreditNoteRequest struct {
	Reason string `json:"reason" binding:"required,min=3"`
}
