package request

// StartTerminalSessionRequest opens a payment session against an order
type StartTerminalSessionRequest struct {
	OrderID string `json:"order_id" binding:"required,uuid"`
}

// TerminalLineRequest adjusts one order line in the session's selection.
// Quantity is ignored for toggle.
type TerminalLineRequest struct {
	LineID   string `json:"line_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"omitempty,min=0"`
}

// TerminalKeyRequest feeds a keypad key: 0-9, ".", "back" or "clear"
type TerminalKeyRequest struct {
	Key string `json:"key" binding:"required"`
}

// TerminalQuickAmountRequest applies a preset percentage of the payable
type TerminalQuickAmountRequest struct {
	Percent int `json:"percent" binding:"required,min=1,max=100"`
}

// TerminalModeRequest switches between selection and manual-amount mode
type TerminalModeRequest struct {
	Manual bool `json:"manual"`
}

// SubmitTerminalRequest sends the session's payment
type SubmitTerminalRequest struct {
	Method         string `json:"method" binding:"required,oneof=CASH CREDIT_CARD DEBIT_CARD ONLINE"`
	InvoiceType    string `json:"invoice_type" binding:"omitempty,oneof=FT FR TV"`
	CustomerName   string `json:"customer_name"`
	CustomerTaxID  string `json:"customer_tax_id" binding:"omitempty,len=9,numeric"`
	ConfirmPartial bool   `json:"confirm_partial"`
}
