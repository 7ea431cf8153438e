package request

// PrintReceiptRequest is the request body for printing a payment receipt.
type PrintReceiptRequest struct {
	PaymentID string  `json:"payment_id" binding:"required,uuid"`
	ChangeDue float64 `json:"change_due" binding:"min=0"`
}
