package request

// CreateCustomerRequest represents a customer create request
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=200"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	TaxID   string `json:"tax_id" binding:"omitempty,len=9,numeric"`
	Address string `json:"address"`
}

// UpdateCustomerRequest represents a partial customer update
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=200"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	TaxID   *string `json:"tax_id" binding:"omitempty,len=9,numeric"`
	Address *string `json:"address"`
}
