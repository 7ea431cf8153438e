package request

// OpenRegisterRequest starts a till session with a counted float
type OpenRegisterRequest struct {
	InitialAmount float64 `json:"initial_amount" binding:"min=0"`
}

// CloseRegisterRequest ends a till session with the declared counts
type CloseRegisterRequest struct {
	DeclaredCash float64 `json:"declared_cash" binding:"min=0"`
	DeclaredCard float64 `json:"declared_card" binding:"min=0"`
}

// CashMovementRequest adds or removes cash outside of a sale
type CashMovementRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Reason string  `json:"reason" binding:"required,min=3"`
}
