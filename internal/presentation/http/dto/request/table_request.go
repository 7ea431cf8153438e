package request

// CreateTableRequest represents a table create request
type CreateTableRequest struct {
	Number   int `json:"number" binding:"required,gt=0"`
	Capacity int `json:"capacity" binding:"required,gt=0"`
}

// UpdateTableRequest represents a partial table update
type UpdateTableRequest struct {
	Capacity *int    `json:"capacity" binding:"omitempty,gt=0"`
	Status   *string `json:"status" binding:"omitempty,oneof=AV OC RE"`
}
