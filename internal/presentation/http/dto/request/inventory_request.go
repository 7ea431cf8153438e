package request

// AdjustInventoryRequest is a manual stock correction
type AdjustInventoryRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required,min=3"`
}
