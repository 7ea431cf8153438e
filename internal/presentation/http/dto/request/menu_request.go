package request

// CategoryRequest represents a menu category create/update request
type CategoryRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	PreparedIn string `json:"prepared_in" binding:"required,oneof=KITCHEN BAR BOTH"`
}

// CreateMenuItemRequest represents a menu item create request
type CreateMenuItemRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=255"`
	Description     string  `json:"description"`
	Ingredients     string  `json:"ingredients"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	CategoryID      string  `json:"category_id" binding:"required,uuid"`
	Quantifiable    bool    `json:"quantifiable"`
	InitialQuantity int     `json:"initial_quantity" binding:"omitempty,min=0"`
}

// UpdateMenuItemRequest represents a partial menu item update
type UpdateMenuItemRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=2,max=255"`
	Description  *string  `json:"description"`
	Ingredients  *string  `json:"ingredients"`
	Price        *float64 `json:"price" binding:"omitempty,gt=0"`
	CategoryID   *string  `json:"category_id" binding:"omitempty,uuid"`
	Availability *bool    `json:"availability"`
}
