package request

// OrderItemRequest represents one line on an order request
type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required,uuid"`
	Quantity   int    `json:"quantity" binding:"required,min=0"`
}

// CreateOrderRequest represents an order create request
type CreateOrderRequest struct {
	TableID         *string            `json:"table_id" binding:"omitempty,uuid"`
	CustomerID      *string            `json:"customer_id" binding:"omitempty,uuid"`
	OrderType       string             `json:"order_type" binding:"required,oneof=RESTAURANT ONLINE"`
	OnlineOrderInfo string             `json:"online_order_info"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderItemsRequest amends line quantities on an open order.
// A quantity of zero removes the line.
type UpdateOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// TransferOrderRequest moves an order to another table
type TransferOrderRequest struct {
	TableID string `json:"table_id" binding:"required,uuid"`
}

// UpdateOrderStatusRequest advances the kitchen-facing status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PREPARING READY DELIVERED CANCELLED"`
}
