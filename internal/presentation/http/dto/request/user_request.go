package request

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=255"`
	LastName  *string `json:"last_name" binding:"omitempty,min=2,max=255"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
	IsActive  *bool   `json:"is_active"`
}

// RoleRequest assigns or removes a role by name
type RoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager cashier waiter"`
}
