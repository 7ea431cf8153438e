package request

// CreateSupplierRequest represents a supplier create request
type CreateSupplierRequest struct {
	TaxID          string `json:"tax_id" binding:"required,len=9,numeric"`
	CompanyName    string `json:"company_name" binding:"required,min=2,max=200"`
	ContactPerson  string `json:"contact_person"`
	StreetName     string `json:"street_name"`
	BuildingNumber string `json:"building_number"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code"`
	Region         string `json:"region"`
	Country        string `json:"country" binding:"omitempty,len=2"`
	Telephone      string `json:"telephone"`
	Email          string `json:"email" binding:"omitempty,email"`
}

// UpdateSupplierRequest represents a partial supplier update
type UpdateSupplierRequest struct {
	CompanyName    *string `json:"company_name" binding:"omitempty,min=2,max=200"`
	ContactPerson  *string `json:"contact_person"`
	StreetName     *string `json:"street_name"`
	BuildingNumber *string `json:"building_number"`
	City           *string `json:"city"`
	PostalCode     *string `json:"postal_code"`
	Region         *string `json:"region"`
	Country        *string `json:"country" binding:"omitempty,len=2"`
	Telephone      *string `json:"telephone"`
	Email          *string `json:"email" binding:"omitempty,email"`
	IsActive       *bool   `json:"is_active"`
}
