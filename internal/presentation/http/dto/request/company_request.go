package request

// UpdateCompanySettingsRequest represents a partial company settings update
type UpdateCompanySettingsRequest struct {
	CompanyName           *string `json:"company_name" binding:"omitempty,min=2,max=200"`
	TaxRegistrationNumber *string `json:"tax_registration_number" binding:"omitempty,len=9,numeric"`
	StreetName            *string `json:"street_name"`
	BuildingNumber        *string `json:"building_number"`
	City                  *string `json:"city"`
	PostalCode            *string `json:"postal_code"`
	Telephone             *string `json:"telephone"`
	Email                 *string `json:"email" binding:"omitempty,email"`
	Website               *string `json:"website"`
	InvoiceSeries         *string `json:"invoice_series"`
	CreditNoteSeries      *string `json:"credit_note_series"`
	ReceiptSeries         *string `json:"receipt_series"`
}
