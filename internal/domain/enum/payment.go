package enum

// PaymentMethod is the fixed enumeration of accepted payment methods.
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "CASH"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodOnline     PaymentMethod = "ONLINE"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodOnline:
		return true
	}
	return false
}

// IsCard reports whether the method settles through a card terminal.
func (m PaymentMethod) IsCard() bool {
	return m == PaymentMethodCreditCard || m == PaymentMethodDebitCard
}

// PaymentState is the processing state of a payment record.
type PaymentState string

const (
	PaymentStatePending   PaymentState = "PENDING"
	PaymentStateCompleted PaymentState = "COMPLETED"
	PaymentStateFailed    PaymentState = "FAILED"
)

// InvoiceType is the fiscal document type per the e-Fatura CV catalogue.
type InvoiceType string

const (
	InvoiceTypeInvoice        InvoiceType = "FT" // Fatura
	InvoiceTypeInvoiceReceipt InvoiceType = "FR" // Fatura Recibo
	InvoiceTypeSalesReceipt   InvoiceType = "TV" // Talao de Venda
	InvoiceTypeCreditNote     InvoiceType = "NC" // Nota de Credito
)

func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceTypeInvoice, InvoiceTypeInvoiceReceipt, InvoiceTypeSalesReceipt, InvoiceTypeCreditNote:
		return true
	}
	return false
}

// DocumentTypeCode returns the DNRE numeric code used inside the e-Fatura XML.
func (t InvoiceType) DocumentTypeCode() string {
	switch t {
	case InvoiceTypeInvoice:
		return "1"
	case InvoiceTypeInvoiceReceipt:
		return "2"
	case InvoiceTypeSalesReceipt:
		return "3"
	case InvoiceTypeCreditNote:
		return "5"
	default:
		return "1"
	}
}
