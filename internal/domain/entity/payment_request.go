package entity

// PaymentRequest is the inbound request to create a payment transaction,
// screened by the validation pipeline before any side effect
type PaymentRequest struct {
	Amount                       string
	Currency                     string
	PaymentMethod                string
	PaymentType                  string
	Provider                     string
	CustomerID                   string
	MobileNo                     string
	MerchantTransactionReference string
}
