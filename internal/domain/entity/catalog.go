package entity

// Static catalogs mapping the request's symbolic names onto the numeric
// identifiers of the persisted schema. Unknown names map to zero.

var paymentMethodIDs = map[string]int{
	"APM":  1,
	"CARD": 2,
}

var providerIDs = map[string]int{
	"TRUSTLY": 1,
}

var paymentTypeIDs = map[string]int{
	"DEPOSIT":    1,
	"WITHDRAWAL": 2,
}

// PaymentMethodID resolves a payment method name to its schema identifier
func PaymentMethodID(name string) int {
	return paymentMethodIDs[name]
}

// ProviderID resolves a provider name to its schema identifier
func ProviderID(name string) int {
	return providerIDs[name]
}

// PaymentTypeID resolves a payment type name to its schema identifier
func PaymentTypeID(name string) int {
	return paymentTypeIDs[name]
}
