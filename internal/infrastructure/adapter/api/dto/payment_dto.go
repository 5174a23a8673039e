package dto

// CreatePaymentRequest is the body of POST /payments. Customer ID and mobile
// number are screened by the configured validation pipeline, not by binding.
type CreatePaymentRequest struct {
	Amount                       string `json:"amount" binding:"required"`
	Currency                     string `json:"currency" binding:"required"`
	PaymentMethod                string `json:"paymentMethod" binding:"required"`
	PaymentType                  string `json:"paymentType" binding:"required"`
	Provider                     string `json:"provider" binding:"required"`
	CustomerID                   string `json:"customerID"`
	MobileNo                     string `json:"mobileNo"`
	MerchantTransactionReference string `json:"merchantTransactionReference"`
}

// CreatePaymentResponse answers a successful creation
type CreatePaymentResponse struct {
	TxnReference string `json:"txnReference"`
	TxnStatus    string `json:"txnStatus"`
}

// InitiatePaymentRequest is the body of POST /payments/:txnReference/initiate
type InitiatePaymentRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Country    string `json:"country" binding:"required"`
	Locale     string `json:"locale" binding:"required"`
	SuccessURL string `json:"successUrl" binding:"required,url"`
	FailURL    string `json:"failUrl" binding:"required,url"`
}

// InitiatePaymentResponse answers a successful initiation with the redirect URL
type InitiatePaymentResponse struct {
	TxnReference string `json:"txnReference"`
	TxnStatus    string `json:"txnStatus"`
	URL          string `json:"url"`
}
