package entity

// Wire protocol constants shared by both sides of the deposit protocol
const (
	ProtocolVersion    = "1.1"
	MethodDeposit      = "Deposit"
	MethodNotification = "Notification"

	// ErrorName tags provider-side error envelopes
	ErrorName = "JSONRPCError"
)

// Notification outcomes delivered asynchronously by the provider
const (
	NotificationSuccess = "SUCCESS"
	NotificationFailed  = "FAILED"
)

// Envelope is the signed wire message exchanged with the deposit provider.
// Exactly one of Result or Error is set.
type Envelope struct {
	Version string        `json:"version"`
	Result  *Result       `json:"result,omitempty"`
	Error   *ErrorWrapper `json:"error,omitempty"`
}

// Result carries a signed payload. The signature covers
// method + uuid + canonical serialization of Data; the signature field
// itself is never part of the signed material.
type Result struct {
	UUID      string `json:"uuid"`
	Method    string `json:"method"`
	Signature string `json:"signature"`
	Data      any    `json:"data"`
}

// ErrorWrapper is the provider-side error envelope body
type ErrorWrapper struct {
	Name    string        `json:"name"`
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Error   *ErrorDetails `json:"error"`
}

// ErrorDetails mirrors Result for error payloads, signed the same way
type ErrorDetails struct {
	UUID      string    `json:"uuid"`
	Method    string    `json:"method"`
	Signature string    `json:"signature"`
	Data      ErrorData `json:"data"`
}

// ErrorData is the provider's error code and message
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DepositRequestData is the payload the merchant signs and sends on initiate
type DepositRequestData struct {
	Username        string            `json:"username"`
	Password        string            `json:"password"`
	NotificationURL string            `json:"notificationURL"`
	EndUserID       string            `json:"endUserID"`
	MessageID       string            `json:"messageID"`
	Attributes      DepositAttributes `json:"attributes"`
}

// DepositAttributes carries the end-user and order details of a deposit
type DepositAttributes struct {
	Country     string  `json:"Country"`
	Locale      string  `json:"Locale"`
	Currency    string  `json:"Currency"`
	Amount      float64 `json:"Amount"`
	Firstname   string  `json:"Firstname"`
	Lastname    string  `json:"Lastname"`
	Email       string  `json:"Email"`
	MobilePhone string  `json:"MobilePhone,omitempty"`
	SuccessURL  string  `json:"SuccessURL"`
	FailURL     string  `json:"FailURL"`
}

// DepositResponseData is the provider's success payload
type DepositResponseData struct {
	OrderID string `json:"orderId"`
	URL     string `json:"url"`
}

// DepositResult is the parsed provider success answer, kept with its
// signature fields so the lifecycle can verify authenticity
type DepositResult struct {
	UUID      string
	Method    string
	Signature string
	Data      DepositResponseData
}

// NotificationPayload is the signed asynchronous settlement notification
type NotificationPayload struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}
