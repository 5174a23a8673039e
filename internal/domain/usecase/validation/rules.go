package validation

import (
	"github.com/amirhossein-jamali/payment-processor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-processor/internal/domain/error"
)

// Rule names as they appear in configuration
const (
	RuleCustomerID   = "CUSTOMER_ID_RULE"
	RuleMobileNumber = "MOBILE_NUMBER_RULE"
)

// CustomerIDValidator rejects requests without a customer identifier
type CustomerIDValidator struct{}

// NewCustomerIDValidator creates the customer-id presence check
func NewCustomerIDValidator() *CustomerIDValidator {
	return &CustomerIDValidator{}
}

// Name returns the configured rule name
func (v *CustomerIDValidator) Name() string {
	return RuleCustomerID
}

// Validate checks the customer identifier is present
func (v *CustomerIDValidator) Validate(request *entity.PaymentRequest) error {
	if request.CustomerID == "" {
		return errs.NewValidationError(RuleCustomerID,
			errs.CodeMissingCustomerID, "Customer ID is missing in the payment request")
	}
	return nil
}

// MobileNumberValidator rejects requests without a mobile number
type MobileNumberValidator struct{}

// NewMobileNumberValidator creates the mobile-number presence check
func NewMobileNumberValidator() *MobileNumberValidator {
	return &MobileNumberValidator{}
}

// Name returns the configured rule name
func (v *MobileNumberValidator) Name() string {
	return RuleMobileNumber
}

// Validate checks the mobile number is present
func (v *MobileNumberValidator) Validate(request *entity.PaymentRequest) error {
	if request.MobileNo == "" {
		return errs.NewValidationError(RuleMobileNumber,
			errs.CodeMissingMobileNumber, "Mobile number is missing in the payment request")
	}
	return nil
}
