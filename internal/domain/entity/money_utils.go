package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/amirhossein-jamali/payment-processor/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for amounts
const MaxDecimalPlaces = 2

// ValidateAmount validates a decimal amount string and normalizes it to two
// decimal places. Uses a string-based approach to avoid floating-point
// precision issues:
// - "100" becomes "100.00"
// - "18.1" becomes "18.10"
// - "18.10" stays "18.10"
// Returns an error for empty, negative or malformed values.
func ValidateAmount(amount string) (string, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return "", fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return "", errs.ErrNegativeAmount
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	wholePart := parts[0]
	decimalPart := ""
	if len(parts) == 2 {
		decimalPart = parts[1]
	}

	if wholePart == "" {
		wholePart = "0"
	}
	if _, err := strconv.ParseUint(wholePart, 10, 64); err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	switch len(decimalPart) {
	case 0:
		decimalPart = "00"
	case 1:
		decimalPart += "0"
	case 2:
		// Already two decimal places
	default:
		return "", fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}
	if _, err := strconv.ParseUint(decimalPart, 10, 64); err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	return wholePart + "." + decimalPart, nil
}

// AmountToFloat converts a validated amount string to the numeric form used
// in the provider deposit payload
func AmountToFloat(amount string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	if value < 0 {
		return 0, errs.ErrNegativeAmount
	}
	return value, nil
}
