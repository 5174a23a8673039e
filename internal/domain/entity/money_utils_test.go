package entity

import (
	"testing"

	errs "github.com/amirhossein-jamali/payment-processor/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	t.Run("Valid amounts are normalized to two decimal places", func(t *testing.T) {
		cases := map[string]string{
			"100":     "100.00",
			"18.1":    "18.10",
			"18.10":   "18.10",
			"0":       "0.00",
			".5":      "0.50",
			" 42.00 ": "42.00",
		}
		for input, expected := range cases {
			normalized, err := ValidateAmount(input)
			require.NoError(t, err, "input %q", input)
			assert.Equal(t, expected, normalized, "input %q", input)
		}
	})

	t.Run("Empty amount", func(t *testing.T) {
		_, err := ValidateAmount("")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		_, err = ValidateAmount("   ")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Negative amount", func(t *testing.T) {
		_, err := ValidateAmount("-10.00")
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})

	t.Run("Malformed amounts", func(t *testing.T) {
		for _, input := range []string{"abc", "1.2.3", "10,50", "1e5", "12.345"} {
			_, err := ValidateAmount(input)
			assert.ErrorIs(t, err, errs.ErrInvalidAmount, "input %q", input)
		}
	})
}

func TestAmountToFloat(t *testing.T) {
	t.Run("Valid amount", func(t *testing.T) {
		value, err := AmountToFloat("18.10")
		require.NoError(t, err)
		assert.InDelta(t, 18.10, value, 0.0001)
	})

	t.Run("Invalid amount", func(t *testing.T) {
		_, err := AmountToFloat("not-a-number")
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Negative amount", func(t *testing.T) {
		_, err := AmountToFloat("-1.00")
		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})
}
