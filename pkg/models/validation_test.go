package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidMoney(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{value: "0", expected: true},
		{value: "150.00", expected: true},
		{value: "600.5", expected: true},
		{value: "9999999.99", expected: true},
		{value: "-9999999.99", expected: true},
		{value: "10000000", expected: false},
		{value: "0.001", expected: false},
		{value: "12.345", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidMoney(decimal.RequireFromString(tt.value)))
		})
	}
}

func TestMaxMoney(t *testing.T) {
	assert.Equal(t, "9999999.99", MaxMoney.StringFixed(MoneyPlaces))
}

func TestValidateReportsConstraintViolation(t *testing.T) {
	err := validate(&Review{Rating: 0, Comment: "fine"})
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.Contains(t, err.Error(), "Review.Rating")

	assert.NoError(t, validate(&Review{Rating: 3, Comment: "fine"}))
	assert.ErrorIs(t, validate(&Payment{Amount: decimal.RequireFromString("1.234"), Status: PaymentPending, TransactionReference: "T"}), ErrConstraintViolation)
}
