package valueobject

import (
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

const (
	amountScale = 2
	// NUMERIC(12,2) leaves ten digits before the point.
	maxAmountIntDigits = 10
)

var maxAmount = decimal.New(1, maxAmountIntDigits)

// Amount is a positive fixed-point money value with two decimal places.
type Amount struct {
	value decimal.Decimal
}

// NewAmount parses a decimal string such as "450" or "450.50".
func NewAmount(raw string) (Amount, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Amount{}, apperror.New(apperror.ErrCodeValidation, "amount must be a number")
	}
	return AmountFromDecimal(d)
}

func AmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if !d.IsPositive() {
		return Amount{}, apperror.New(apperror.ErrCodeValidation, "amount must be positive")
	}
	if !d.Equal(d.Truncate(amountScale)) {
		return Amount{}, apperror.New(apperror.ErrCodeValidation, "amount must have at most 2 decimal places")
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return Amount{}, apperror.New(apperror.ErrCodeValidation, "amount is too large")
	}
	return Amount{value: d}, nil
}

// MustAmount is for constants and tests.
func MustAmount(raw string) Amount {
	a, err := NewAmount(raw)
	if err != nil {
		panic(err)
	}
	return a
}

// String renders the canonical two-decimal form stored in the database.
func (a Amount) String() string {
	return a.value.StringFixed(amountScale)
}

func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

func (a Amount) IsZero() bool {
	return a.value.IsZero()
}
