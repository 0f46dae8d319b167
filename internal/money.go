package internal

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// displayPlaces is the number of fraction digits used in every user-facing amount.
const displayPlaces = 2

// ErrInvalidAmount is returned when text cannot be read as a decimal amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount reads a decimal amount from user input.
// Both dot (12.34) and comma (12,34) decimal separators are accepted.
// Unlike limits, record amounts carry no sign constraint.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.Wrap(ErrInvalidAmount, "empty value")
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "%q", s)
	}
	return d, nil
}

// ParseLimit reads a daily limit. Limits must not be negative.
func ParseLimit(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "parsing limit")
	}
	if d.IsNegative() {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "negative limit %s", d)
	}
	return d, nil
}

// FormatAmount renders an amount rounded half away from zero to two places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(displayPlaces)
}
