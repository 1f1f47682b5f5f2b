// Package moneypkg parses and validates money amounts.
//
// Amounts travel as text and are held as decimal.Decimal with at most Scale
// fractional digits. Floats are never used.
package moneypkg

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits a money amount may carry.
const Scale = 2

const maxInputLen = 24

var (
	// ErrNotANumber indicates the input is not a finite decimal number.
	ErrNotANumber = errors.New("amount is not a number")
	// ErrNotPositive indicates the amount is zero or negative.
	ErrNotPositive = errors.New("amount must be positive")
	// ErrNegative indicates the amount is below zero.
	ErrNegative = errors.New("amount must not be negative")
	// ErrTooPrecise indicates more than Scale fractional digits.
	ErrTooPrecise = errors.New("amount has too many decimal places")
)

// Parse parses a strictly positive amount.
func Parse(s string) (decimal.Decimal, error) {
	d, err := ParseNonNegative(s)
	if err != nil {
		return decimal.Zero, err
	}

	if !d.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}

	return d, nil
}

// ParseNonNegative parses an amount that may be zero, such as an opening balance.
// An empty string is zero.
func ParseNonNegative(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	// Exponent notation is refused so that huge exponents cannot blow up later arithmetic.
	if len(s) > maxInputLen || strings.ContainsAny(s, "eE") {
		return decimal.Zero, ErrNotANumber
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}

	if d.IsNegative() {
		return decimal.Zero, ErrNegative
	}

	if !d.Equal(d.Truncate(Scale)) {
		return decimal.Zero, ErrTooPrecise
	}

	return d, nil
}

// Format renders an amount with exactly Scale fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// MinorUnits converts an amount to the smallest currency unit (paise, cents).
func MinorUnits(d decimal.Decimal) int64 {
	return d.Shift(Scale).Round(0).IntPart()
}
