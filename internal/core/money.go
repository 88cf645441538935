// Package core holds the domain model and the pure computations of the
// tracker: record normalization, identifier allocation, row location and
// budget reconciliation.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney converts a currency cell to cents with half-up rounding on the
// third decimal place. It accepts plain decimals ("1234.56"), decimal-comma
// values ("1234,56") and pt-BR formatted amounts ("R$ 1.234,56").
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if s == "" {
		return Money{}, ErrInvalidBudget
	}
	if strings.Contains(s, ",") {
		// Comma is the decimal separator; dots are thousands grouping.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Cents: d.Shift(2).Round(0).IntPart()}, nil
}

// CoerceMoney parses a currency cell, coercing malformed values to zero.
// Read paths favour availability over strict validation.
func CoerceMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		return Money{}
	}
	return m
}

// Decimal returns the amount as a two-place decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Storage renders the plain dot-decimal form written to the store.
func (m Money) Storage() string {
	return m.Decimal().StringFixed(2)
}

// Display renders the pt-BR currency form, e.g. "R$ 1.234,56".
// Negative amounts render with the sign after the symbol ("R$ -12,00").
func (m Money) Display() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100

	digits := decimal.NewFromInt(whole).String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return "R$ " + sign + b.String() + "," + twoDigits(frac)
}

func twoDigits(n int64) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
