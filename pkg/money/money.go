// Package money provides precise parsing, rounding, and display of monetary
// amounts. All arithmetic that decides a value goes through shopspring/decimal
// so binary float noise never leaks into results.
package money

import (
	"errors"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrNotNumeric indicates a raw value contained no parseable number.
var ErrNotNumeric = errors.New("value is not numeric")

// ParseFlexible parses a raw amount string from a bank export. Every
// character except digits, '.' and '-' is stripped before parsing, so
// currency symbols, thousands separators and stray whitespace are tolerated:
// "$1,500.00" -> 1500.00, "USD -42.10" -> -42.10.
func ParseFlexible(raw string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, raw)

	if cleaned == "" {
		return decimal.Zero, ErrNotNumeric
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrNotNumeric
	}
	return d, nil
}

// ParseFlexibleFloat is ParseFlexible for callers that carry float64 amounts.
func ParseFlexibleFloat(raw string) (float64, error) {
	d, err := ParseFlexible(raw)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// Round2 rounds a decimal to two places and returns it as a float64.
func Round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Round2Float rounds a float64 to two decimal places via decimal, avoiding
// the usual multiply-and-truncate float tricks.
func Round2Float(v float64) float64 {
	return Round2(decimal.NewFromFloat(v))
}

// Cents converts a float amount to integer minor units.
func Cents(v float64) int64 {
	return decimal.NewFromFloat(v).Mul(decimal.New(1, 2)).Round(0).IntPart()
}

// Display formats an amount for human output using the currency's symbol and
// grouping rules, e.g. Display(-1234.5, "USD") -> "-$1,234.50". Unknown
// currency codes fall back to USD formatting.
func Display(v float64, currencyCode string) string {
	if gomoney.GetCurrency(currencyCode) == nil {
		currencyCode = gomoney.USD
	}
	return gomoney.New(Cents(v), currencyCode).Display()
}
