package currency

import (
	"context"

	"github.com/shopspring/decimal"
)

// crossRatePrecision is the number of decimal places kept when dividing two
// base-relative rates.
const crossRatePrecision = 10

// StaticRates is a fixed rate table relative to a base currency. Each entry is
// the value of one unit of the code expressed in the base currency.
type StaticRates struct {
	base  string
	rates map[string]decimal.Decimal
}

// NewStaticRates builds a table for base. The base currency is always present
// with rate 1.
func NewStaticRates(base string, rates map[string]decimal.Decimal) *StaticRates {
	base = Normalize(base)
	table := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		table[Normalize(code)] = rate
	}
	table[base] = decimal.NewFromInt(1)
	return &StaticRates{base: base, rates: table}
}

// Rate returns the from→to rate derived through the base currency.
func (s *StaticRates) Rate(_ context.Context, from, to string) (decimal.Decimal, error) {
	return crossRate(s.rates, s.base, Normalize(from), Normalize(to))
}

// crossRate derives from→to out of a base-relative table.
func crossRate(table map[string]decimal.Decimal, base, from, to string) (decimal.Decimal, error) {
	fromRate, ok := table[from]
	if !ok {
		return decimal.Zero, &UnknownCurrencyError{Code: from}
	}
	toRate, ok := table[to]
	if !ok {
		return decimal.Zero, &UnknownCurrencyError{Code: to}
	}
	if to == base {
		return fromRate, nil
	}
	return fromRate.DivRound(toRate, crossRatePrecision), nil
}
