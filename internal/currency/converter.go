// Package currency converts amounts between currencies using a pluggable
// exchange-rate source.
package currency

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"finwallet/internal/metrics"
)

// ErrUnknownCurrency is returned when no rate is known for a currency code.
var ErrUnknownCurrency = errors.New("unknown currency")

// UnknownCurrencyError names the code that has no known rate.
type UnknownCurrencyError struct {
	Code string
}

// Error implements the error interface.
func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("unknown currency %q", e.Code)
}

// Is lets errors.Is(err, ErrUnknownCurrency) match.
func (e *UnknownCurrencyError) Is(target error) bool {
	return target == ErrUnknownCurrency
}

// Converter converts an amount from one currency to another.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// RateSource returns how many units of `to` one unit of `from` is worth.
type RateSource interface {
	Rate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// RateConverter is a Converter backed by a RateSource.
type RateConverter struct {
	source RateSource
}

// NewConverter creates a Converter that multiplies amounts by rates from source.
func NewConverter(source RateSource) *RateConverter {
	return &RateConverter{source: source}
}

// Convert returns amount expressed in `to`. When both codes are equal the
// amount is returned untouched and the rate source is not consulted.
func (c *RateConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from, to = Normalize(from), Normalize(to)
	if from == to {
		metrics.CurrencyConversions.WithLabelValues("identity").Inc()
		return amount, nil
	}

	rate, err := c.source.Rate(ctx, from, to)
	if err != nil {
		if errors.Is(err, ErrUnknownCurrency) {
			metrics.CurrencyConversions.WithLabelValues("unknown").Inc()
		} else {
			metrics.CurrencyConversions.WithLabelValues("error").Inc()
		}
		return decimal.Zero, err
	}

	metrics.CurrencyConversions.WithLabelValues("converted").Inc()
	return amount.Mul(rate), nil
}

// Normalize upper-cases and trims a currency code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsCode reports whether code is exactly three ASCII letters. No ISO 4217
// membership check is made.
func IsCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
