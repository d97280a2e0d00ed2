package currency

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finwallet/internal/models"
)

// DBRates reads base-relative rates from the exchange_rates table, which the
// rate pipeline keeps up to date.
type DBRates struct {
	db   *gorm.DB
	base string
}

// NewDBRates creates a RateSource over the exchange_rates table with the given base currency.
func NewDBRates(db *gorm.DB, base string) *DBRates {
	return &DBRates{db: db, base: Normalize(base)}
}

// Rate loads the rows for both codes and derives from→to through the base.
func (s *DBRates) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from, to = Normalize(from), Normalize(to)

	var rows []models.ExchangeRate
	if err := s.db.WithContext(ctx).
		Where("currency IN ?", []string{from, to}).
		Find(&rows).Error; err != nil {
		return decimal.Zero, err
	}

	table := map[string]decimal.Decimal{s.base: decimal.NewFromInt(1)}
	for _, r := range rows {
		table[r.Currency] = r.Rate
	}
	return crossRate(table, s.base, from, to)
}
