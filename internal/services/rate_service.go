package services

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"finwallet/internal/currency"
	apperrors "finwallet/internal/errors"
	"finwallet/internal/models"
)

// rateService stores exchange rates pushed by the rate pipeline.
type rateService struct {
	db *gorm.DB
}

// NewRateService creates a new RateServicer.
func NewRateService(db *gorm.DB) RateServicer {
	return &rateService{db: db}
}

// UpsertRates inserts or replaces one row per currency and returns how many
// rows were written.
func (s *rateService) UpsertRates(ctx context.Context, rates []RateInput) (int, error) {
	if len(rates) == 0 {
		return 0, nil
	}

	// Later entries for the same currency win.
	index := make(map[string]int, len(rates))
	rows := make([]models.ExchangeRate, 0, len(rates))
	for _, r := range rates {
		code := currency.Normalize(r.Currency)
		if !currency.IsCode(code) {
			return 0, apperrors.WithMessage(apperrors.ErrValidationFailed, "currency must be exactly 3 letters")
		}
		if !r.Rate.IsPositive() {
			return 0, apperrors.WithMessage(apperrors.ErrValidationFailed, "rate must be greater than zero")
		}
		asOf := r.AsOf
		if asOf.IsZero() {
			asOf = time.Now()
		}
		row := models.ExchangeRate{Currency: code, Rate: r.Rate, AsOf: asOf}
		if i, ok := index[code]; ok {
			rows[i] = row
			continue
		}
		index[code] = len(rows)
		rows = append(rows, row)
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "as_of", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return len(rows), nil
}

// ListRates returns every stored rate ordered by currency.
func (s *rateService) ListRates(ctx context.Context) ([]models.ExchangeRate, error) {
	var rates []models.ExchangeRate
	if err := s.db.WithContext(ctx).Order("currency ASC").Find(&rates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rates, nil
}
