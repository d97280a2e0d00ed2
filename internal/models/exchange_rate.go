package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the value of one unit of Currency expressed in the
// reporting currency, as pushed by the rate pipeline.
type ExchangeRate struct {
	Base
	Currency string          `gorm:"size:3;not null;uniqueIndex" json:"currency"`
	Rate     decimal.Decimal `gorm:"type:decimal(20,10);not null" json:"rate"`
	AsOf     time.Time       `gorm:"not null" json:"as_of"`
}
