package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a dated amount recorded against a wallet. Currency is a copy of
// the wallet's currency at write time; it is only rewritten when the wallet's
// currency changes.
type Transaction struct {
	Base
	WalletID    string          `gorm:"type:uuid;not null;index" json:"wallet_id"`
	CategoryID  *string         `gorm:"type:uuid" json:"category_id,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	Currency    string          `gorm:"size:3;not null" json:"currency"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null" json:"date"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
