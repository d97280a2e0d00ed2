package models

import "github.com/shopspring/decimal"

// Wallet holds a balance in a single currency. Names are unique per owner,
// enforced by the idx_wallets_user_name unique index.
type Wallet struct {
	Base
	UserID   string          `gorm:"type:uuid;not null;uniqueIndex:idx_wallets_user_name" json:"user_id"`
	Name     string          `gorm:"size:255;not null;uniqueIndex:idx_wallets_user_name" json:"name"`
	Balance  decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"balance"`
	Currency string          `gorm:"size:3;not null" json:"currency"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:WalletID;constraint:OnDelete:CASCADE" json:"transactions"`
}

// OwnerID returns the ID of the user the wallet belongs to.
func (w *Wallet) OwnerID() string { return w.UserID }
