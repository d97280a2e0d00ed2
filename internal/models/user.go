package models

import "time"

// User is the authenticated owner of wallets and categories. Accounts are
// provisioned outside this service; only login and profile reads happen here.
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Name        string     `json:"name"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	Wallets     []Wallet   `gorm:"foreignKey:UserID" json:"wallets,omitempty"`
	Categories  []Category `gorm:"foreignKey:UserID" json:"categories,omitempty"`
}
