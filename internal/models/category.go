package models

// Category labels transactions. It is owned by a user and independent of wallets.
type Category struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"size:255;not null" json:"name"`
}

// OwnerID returns the ID of the user the category belongs to.
func (c *Category) OwnerID() string { return c.UserID }
