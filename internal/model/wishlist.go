package model

import "time"

// WishlistEntry is a set membership: one row per (user, property) pair.
// The composite unique index makes the toggle race-safe at the storage layer.
type WishlistEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_property" json:"user_id"`
	PropertyID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_property" json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`

	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
}
