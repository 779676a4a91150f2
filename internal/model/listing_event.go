package model

import "time"

const (
	EventPropertyCreated = "property_created"
	EventPropertyUpdated = "property_updated"
	EventPropertyDeleted = "property_deleted"
	EventPropertyViewed  = "property_viewed"
	EventWishlistAdded   = "wishlist_added"
	EventWishlistRemoved = "wishlist_removed"
)

// ListingEvent is an activity record persisted asynchronously through the
// event queue. UserID is 0 for anonymous traffic.
type ListingEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index" json:"user_id"`
	PropertyID uint      `gorm:"not null;index" json:"property_id"`
	Action     string    `gorm:"size:32;not null;index" json:"action"`
	CreatedAt  time.Time `json:"created_at"`
}
