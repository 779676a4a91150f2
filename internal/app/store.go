package app

import (
	"context"

	"estatehub/internal/model"
)

// Per-entity store interfaces keep the services free of persistence
// details; internal/repository provides the gorm-backed implementations.

type UserStore interface {
	Create(user *model.User) error
	GetByUsername(username string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
	Update(user *model.User) error
}

type PropertyStore interface {
	Create(property *model.Property) error
	ListAvailable() ([]model.Property, error)
	GetByID(id uint) (*model.Property, error)
	ListByUserID(userID uint) ([]model.Property, error)
	Update(property *model.Property) error
	Delete(id uint) error
}

type WishlistStore interface {
	Get(userID, propertyID uint) (*model.WishlistEntry, error)
	Create(entry *model.WishlistEntry) error
	Delete(userID, propertyID uint) error
	ListProperties(userID uint) ([]model.Property, error)
}

// EventPublisher hands listing activity to the async persistence queue.
type EventPublisher interface {
	Publish(ctx context.Context, event model.ListingEvent) error
}

// ListingFeedCache caches the public AVAILABLE feed.
type ListingFeedCache interface {
	GetAvailable(ctx context.Context) ([]model.Property, bool, error)
	SetAvailable(ctx context.Context, properties []model.Property) error
	Invalidate(ctx context.Context) error
	MarkDirty(ctx context.Context) error
	IsDirty(ctx context.Context) (bool, error)
}
