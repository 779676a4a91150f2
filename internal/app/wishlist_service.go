package app

import (
	"context"
	"log"

	"estatehub/internal/model"
)

type WishlistService struct {
	wishlist   WishlistStore
	properties PropertyStore
	publisher  EventPublisher
}

func NewWishlistService(wishlist WishlistStore, properties PropertyStore, publisher EventPublisher) *WishlistService {
	return &WishlistService{
		wishlist:   wishlist,
		properties: properties,
		publisher:  publisher,
	}
}

// Toggle flips membership of (userID, propertyID) and reports the new
// state. Toggling twice lands back where it started.
func (s *WishlistService) Toggle(ctx context.Context, userID, propertyID uint) (bool, error) {
	if userID == 0 || propertyID == 0 {
		return false, ErrInvalidInput
	}

	property, err := s.properties.GetByID(propertyID)
	if err != nil {
		return false, err
	}
	if property == nil {
		return false, ErrPropertyNotFound
	}

	existing, err := s.wishlist.Get(userID, propertyID)
	if err != nil {
		return false, err
	}

	if existing != nil {
		if err := s.wishlist.Delete(userID, propertyID); err != nil {
			return false, err
		}
		s.publishToggle(ctx, userID, propertyID, model.EventWishlistRemoved)
		return false, nil
	}

	entry := &model.WishlistEntry{
		UserID:     userID,
		PropertyID: propertyID,
	}
	if err := s.wishlist.Create(entry); err != nil {
		return false, err
	}
	s.publishToggle(ctx, userID, propertyID, model.EventWishlistAdded)
	return true, nil
}

func (s *WishlistService) List(userID uint) ([]model.Property, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.wishlist.ListProperties(userID)
}

func (s *WishlistService) publishToggle(ctx context.Context, userID, propertyID uint, action string) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, model.ListingEvent{
		UserID:     userID,
		PropertyID: propertyID,
		Action:     action,
	})
	if err != nil {
		log.Printf("publish wishlist event failed: %v", err)
	}
}
