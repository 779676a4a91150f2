package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"estatehub/internal/model"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) Get(userID, propertyID uint) (*model.WishlistEntry, error) {
	var entry model.WishlistEntry
	err := r.db.
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query wishlist entry failed: %w", err)
	}
	return &entry, nil
}

func (r *WishlistRepository) Create(entry *model.WishlistEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("create wishlist entry failed: %w", err)
	}
	return nil
}

func (r *WishlistRepository) Delete(userID, propertyID uint) error {
	err := r.db.
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&model.WishlistEntry{}).Error
	if err != nil {
		return fmt.Errorf("delete wishlist entry failed: %w", err)
	}
	return nil
}

// ListProperties resolves the caller's wishlist to the saved properties
// with their owners attached.
func (r *WishlistRepository) ListProperties(userID uint) ([]model.Property, error) {
	var entries []model.WishlistEntry
	err := r.db.
		Where("user_id = ?", userID).
		Preload("Property").
		Preload("Property.User").
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list wishlist failed: %w", err)
	}

	properties := make([]model.Property, 0, len(entries))
	for _, entry := range entries {
		if entry.Property != nil {
			properties = append(properties, *entry.Property)
		}
	}
	return properties, nil
}
