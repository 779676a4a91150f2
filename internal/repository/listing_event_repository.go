package repository

import (
	"fmt"

	"gorm.io/gorm"

	"estatehub/internal/model"
)

type ListingEventRepository struct {
	db *gorm.DB
}

func NewListingEventRepository(db *gorm.DB) *ListingEventRepository {
	return &ListingEventRepository{db: db}
}

func (r *ListingEventRepository) Create(event *model.ListingEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create listing event failed: %w", err)
	}
	return nil
}

func (r *ListingEventRepository) ListByPropertyID(propertyID uint, limit int) ([]model.ListingEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var events []model.ListingEvent
	err := r.db.
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list listing events failed: %w", err)
	}
	return events, nil
}
