package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"estatehub/internal/model"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Create(property *model.Property) error {
	if err := r.db.Create(property).Error; err != nil {
		return fmt.Errorf("create property failed: %w", err)
	}
	return nil
}

// ListAvailable returns the public feed, newest first, with owner info.
func (r *PropertyRepository) ListAvailable() ([]model.Property, error) {
	var properties []model.Property
	err := r.db.
		Where("status = ?", model.StatusAvailable).
		Preload("User").
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("list available properties failed: %w", err)
	}
	return properties, nil
}

func (r *PropertyRepository) GetByID(id uint) (*model.Property, error) {
	var property model.Property
	if err := r.db.Preload("User").First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query property by id failed: %w", err)
	}
	return &property, nil
}

func (r *PropertyRepository) ListByUserID(userID uint) ([]model.Property, error) {
	var properties []model.Property
	err := r.db.
		Where("user_id = ?", userID).
		Preload("User").
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("list user properties failed: %w", err)
	}
	return properties, nil
}

func (r *PropertyRepository) Update(property *model.Property) error {
	if err := r.db.Save(property).Error; err != nil {
		return fmt.Errorf("update property failed: %w", err)
	}
	return nil
}

func (r *PropertyRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Property{}, id).Error; err != nil {
		return fmt.Errorf("delete property failed: %w", err)
	}
	return nil
}
