package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"estatehub/internal/model"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotOwner         = errors.New("not the owner of this property")
)

type PropertyService struct {
	properties PropertyStore
	publisher  EventPublisher
	feedCache  ListingFeedCache
}

type CreatePropertyInput struct {
	UserID          uint
	Title           string
	Description     string
	Price           float64
	Location        string
	Latitude        float64
	Longitude       float64
	PropertyType    model.PropertyType
	TransactionType model.TransactionType
	Bedrooms        int
	Bathrooms       int
	Size            float64
	Furnished       bool
	YearBuilt       *int
	Amenities       []string
	Images          []string
}

// UpdatePropertyInput carries a partial update; nil fields are untouched.
// NewImages are appended to the existing image list, never replacing it.
type UpdatePropertyInput struct {
	UserID          uint
	PropertyID      uint
	Title           *string
	Description     *string
	Price           *float64
	Location        *string
	Latitude        *float64
	Longitude       *float64
	PropertyType    *model.PropertyType
	TransactionType *model.TransactionType
	Bedrooms        *int
	Bathrooms       *int
	Size            *float64
	Furnished       *bool
	YearBuilt       *int
	Amenities       []string
	Status          *model.PropertyStatus
	NewImages       []string
}

func NewPropertyService(properties PropertyStore, publisher EventPublisher, feedCache ListingFeedCache) *PropertyService {
	return &PropertyService{
		properties: properties,
		publisher:  publisher,
		feedCache:  feedCache,
	}
}

// ListAvailable serves the public feed, through the cache when it is
// clean. Cache trouble degrades to a direct query, never to an error.
func (s *PropertyService) ListAvailable(ctx context.Context) ([]model.Property, error) {
	if s.feedCache != nil {
		dirty, err := s.feedCache.IsDirty(ctx)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.feedCache.GetAvailable(ctx); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	properties, err := s.properties.ListAvailable()
	if err != nil {
		return nil, err
	}
	if s.feedCache != nil {
		if dirty, dirtyErr := s.feedCache.IsDirty(ctx); dirtyErr == nil && !dirty {
			_ = s.feedCache.SetAvailable(ctx, properties)
		}
	}
	return properties, nil
}

// GetByID looks up a single listing. viewerID is 0 for anonymous traffic.
func (s *PropertyService) GetByID(ctx context.Context, id, viewerID uint) (*model.Property, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	property, err := s.properties.GetByID(id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, ErrPropertyNotFound
	}

	s.publish(ctx, model.ListingEvent{
		UserID:     viewerID,
		PropertyID: property.ID,
		Action:     model.EventPropertyViewed,
	})
	return property, nil
}

func (s *PropertyService) ListByOwner(userID uint) ([]model.Property, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.properties.ListByUserID(userID)
}

func (s *PropertyService) Create(ctx context.Context, input CreatePropertyInput) (*model.Property, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	title := strings.TrimSpace(input.Title)
	if title == "" || strings.TrimSpace(input.Description) == "" || strings.TrimSpace(input.Location) == "" {
		return nil, ErrInvalidInput
	}
	if !validPropertyType(input.PropertyType) || !validTransactionType(input.TransactionType) {
		return nil, ErrInvalidInput
	}

	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := input.Images
	if images == nil {
		images = []string{}
	}

	property := &model.Property{
		UserID:          input.UserID,
		Title:           title,
		Description:     input.Description,
		Price:           input.Price,
		Location:        input.Location,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		PropertyType:    input.PropertyType,
		TransactionType: input.TransactionType,
		Bedrooms:        input.Bedrooms,
		Bathrooms:       input.Bathrooms,
		Size:            input.Size,
		Furnished:       input.Furnished,
		YearBuilt:       input.YearBuilt,
		Amenities:       amenities,
		Images:          images,
		Status:          model.StatusAvailable,
	}
	if err := s.properties.Create(property); err != nil {
		return nil, err
	}

	s.feedChanged(ctx)
	s.publish(ctx, model.ListingEvent{
		UserID:     input.UserID,
		PropertyID: property.ID,
		Action:     model.EventPropertyCreated,
	})
	return property, nil
}

// Update applies a partial, owner-gated update. Existence is checked
// before ownership so a missing listing is a not-found, never a
// forbidden.
func (s *PropertyService) Update(ctx context.Context, input UpdatePropertyInput) (*model.Property, error) {
	if input.UserID == 0 || input.PropertyID == 0 {
		return nil, ErrInvalidInput
	}

	property, err := s.properties.GetByID(input.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, ErrPropertyNotFound
	}
	if property.UserID != input.UserID {
		return nil, ErrNotOwner
	}

	if input.Title != nil {
		property.Title = *input.Title
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.Price != nil {
		property.Price = *input.Price
	}
	if input.Location != nil {
		property.Location = *input.Location
	}
	if input.Latitude != nil {
		property.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		property.Longitude = *input.Longitude
	}
	if input.PropertyType != nil {
		if !validPropertyType(*input.PropertyType) {
			return nil, ErrInvalidInput
		}
		property.PropertyType = *input.PropertyType
	}
	if input.TransactionType != nil {
		if !validTransactionType(*input.TransactionType) {
			return nil, ErrInvalidInput
		}
		property.TransactionType = *input.TransactionType
	}
	if input.Bedrooms != nil {
		property.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		property.Bathrooms = *input.Bathrooms
	}
	if input.Size != nil {
		property.Size = *input.Size
	}
	if input.Furnished != nil {
		property.Furnished = *input.Furnished
	}
	if input.YearBuilt != nil {
		property.YearBuilt = input.YearBuilt
	}
	if input.Amenities != nil {
		property.Amenities = input.Amenities
	}
	if input.Status != nil {
		if !validStatus(*input.Status) {
			return nil, ErrInvalidInput
		}
		property.Status = *input.Status
	}
	if len(input.NewImages) > 0 {
		property.Images = append(property.Images, input.NewImages...)
	}

	if err := s.properties.Update(property); err != nil {
		return nil, err
	}

	s.feedChanged(ctx)
	s.publish(ctx, model.ListingEvent{
		UserID:     input.UserID,
		PropertyID: property.ID,
		Action:     model.EventPropertyUpdated,
	})
	return property, nil
}

func (s *PropertyService) Delete(ctx context.Context, userID, propertyID uint) error {
	if userID == 0 || propertyID == 0 {
		return ErrInvalidInput
	}

	property, err := s.properties.GetByID(propertyID)
	if err != nil {
		return err
	}
	if property == nil {
		return ErrPropertyNotFound
	}
	if property.UserID != userID {
		return ErrNotOwner
	}

	if err := s.properties.Delete(propertyID); err != nil {
		return err
	}

	s.feedChanged(ctx)
	s.publish(ctx, model.ListingEvent{
		UserID:     userID,
		PropertyID: propertyID,
		Action:     model.EventPropertyDeleted,
	})
	return nil
}

// publish is best effort: activity events never fail a request.
func (s *PropertyService) publish(ctx context.Context, event model.ListingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish listing event failed: %v", err)
	}
}

func (s *PropertyService) feedChanged(ctx context.Context) {
	if s.feedCache == nil {
		return
	}
	_ = s.feedCache.MarkDirty(ctx)
	_ = s.feedCache.Invalidate(ctx)
}

func validPropertyType(t model.PropertyType) bool {
	switch t {
	case model.PropertyHouse, model.PropertyApartment, model.PropertyCommercial, model.PropertyLand:
		return true
	}
	return false
}

func validTransactionType(t model.TransactionType) bool {
	switch t {
	case model.TransactionSale, model.TransactionRent:
		return true
	}
	return false
}

func validStatus(s model.PropertyStatus) bool {
	switch s {
	case model.StatusAvailable, model.StatusSold, model.StatusRented:
		return true
	}
	return false
}
