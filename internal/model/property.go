package model

import "time"

type PropertyType string

const (
	PropertyHouse      PropertyType = "HOUSE"
	PropertyApartment  PropertyType = "APARTMENT"
	PropertyCommercial PropertyType = "COMMERCIAL"
	PropertyLand       PropertyType = "LAND"
)

type TransactionType string

const (
	TransactionSale TransactionType = "FOR_SALE"
	TransactionRent TransactionType = "FOR_RENT"
)

type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "AVAILABLE"
	StatusSold      PropertyStatus = "SOLD"
	StatusRented    PropertyStatus = "RENTED"
)

type Property struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	Title           string          `gorm:"size:255;not null" json:"title"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Price           float64         `gorm:"not null" json:"price"`
	Location        string          `gorm:"size:255;not null" json:"location"`
	Latitude        float64         `gorm:"not null" json:"latitude"`
	Longitude       float64         `gorm:"not null" json:"longitude"`
	PropertyType    PropertyType    `gorm:"size:32;not null" json:"property_type"`
	TransactionType TransactionType `gorm:"size:32;not null" json:"transaction_type"`
	Bedrooms        int             `gorm:"not null" json:"bedrooms"`
	Bathrooms       int             `gorm:"not null" json:"bathrooms"`
	Size            float64         `gorm:"not null" json:"size"`
	Furnished       bool            `gorm:"not null" json:"furnished"`
	YearBuilt       *int            `json:"year_built"`
	Amenities       []string        `gorm:"serializer:json" json:"amenities"`
	Images          []string        `gorm:"serializer:json" json:"images"`
	Status          PropertyStatus  `gorm:"size:16;not null;default:AVAILABLE" json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
