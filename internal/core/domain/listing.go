package domain

import "time"

// PropertyType categorises a listed property.
type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyLand       PropertyType = "land"
	PropertyCommercial PropertyType = "commercial"
)

// ListingAddress locates the property.
type ListingAddress struct {
	Street   string `json:"street" bson:"street"`
	District string `json:"district" bson:"district"`
	City     string `json:"city" bson:"city"`
	ZipCode  string `json:"zip_code" bson:"zip_code"`
}

// Listing is a published property advertisement. CreatedAt is immutable once
// persisted; quota evaluation only ever reads OwnerID and CreatedAt.
type Listing struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	OwnerID      string         `json:"owner_id" bson:"owner_id"`
	Title        string         `json:"title" bson:"title"`
	Description  string         `json:"description" bson:"description"`
	PropertyType PropertyType   `json:"property_type" bson:"property_type"`
	Price        float64        `json:"price" bson:"price"`
	Currency     string         `json:"currency" bson:"currency"`
	Address      ListingAddress `json:"address" bson:"address"`
	Bedrooms     int            `json:"bedrooms" bson:"bedrooms"`
	Bathrooms    int            `json:"bathrooms" bson:"bathrooms"`
	AreaSqm      float64        `json:"area_sqm" bson:"area_sqm"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}
