package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing is a single stay listing stored in MongoDB.
type Listing struct {
	ID          primitive.ObjectID `json:"id"          bson:"_id,omitempty"`
	Title       string             `json:"title"       bson:"title"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image"       bson:"image,omitempty"`
	Price       float64            `json:"price"       bson:"price"`
	Location    string             `json:"location"    bson:"location"`
	Country     string             `json:"country"     bson:"country"`
	CreatedAt   time.Time          `json:"created_at"  bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"  bson:"updated_at"`
}

// ListingForm is the form-encoded body for POST /listings and PUT
// /listings/{id}, submitted as nested listing[...] fields.
type ListingForm struct {
	Title       string
	Description string
	Image       string
	Price       float64
	Location    string
	Country     string
}

// SearchFilter holds the exact-match criteria for POST /listings/search.
// Nil fields are ignored; set fields must equal the stored value exactly.
type SearchFilter struct {
	Location *string
	Price    *float64
}
