// Package transport defines the request and response DTOs for the listings module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateListingRequest struct {
	Title    string   `json:"title" validate:"required,min=2,max=200"`
	Location *string  `json:"location" validate:"omitempty,max=200"`
	Category *string  `json:"category" validate:"omitempty,max=50"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	PriceMin *float64 `json:"priceMin" validate:"omitempty,gte=0"`
	PriceMax *float64 `json:"priceMax" validate:"omitempty,gte=0"`
	Tags     []string `json:"tags" validate:"omitempty,dive,max=50"`
}

type ListingResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Location  *string   `json:"location,omitempty"`
	Category  *string   `json:"category,omitempty"`
	Price     *float64  `json:"price,omitempty"`
	PriceMin  *float64  `json:"priceMin,omitempty"`
	PriceMax  *float64  `json:"priceMax,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListingListResponse struct {
	Items []ListingResponse `json:"items"`
}
