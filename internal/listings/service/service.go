// Package service provides business logic for the listings module.
package service

import (
	"context"
	"errors"

	"estatedesk/internal/listings/repository"
	"estatedesk/internal/listings/transport"
	"estatedesk/platform/apperr"
	"estatedesk/platform/logger"

	"github.com/google/uuid"
)

// Service provides supply inventory operations.
type Service struct {
	repo *repository.Repository
	log  *logger.Logger
}

// New creates a new listings service.
func New(repo *repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create registers a new listing. A listing may carry either a single price
// or a min/max range; both are accepted, the matching engine handles each.
func (s *Service) Create(ctx context.Context, req transport.CreateListingRequest) (transport.ListingResponse, error) {
	if req.PriceMin != nil && req.PriceMax != nil && *req.PriceMin > *req.PriceMax {
		return transport.ListingResponse{}, apperr.Validation("priceMin cannot exceed priceMax")
	}

	listing, err := s.repo.Create(ctx, repository.CreateListingParams{
		Title:    req.Title,
		Location: req.Location,
		Category: req.Category,
		Price:    req.Price,
		PriceMin: req.PriceMin,
		PriceMax: req.PriceMax,
		Tags:     req.Tags,
	})
	if err != nil {
		return transport.ListingResponse{}, err
	}

	s.log.Info("listing created", "id", listing.ID, "title", listing.Title)
	return toResponse(listing), nil
}

// GetByID retrieves a listing by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.ListingResponse, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.ListingResponse{}, apperr.NotFound("listing not found")
		}
		return transport.ListingResponse{}, err
	}
	return toResponse(listing), nil
}

// List retrieves listings, optionally restricted to active inventory.
func (s *Service) List(ctx context.Context, activeOnly bool) (transport.ListingListResponse, error) {
	listings, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return transport.ListingListResponse{}, err
	}

	items := make([]transport.ListingResponse, len(listings))
	for i, listing := range listings {
		items[i] = toResponse(listing)
	}

	return transport.ListingListResponse{Items: items}, nil
}

// ToggleActive flips the is_active flag. Inactive listings drop out of the
// matching candidate set on the next regeneration.
func (s *Service) ToggleActive(ctx context.Context, id uuid.UUID) (transport.ListingResponse, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.ListingResponse{}, apperr.NotFound("listing not found")
		}
		return transport.ListingResponse{}, err
	}

	listing, err = s.repo.SetActive(ctx, id, !listing.IsActive)
	if err != nil {
		return transport.ListingResponse{}, err
	}

	s.log.Info("listing active toggled", "id", listing.ID, "isActive", listing.IsActive)
	return toResponse(listing), nil
}

func toResponse(listing repository.Listing) transport.ListingResponse {
	return transport.ListingResponse{
		ID:        listing.ID,
		Title:     listing.Title,
		Location:  listing.Location,
		Category:  listing.Category,
		Price:     listing.Price,
		PriceMin:  listing.PriceMin,
		PriceMax:  listing.PriceMax,
		Tags:      listing.Tags,
		IsActive:  listing.IsActive,
		CreatedAt: listing.CreatedAt,
		UpdatedAt: listing.UpdatedAt,
	}
}
