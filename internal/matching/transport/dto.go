// Package transport defines request/response DTOs for the matching module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// MatchResponse is the API representation of one lead/listing match.
type MatchResponse struct {
	ID             uuid.UUID `json:"id"`
	LeadID         uuid.UUID `json:"lead_id"`
	ListingID      uuid.UUID `json:"listing_id"`
	Score          int       `json:"score"`
	Reasons        []string  `json:"reasons"`
	HighlySuitable bool      `json:"highly_suitable"`
	Approved       bool      `json:"approved"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MatchListResponse wraps a lead's matches.
type MatchListResponse struct {
	Items []MatchResponse `json:"items"`
}

// RegenerateAllResponse reports the outcome of a full regeneration run.
type RegenerateAllResponse struct {
	MatchesCreated int `json:"matches_created"`
}

// RegenerateLeadResponse reports the outcome of a single-lead regeneration.
type RegenerateLeadResponse struct {
	LeadID       uuid.UUID `json:"lead_id"`
	MatchesCount int       `json:"matches_count"`
}

// SetApprovedRequest toggles the agent-controlled approved flag on a match.
type SetApprovedRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}
