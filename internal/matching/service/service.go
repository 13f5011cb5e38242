// Package service orchestrates match regeneration: candidate loading, scoring
// through the engine, and persistence through the repository.
package service

import (
	"context"
	"errors"

	"estatedesk/internal/matching/engine"
	"estatedesk/internal/matching/repository"
	"estatedesk/internal/matching/transport"
	"estatedesk/platform/apperr"
	"estatedesk/platform/logger"

	"github.com/google/uuid"
)

// activityEventMatches is the activity event type written after a targeted
// regeneration.
const activityEventMatches = "matches_regenerated"

// Repository is the persistence surface the service needs. Implemented by
// the matching repository; tests substitute fakes.
type Repository interface {
	ListActiveInterestLeads(ctx context.Context, statuses []string) ([]engine.LeadInput, error)
	GetLeadInput(ctx context.Context, id uuid.UUID) (engine.LeadInput, error)
	ListActiveListings(ctx context.Context) ([]engine.ListingInput, error)
	ReplaceAll(ctx context.Context, candidates []engine.Candidate) (int, error)
	DiffReplaceAll(ctx context.Context, candidates []engine.Candidate) (int, error)
	ReplaceForLead(ctx context.Context, leadID uuid.UUID, candidates []engine.Candidate) (int, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]repository.Match, error)
	SetApproved(ctx context.Context, matchID uuid.UUID, approved bool) (repository.Match, error)
}

// ActivityLogger records automation actions on a lead's timeline. Implemented
// by the leads repository.
type ActivityLogger interface {
	AddSystemActivity(ctx context.Context, leadID uuid.UUID, eventType, summary string, metadata map[string]any) error
}

// Config is the slice of application config the service reads.
type Config interface {
	GetMatchLegacyReplace() bool
}

// Service coordinates match regeneration and match reads.
type Service struct {
	repo       Repository
	activity   ActivityLogger
	cfg        Config
	log        *logger.Logger
	activeFunc func() []string
}

// New creates a new matching service. activeStatuses supplies the lead
// statuses eligible for full regeneration.
func New(repo Repository, activity ActivityLogger, cfg Config, log *logger.Logger, activeStatuses []string) *Service {
	statuses := make([]string, len(activeStatuses))
	copy(statuses, activeStatuses)
	return &Service{
		repo:       repo,
		activity:   activity,
		cfg:        cfg,
		log:        log,
		activeFunc: func() []string { return statuses },
	}
}

// RegenerateAll rebuilds the full match table from every active-interest lead
// and every active listing under the fleet weight profile. Concurrent runs are
// last-write-wins; the endpoint is operator-triggered and rare.
func (s *Service) RegenerateAll(ctx context.Context) (transport.RegenerateAllResponse, error) {
	leads, err := s.repo.ListActiveInterestLeads(ctx, s.activeFunc())
	if err != nil {
		return transport.RegenerateAllResponse{}, err
	}
	listings, err := s.repo.ListActiveListings(ctx)
	if err != nil {
		return transport.RegenerateAllResponse{}, err
	}

	candidates := engine.BuildFull(leads, listings)

	var created int
	if s.cfg != nil && s.cfg.GetMatchLegacyReplace() {
		created, err = s.repo.ReplaceAll(ctx, candidates)
	} else {
		created, err = s.repo.DiffReplaceAll(ctx, candidates)
	}
	if err != nil {
		return transport.RegenerateAllResponse{}, err
	}

	s.log.Info("full match regeneration complete",
		"leads", len(leads), "listings", len(listings), "matches", created)

	return transport.RegenerateAllResponse{MatchesCreated: created}, nil
}

// RegenerateForLead rebuilds one lead's matches under the targeted weight
// profile and records the run on the lead's activity timeline.
func (s *Service) RegenerateForLead(ctx context.Context, leadID uuid.UUID) (transport.RegenerateLeadResponse, error) {
	lead, err := s.repo.GetLeadInput(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return transport.RegenerateLeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.RegenerateLeadResponse{}, err
	}

	listings, err := s.repo.ListActiveListings(ctx)
	if err != nil {
		return transport.RegenerateLeadResponse{}, err
	}

	candidates := engine.BuildForLead(lead, listings)

	count, err := s.repo.ReplaceForLead(ctx, leadID, candidates)
	if err != nil {
		return transport.RegenerateLeadResponse{}, err
	}

	if s.activity != nil {
		if err := s.activity.AddSystemActivity(ctx, leadID, activityEventMatches,
			"Matches regenerated", map[string]any{"matches_count": count}); err != nil {
			s.log.Warn("activity log write failed", "lead_id", leadID, "error", err)
		}
	}

	return transport.RegenerateLeadResponse{LeadID: leadID, MatchesCount: count}, nil
}

// ListForLead returns a lead's current matches, best first.
func (s *Service) ListForLead(ctx context.Context, leadID uuid.UUID) (transport.MatchListResponse, error) {
	matches, err := s.repo.ListByLead(ctx, leadID)
	if err != nil {
		return transport.MatchListResponse{}, err
	}

	items := make([]transport.MatchResponse, len(matches))
	for i, m := range matches {
		items[i] = toResponse(m)
	}
	return transport.MatchListResponse{Items: items}, nil
}

// SetApproved flips the agent-controlled approved flag on one match.
func (s *Service) SetApproved(ctx context.Context, matchID uuid.UUID, approved bool) (transport.MatchResponse, error) {
	m, err := s.repo.SetApproved(ctx, matchID, approved)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return transport.MatchResponse{}, apperr.NotFound("match not found")
		}
		return transport.MatchResponse{}, err
	}
	return toResponse(m), nil
}

func toResponse(m repository.Match) transport.MatchResponse {
	return transport.MatchResponse{
		ID:             m.ID,
		LeadID:         m.LeadID,
		ListingID:      m.ListingID,
		Score:          m.Score,
		Reasons:        m.Reasons,
		HighlySuitable: m.HighlySuitable,
		Approved:       m.Approved,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
