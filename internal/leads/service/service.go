// Package service provides business logic for the leads module.
package service

import (
	"context"
	"errors"
	"time"

	"estatedesk/internal/events"
	"estatedesk/internal/leads/repository"
	"estatedesk/internal/leads/transport"
	"estatedesk/platform/apperr"
	"estatedesk/platform/logger"
	"estatedesk/platform/phone"

	"github.com/google/uuid"
)

// DateLayout is the wire format for follow-up dates.
const DateLayout = "2006-01-02"

// initialFollowupDays seeds the first follow-up when a lead enters the
// no-response state, matching the fast escalation cadence.
const initialFollowupDays = 3

const initialFollowupTime = "10:00"

// Service provides lead CRUD and lifecycle operations.
type Service struct {
	repo     *repository.Repository
	eventBus events.Bus
	log      *logger.Logger
}

// New creates a new leads service.
func New(repo *repository.Repository, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, log: log}
}

// Create registers a new lead. The phone number is normalized to E.164 when
// possible so duplicate detection and messaging integrations see one format.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		FullName:  req.FullName,
		Phone:     phone.NormalizeE164(req.Phone),
		Email:     req.Email,
		Location:  req.Location,
		Category:  req.Category,
		BudgetMin: req.BudgetMin,
		BudgetMax: req.BudgetMax,
		Tags:      req.Tags,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.log.Info("lead created", "id", lead.ID)
	s.publishChanged(ctx, lead.ID)

	return toResponse(lead), nil
}

// GetByID retrieves a lead by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}
	return toResponse(lead), nil
}

// List retrieves leads with optional status filter and pagination.
func (s *Service) List(ctx context.Context, status string, page, pageSize int) (transport.LeadListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	leads, total, err := s.repo.List(ctx, repository.ListParams{
		Status: status,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = toResponse(lead)
	}

	return transport.LeadListResponse{Items: items, Total: total, Page: page}, nil
}

// Update applies a partial update to a lead and triggers match regeneration
// through the LeadChanged event.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	params := repository.UpdateLeadParams{
		ID:        id,
		FullName:  req.FullName,
		Email:     req.Email,
		Location:  req.Location,
		Category:  req.Category,
		BudgetMin: req.BudgetMin,
		BudgetMax: req.BudgetMax,
		Tags:      req.Tags,
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone)
		params.Phone = &normalized
	}

	lead, err := s.repo.Update(ctx, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	s.publishChanged(ctx, lead.ID)
	return toResponse(lead), nil
}

// UpdateStatus moves a lead through its lifecycle. Entering the no-response
// state seeds the first follow-up so the escalation batch will pick it up.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (transport.LeadResponse, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	// Terminal state: automation owns it, manual edits go through requalification.
	if current.Status == repository.StatusLost && status != repository.StatusNew {
		return transport.LeadResponse{}, apperr.Conflict("lost lead can only be requalified as new")
	}

	var followupDate *time.Time
	var followupTime *string
	if status == repository.StatusNoResponse {
		first := time.Now().AddDate(0, 0, initialFollowupDays)
		slot := initialFollowupTime
		followupDate = &first
		followupTime = &slot
	}

	lead, err := s.repo.UpdateStatus(ctx, id, status, followupDate, followupTime)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	s.log.Info("lead status updated", "id", lead.ID, "status", lead.Status)
	s.publishChanged(ctx, lead.ID)

	return toResponse(lead), nil
}

// ListActivities returns the lead's audit trail.
func (s *Service) ListActivities(ctx context.Context, leadID uuid.UUID) (transport.ActivityListResponse, error) {
	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.ActivityListResponse{}, apperr.NotFound("lead not found")
		}
		return transport.ActivityListResponse{}, err
	}

	activities, err := s.repo.ListActivities(ctx, leadID)
	if err != nil {
		return transport.ActivityListResponse{}, err
	}

	items := make([]transport.ActivityResponse, len(activities))
	for i, a := range activities {
		items[i] = transport.ActivityResponse{
			ID:        a.ID,
			LeadID:    a.LeadID,
			ActorType: a.ActorType,
			ActorName: a.ActorName,
			EventType: a.EventType,
			Summary:   a.Summary,
			Metadata:  a.Metadata,
			CreatedAt: a.CreatedAt,
		}
	}

	return transport.ActivityListResponse{Items: items}, nil
}

func (s *Service) publishChanged(ctx context.Context, leadID uuid.UUID) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, events.LeadChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
	})
}

func toResponse(lead repository.Lead) transport.LeadResponse {
	resp := transport.LeadResponse{
		ID:               lead.ID,
		FullName:         lead.FullName,
		Phone:            lead.Phone,
		Email:            lead.Email,
		Location:         lead.Location,
		Category:         lead.Category,
		BudgetMin:        lead.BudgetMin,
		BudgetMax:        lead.BudgetMax,
		Status:           lead.Status,
		LastContactedAt:  lead.LastContactedAt,
		NextFollowupTime: lead.NextFollowupTime,
		JunkReason:       lead.JunkReason,
		Tags:             lead.Tags,
		CreatedAt:        lead.CreatedAt,
		UpdatedAt:        lead.UpdatedAt,
	}
	if lead.NextFollowupDate != nil {
		formatted := lead.NextFollowupDate.Format(DateLayout)
		resp.NextFollowupDate = &formatted
	}
	return resp
}
