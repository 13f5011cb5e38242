// Package service orchestrates the escalation pipeline: loading due leads,
// evaluating each one through the pure engine, and applying the decision with
// per-lead failure isolation.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"estatedesk/internal/escalation/engine"
	"estatedesk/internal/escalation/transport"
	"estatedesk/internal/events"
	leadsrepo "estatedesk/internal/leads/repository"
	"estatedesk/platform/apperr"
	"estatedesk/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DateLayout is the wire format for follow-up dates.
const DateLayout = "2006-01-02"

// batchParallelism bounds the number of leads processed concurrently in one
// batch run. Each lead costs two or three small queries, so a modest bound
// keeps the pool from starving the API.
const batchParallelism = 8

// Activity event types written by the escalation engine.
const (
	activityEventFollowup = "followup_scheduled"
	activityEventLost     = "moved_to_lost"
)

// LeadRepository is the lead persistence surface the escalation service
// needs. Implemented by the leads repository; tests substitute fakes.
type LeadRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (leadsrepo.Lead, error)
	ListDueForFollowup(ctx context.Context, day time.Time) ([]leadsrepo.Lead, error)
	ScheduleFollowup(ctx context.Context, id uuid.UUID, date time.Time, timeOfDay string) error
	MarkLost(ctx context.Context, id uuid.UUID, reason string) error
}

// ActivityLogger records automation actions on a lead's timeline.
type ActivityLogger interface {
	AddSystemActivity(ctx context.Context, leadID uuid.UUID, eventType, summary string, metadata map[string]any) error
}

// Service runs escalation evaluations, individually and in batch.
type Service struct {
	leads    LeadRepository
	activity ActivityLogger
	eventBus events.Bus
	log      *logger.Logger
	now      func() time.Time
}

// New creates a new escalation service.
func New(leads LeadRepository, activity ActivityLogger, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		leads:    leads,
		activity: activity,
		eventBus: eventBus,
		log:      log,
		now:      time.Now,
	}
}

// EvaluateLead applies the escalation rules to one lead immediately. The lead
// must be in the no-response state; evaluating any other state is a conflict,
// not a silent no-op.
func (s *Service) EvaluateLead(ctx context.Context, leadID uuid.UUID) (transport.EvaluateResponse, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, leadsrepo.ErrNotFound) {
			return transport.EvaluateResponse{}, apperr.NotFound("lead not found")
		}
		return transport.EvaluateResponse{}, err
	}

	if lead.Status != leadsrepo.StatusNoResponse {
		return transport.EvaluateResponse{}, apperr.Conflict(
			fmt.Sprintf("lead is %s, escalation applies only to %s leads", lead.Status, leadsrepo.StatusNoResponse))
	}

	return s.apply(ctx, lead, s.now())
}

// RunBatch evaluates every lead whose follow-up is due today. Leads are
// processed with bounded parallelism; one lead's failure never aborts the
// run, it is logged and excluded from the processed count.
func (s *Service) RunBatch(ctx context.Context) (transport.BatchRunResponse, error) {
	now := s.now()

	due, err := s.leads.ListDueForFollowup(ctx, now)
	if err != nil {
		return transport.BatchRunResponse{}, err
	}

	var (
		mu     sync.Mutex
		result = transport.BatchRunResponse{TotalLeads: len(due)}
		failed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchParallelism)

	for _, lead := range due {
		g.Go(func() error {
			resp, err := s.apply(gctx, lead, now)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				s.log.Error("escalation failed for lead", "lead_id", lead.ID, "error", err)
				return nil
			}
			result.Processed++
			if resp.Action == transport.ActionMovedToLost {
				result.MovedToLost++
			} else {
				result.Scheduled++
			}
			return nil
		})
	}

	// Workers swallow per-lead errors, so this only propagates context
	// cancellation.
	if err := g.Wait(); err != nil {
		return transport.BatchRunResponse{}, err
	}

	s.log.BatchSummary("escalation", result.TotalLeads, result.Processed, failed)
	return result, nil
}

// apply computes and persists the decision for one lead, then writes the
// activity entry. The state change and the activity write are separate
// statements; a crash in between loses the log line, never the transition.
func (s *Service) apply(ctx context.Context, lead leadsrepo.Lead, now time.Time) (transport.EvaluateResponse, error) {
	decision := engine.Evaluate(now, lead.LastContactedAt, lead.CreatedAt)

	if decision.Action == engine.ActionMarkLost {
		if err := s.leads.MarkLost(ctx, lead.ID, decision.LostReason); err != nil {
			return transport.EvaluateResponse{}, err
		}

		s.logActivity(ctx, lead.ID, activityEventLost,
			fmt.Sprintf("Moved to lost after %d days without response", decision.ElapsedDays),
			map[string]any{"elapsed_days": decision.ElapsedDays})

		if s.eventBus != nil {
			s.eventBus.Publish(ctx, events.LeadMovedToLost{
				BaseEvent:        events.NewBaseEvent(),
				LeadID:           lead.ID,
				DaysSinceContact: decision.ElapsedDays,
			})
		}

		return transport.EvaluateResponse{
			LeadID:           lead.ID,
			Action:           transport.ActionMovedToLost,
			DaysSinceContact: decision.ElapsedDays,
		}, nil
	}

	if err := s.leads.ScheduleFollowup(ctx, lead.ID, decision.NextFollowupDate, decision.NextFollowupTime); err != nil {
		return transport.EvaluateResponse{}, err
	}

	s.logActivity(ctx, lead.ID, activityEventFollowup,
		fmt.Sprintf("Follow-up scheduled in %d days (%d days since last contact)",
			decision.IntervalDays, decision.ElapsedDays),
		map[string]any{
			"elapsed_days":  decision.ElapsedDays,
			"interval_days": decision.IntervalDays,
		})

	date := decision.NextFollowupDate.Format(DateLayout)
	slot := decision.NextFollowupTime
	return transport.EvaluateResponse{
		LeadID:           lead.ID,
		Action:           transport.ActionScheduled,
		DaysSinceContact: decision.ElapsedDays,
		IntervalDays:     decision.IntervalDays,
		NextFollowupDate: &date,
		NextFollowupTime: &slot,
	}, nil
}

func (s *Service) logActivity(ctx context.Context, leadID uuid.UUID, eventType, summary string, metadata map[string]any) {
	if s.activity == nil {
		return
	}
	summary = leadsrepo.TruncateSummary(summary, leadsrepo.ActivitySummaryMaxLen)
	if err := s.activity.AddSystemActivity(ctx, leadID, eventType, summary, metadata); err != nil {
		s.log.Warn("activity log write failed", "lead_id", leadID, "error", err)
	}
}
