package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"estatedesk/internal/escalation/transport"
	leadsrepo "estatedesk/internal/leads/repository"
	"estatedesk/platform/apperr"
	"estatedesk/platform/logger"

	"github.com/google/uuid"
)

type fakeLeadRepo struct {
	mu        sync.Mutex
	leads     map[uuid.UUID]leadsrepo.Lead
	due       []leadsrepo.Lead
	failOn    map[uuid.UUID]bool
	scheduled map[uuid.UUID]time.Time
	lost      map[uuid.UUID]string
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{
		leads:     make(map[uuid.UUID]leadsrepo.Lead),
		failOn:    make(map[uuid.UUID]bool),
		scheduled: make(map[uuid.UUID]time.Time),
		lost:      make(map[uuid.UUID]string),
	}
}

func (f *fakeLeadRepo) addDue(lead leadsrepo.Lead) {
	f.leads[lead.ID] = lead
	f.due = append(f.due, lead)
}

func (f *fakeLeadRepo) GetByID(_ context.Context, id uuid.UUID) (leadsrepo.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	if !ok {
		return leadsrepo.Lead{}, leadsrepo.ErrNotFound
	}
	return lead, nil
}

func (f *fakeLeadRepo) ListDueForFollowup(_ context.Context, _ time.Time) ([]leadsrepo.Lead, error) {
	return f.due, nil
}

func (f *fakeLeadRepo) ScheduleFollowup(_ context.Context, id uuid.UUID, date time.Time, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[id] {
		return errors.New("simulated write failure")
	}
	f.scheduled[id] = date
	return nil
}

func (f *fakeLeadRepo) MarkLost(_ context.Context, id uuid.UUID, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[id] {
		return errors.New("simulated write failure")
	}
	f.lost[id] = reason
	return nil
}

type fakeActivityLog struct {
	mu      sync.Mutex
	entries []string
}

func (f *fakeActivityLog) AddSystemActivity(_ context.Context, _ uuid.UUID, eventType, _ string, _ map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, eventType)
	return nil
}

func noResponseLead(daysSilent int, now time.Time) leadsrepo.Lead {
	contacted := now.AddDate(0, 0, -daysSilent)
	return leadsrepo.Lead{
		ID:              uuid.New(),
		Status:          leadsrepo.StatusNoResponse,
		LastContactedAt: &contacted,
		CreatedAt:       now.AddDate(0, 0, -daysSilent-30),
	}
}

func newTestService(repo *fakeLeadRepo, activity *fakeActivityLog, now time.Time) *Service {
	svc := New(repo, activity, nil, logger.New("test"))
	svc.now = func() time.Time { return now }
	return svc
}

func TestRunBatch_CountsScheduledAndLost(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	repo := newFakeLeadRepo()
	activity := &fakeActivityLog{}

	fresh := noResponseLead(10, now)
	stale := noResponseLead(35, now)
	gone := noResponseLead(50, now)
	repo.addDue(fresh)
	repo.addDue(stale)
	repo.addDue(gone)

	result, err := newTestService(repo, activity, now).RunBatch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := transport.BatchRunResponse{TotalLeads: 3, Processed: 3, Scheduled: 2, MovedToLost: 1}
	if result != want {
		t.Fatalf("expected %+v, got %+v", want, result)
	}

	if date, ok := repo.scheduled[fresh.ID]; !ok || !date.Equal(now.AddDate(0, 0, 3)) {
		t.Fatalf("fresh lead: expected follow-up in 3 days, got %v (ok=%v)", date, ok)
	}
	if date, ok := repo.scheduled[stale.ID]; !ok || !date.Equal(now.AddDate(0, 0, 7)) {
		t.Fatalf("stale lead: expected follow-up in 7 days, got %v (ok=%v)", date, ok)
	}
	if _, ok := repo.lost[gone.ID]; !ok {
		t.Fatalf("50-day lead must be marked lost")
	}
	if len(activity.entries) != 3 {
		t.Fatalf("expected 3 activity entries, got %d", len(activity.entries))
	}
}

func TestRunBatch_OneFailureDoesNotAbortOthers(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	repo := newFakeLeadRepo()

	ok1 := noResponseLead(5, now)
	broken := noResponseLead(20, now)
	ok2 := noResponseLead(40, now)
	repo.addDue(ok1)
	repo.addDue(broken)
	repo.addDue(ok2)
	repo.failOn[broken.ID] = true

	result, err := newTestService(repo, &fakeActivityLog{}, now).RunBatch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalLeads != 3 {
		t.Fatalf("expected total 3, got %d", result.TotalLeads)
	}
	if result.Processed != 2 {
		t.Fatalf("failed lead must be excluded from processed, got %d", result.Processed)
	}
	if result.Scheduled != 2 || result.MovedToLost != 0 {
		t.Fatalf("expected 2 scheduled and 0 lost, got %+v", result)
	}
	if _, ok := repo.scheduled[ok1.ID]; !ok {
		t.Fatalf("healthy lead before the failure must still be processed")
	}
	if _, ok := repo.scheduled[ok2.ID]; !ok {
		t.Fatalf("healthy lead after the failure must still be processed")
	}
}

func TestRunBatch_EmptyDaySucceeds(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	result, err := newTestService(newFakeLeadRepo(), &fakeActivityLog{}, now).RunBatch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != (transport.BatchRunResponse{}) {
		t.Fatalf("expected zero counts, got %+v", result)
	}
}

func TestEvaluateLead_NotFound(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	_, err := newTestService(newFakeLeadRepo(), &fakeActivityLog{}, now).EvaluateLead(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestEvaluateLead_RejectsNonNoResponseLead(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	repo := newFakeLeadRepo()

	lead := noResponseLead(60, now)
	lead.Status = leadsrepo.StatusLost
	repo.leads[lead.ID] = lead

	_, err := newTestService(repo, &fakeActivityLog{}, now).EvaluateLead(context.Background(), lead.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if _, ok := repo.lost[lead.ID]; ok {
		t.Fatalf("terminal lead must never be re-evaluated")
	}
}

func TestEvaluateLead_ReturnsAppliedDecision(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	repo := newFakeLeadRepo()

	lead := noResponseLead(16, now)
	repo.leads[lead.ID] = lead

	resp, err := newTestService(repo, &fakeActivityLog{}, now).EvaluateLead(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Action != transport.ActionScheduled {
		t.Fatalf("expected scheduled action, got %q", resp.Action)
	}
	if resp.DaysSinceContact != 16 || resp.IntervalDays != 5 {
		t.Fatalf("expected 16 elapsed / 5 interval, got %d/%d", resp.DaysSinceContact, resp.IntervalDays)
	}
	if resp.NextFollowupDate == nil || *resp.NextFollowupDate != now.AddDate(0, 0, 5).Format(DateLayout) {
		t.Fatalf("unexpected follow-up date %v", resp.NextFollowupDate)
	}
	if resp.NextFollowupTime == nil || *resp.NextFollowupTime != "10:00" {
		t.Fatalf("unexpected follow-up time %v", resp.NextFollowupTime)
	}
}
