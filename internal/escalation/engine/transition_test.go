package engine

import (
	"testing"
	"time"
)

func TestEvaluate_SchedulesNextFollowup(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	contacted := now.AddDate(0, 0, -20)

	decision := Evaluate(now, &contacted, now.AddDate(0, 0, -60))

	if decision.Action != ActionSchedule {
		t.Fatalf("expected schedule action, got %v", decision.Action)
	}
	if decision.ElapsedDays != 20 {
		t.Fatalf("expected 20 elapsed days, got %d", decision.ElapsedDays)
	}
	if decision.IntervalDays != MediumIntervalDays {
		t.Fatalf("expected interval %d, got %d", MediumIntervalDays, decision.IntervalDays)
	}
	wantDate := now.AddDate(0, 0, MediumIntervalDays)
	if !decision.NextFollowupDate.Equal(wantDate) {
		t.Fatalf("expected follow-up %v, got %v", wantDate, decision.NextFollowupDate)
	}
	if decision.NextFollowupTime != FollowupTime {
		t.Fatalf("expected follow-up time %q, got %q", FollowupTime, decision.NextFollowupTime)
	}
}

func TestEvaluate_FiftyDaysSilenceMarksLost(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	contacted := now.AddDate(0, 0, -50)

	decision := Evaluate(now, &contacted, now.AddDate(0, 0, -90))

	if decision.Action != ActionMarkLost {
		t.Fatalf("expected mark-lost action, got %v", decision.Action)
	}
	if decision.ElapsedDays != 50 {
		t.Fatalf("expected 50 elapsed days, got %d", decision.ElapsedDays)
	}
	if decision.LostReason != LostReason {
		t.Fatalf("expected lost reason %q, got %q", LostReason, decision.LostReason)
	}
	// A terminated lead gets no follow-up slot.
	if !decision.NextFollowupDate.IsZero() || decision.NextFollowupTime != "" {
		t.Fatalf("lost decision must not carry a follow-up, got %v %q",
			decision.NextFollowupDate, decision.NextFollowupTime)
	}
}

func TestEvaluate_ExactlyAtLostThreshold(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	contacted := now.AddDate(0, 0, -LostThresholdDays)

	decision := Evaluate(now, &contacted, now.AddDate(0, 0, -90))

	if decision.Action != ActionMarkLost {
		t.Fatalf("expected mark-lost at exactly %d days, got %v", LostThresholdDays, decision.Action)
	}
}

func TestEvaluate_FreshLeadGetsFastCadence(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	decision := Evaluate(now, nil, now)

	if decision.Action != ActionSchedule {
		t.Fatalf("expected schedule action, got %v", decision.Action)
	}
	if decision.IntervalDays != FastIntervalDays {
		t.Fatalf("expected interval %d, got %d", FastIntervalDays, decision.IntervalDays)
	}
}
