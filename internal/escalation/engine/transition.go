package engine

import "time"

// FollowupTime is the fixed local time slot written on every scheduled
// follow-up.
const FollowupTime = "10:00"

// LostReason is the junk reason recorded when automation terminates a lead.
const LostReason = "no response after 45+ days"

// Action is the outcome kind of an escalation evaluation.
type Action int

const (
	// ActionSchedule means the lead stays in the no-response state with a new
	// follow-up date.
	ActionSchedule Action = iota
	// ActionMarkLost means the lead crossed the lost threshold and is
	// terminated.
	ActionMarkLost
)

// Decision is the full outcome of evaluating one lead. It is a value the
// orchestrator applies; computing it has no side effects.
type Decision struct {
	Action       Action
	ElapsedDays  int
	IntervalDays int
	// NextFollowupDate is set only for ActionSchedule.
	NextFollowupDate time.Time
	// NextFollowupTime is set only for ActionSchedule.
	NextFollowupTime string
	// LostReason is set only for ActionMarkLost.
	LostReason string
}

// Evaluate decides what happens to a no-response lead at the given instant.
// Total: every input produces a decision, never an error.
func Evaluate(now time.Time, lastContactedAt *time.Time, createdAt time.Time) Decision {
	elapsed := ElapsedDays(now, lastContactedAt, createdAt)
	interval := IntervalDays(elapsed)

	if interval == 0 {
		return Decision{
			Action:      ActionMarkLost,
			ElapsedDays: elapsed,
			LostReason:  LostReason,
		}
	}

	return Decision{
		Action:           ActionSchedule,
		ElapsedDays:      elapsed,
		IntervalDays:     interval,
		NextFollowupDate: now.AddDate(0, 0, interval),
		NextFollowupTime: FollowupTime,
	}
}
