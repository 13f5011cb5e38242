// Package transport defines request/response DTOs for the escalation module.
package transport

import "github.com/google/uuid"

// Action values reported by escalation evaluations.
const (
	ActionScheduled   = "scheduled"
	ActionMovedToLost = "moved_to_lost"
)

// EvaluateResponse reports the applied escalation decision for one lead.
type EvaluateResponse struct {
	LeadID           uuid.UUID `json:"lead_id"`
	Action           string    `json:"action"`
	DaysSinceContact int       `json:"days_since_contact"`
	IntervalDays     int       `json:"interval_days,omitempty"`
	NextFollowupDate *string   `json:"next_followup_date,omitempty"`
	NextFollowupTime *string   `json:"next_followup_time,omitempty"`
}

// BatchRunResponse summarizes one escalation batch run. Leads that errored
// are counted in TotalLeads but not in Processed.
type BatchRunResponse struct {
	TotalLeads  int `json:"total_leads"`
	Processed   int `json:"processed"`
	Scheduled   int `json:"scheduled"`
	MovedToLost int `json:"moved_to_lost"`
}
