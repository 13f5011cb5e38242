package events

import "github.com/google/uuid"

// LeadChanged is published whenever a lead is created or its matching-relevant
// fields (location, category, budget, tags, status) are updated. The matching
// module subscribes to it and regenerates that lead's matches.
type LeadChanged struct {
	BaseEvent
	LeadID uuid.UUID
}

// EventName returns the unique identifier for this event type.
func (LeadChanged) EventName() string { return "lead.changed" }

// LeadMovedToLost is published when the escalation engine terminates a lead.
type LeadMovedToLost struct {
	BaseEvent
	LeadID           uuid.UUID
	DaysSinceContact int
}

// EventName returns the unique identifier for this event type.
func (LeadMovedToLost) EventName() string { return "lead.moved_to_lost" }
