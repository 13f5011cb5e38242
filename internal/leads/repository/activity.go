package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sentinel actor identity for automated writes. Automated decisions are never
// attributed to a user record.
const (
	ActorTypeSystem = "system"
	ActorTypeUser   = "user"

	SystemActorName = "automation"
)

// ActivitySummaryMaxLen is the maximum character length for activity summaries.
const ActivitySummaryMaxLen = 400

// TruncateSummary trims text to maxLen, appending "..." on overflow.
func TruncateSummary(text string, maxLen int) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > maxLen {
		trimmed = trimmed[:maxLen] + "..."
	}
	return trimmed
}

type Activity struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	ActorType string
	ActorName string
	EventType string
	Summary   string
	Metadata  map[string]any
	CreatedAt time.Time
}

type CreateActivityParams struct {
	LeadID    uuid.UUID
	ActorType string
	ActorName string
	EventType string
	Summary   string
	Metadata  map[string]any
}

// AddActivity appends one entry to the lead's audit trail. The trail is
// append-only; there are no update or delete paths.
func (r *Repository) AddActivity(ctx context.Context, params CreateActivityParams) (Activity, error) {
	metadataJSON, err := json.Marshal(params.Metadata)
	if err != nil {
		return Activity{}, err
	}

	summary := TruncateSummary(params.Summary, ActivitySummaryMaxLen)

	var activity Activity
	err = r.pool.QueryRow(ctx, `
		INSERT INTO lead_activities (lead_id, actor_type, actor_name, event_type, summary, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, lead_id, actor_type, actor_name, event_type, summary, created_at
	`, params.LeadID, params.ActorType, params.ActorName, params.EventType, summary, metadataJSON).Scan(
		&activity.ID, &activity.LeadID, &activity.ActorType, &activity.ActorName,
		&activity.EventType, &activity.Summary, &activity.CreatedAt,
	)
	if err != nil {
		return Activity{}, err
	}

	activity.Metadata = params.Metadata
	return activity, nil
}

// AddSystemActivity records an automated decision under the sentinel system actor.
func (r *Repository) AddSystemActivity(ctx context.Context, leadID uuid.UUID, eventType, summary string, metadata map[string]any) error {
	_, err := r.AddActivity(ctx, CreateActivityParams{
		LeadID:    leadID,
		ActorType: ActorTypeSystem,
		ActorName: SystemActorName,
		EventType: eventType,
		Summary:   summary,
		Metadata:  metadata,
	})
	return err
}

// ListActivities returns the lead's audit trail, newest first.
func (r *Repository) ListActivities(ctx context.Context, leadID uuid.UUID) ([]Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, actor_type, actor_name, event_type, summary, metadata, created_at
		FROM lead_activities
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]Activity, 0)
	for rows.Next() {
		var activity Activity
		var metadataJSON []byte
		if err := rows.Scan(
			&activity.ID, &activity.LeadID, &activity.ActorType, &activity.ActorName,
			&activity.EventType, &activity.Summary, &metadataJSON, &activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		activity.Metadata, err = decodeActivityMetadata(metadataJSON)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return activities, nil
}

// decodeActivityMetadata unmarshals a stored metadata column. NULL and empty
// values decode to nil rather than an empty map.
func decodeActivityMetadata(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var metadata map[string]any
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil, fmt.Errorf("leads: decode activity metadata: %w", err)
	}
	return metadata, nil
}
