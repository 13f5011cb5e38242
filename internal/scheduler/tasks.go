// Package scheduler provides the asynq task definitions, the enqueue client,
// the worker that executes background jobs, and the daily dispatcher that
// triggers the escalation batch.
package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskEscalationRunBatch = "escalation.run_batch"

const TaskMatchRegenerateAll = "matching.regenerate_all"

type EscalationRunBatchPayload struct {
	TriggeredAt time.Time `json:"triggeredAt"`
}

type MatchRegenerateAllPayload struct {
	TriggeredAt time.Time `json:"triggeredAt"`
}

func NewEscalationRunBatchTask(payload EscalationRunBatchPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEscalationRunBatch, data), nil
}

func ParseEscalationRunBatchPayload(task *asynq.Task) (EscalationRunBatchPayload, error) {
	var payload EscalationRunBatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return EscalationRunBatchPayload{}, err
	}
	return payload, nil
}

func NewMatchRegenerateAllTask(payload MatchRegenerateAllPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMatchRegenerateAll, data), nil
}

func ParseMatchRegenerateAllPayload(task *asynq.Task) (MatchRegenerateAllPayload, error) {
	var payload MatchRegenerateAllPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return MatchRegenerateAllPayload{}, err
	}
	return payload, nil
}
