package scheduler

import (
	"context"
	"time"

	"estatedesk/platform/config"
	"estatedesk/platform/logger"
)

// DailyDispatcher enqueues the daily automation tasks at the configured local
// hour: the escalation batch and a full match regeneration, so matches track
// the day's listing and lead changes. Both enqueues are idempotent per day
// (the task IDs carry the date), so the dispatcher can restart freely.
type DailyDispatcher struct {
	client    *Client
	batchHour int
	log       *logger.Logger
}

func NewDailyDispatcher(cfg config.EscalationConfig, client *Client, log *logger.Logger) *DailyDispatcher {
	hour := cfg.GetEscalationBatchHour()
	if hour < 0 || hour > 23 {
		hour = 9
	}

	return &DailyDispatcher{
		client:    client,
		batchHour: hour,
		log:       log,
	}
}

func (d *DailyDispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil {
		return
	}

	for {
		runAt := d.nextRun(time.Now())

		if err := d.enqueueDaily(ctx, runAt); err != nil {
			d.log.Warn("daily task enqueue failed", "run_at", runAt, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Minute):
			}
			continue
		}

		d.log.Info("daily tasks enqueued", "run_at", runAt)

		// Sleep past the run before enqueueing the next day.
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(runAt.Add(time.Minute))):
		}
	}
}

// enqueueDaily queues both automation tasks for the given slot.
func (d *DailyDispatcher) enqueueDaily(ctx context.Context, runAt time.Time) error {
	if err := d.client.EnqueueEscalationBatch(ctx, runAt); err != nil {
		return err
	}
	return d.client.EnqueueMatchRegenerateAll(ctx, runAt)
}

// nextRun returns today's batch slot, or tomorrow's if today's has passed.
func (d *DailyDispatcher) nextRun(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), d.batchHour, 0, 0, 0, now.Location())
	if !run.After(now) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}
