package scheduler

import (
	"context"
	"fmt"

	escalationservice "estatedesk/internal/escalation/service"
	matchingservice "estatedesk/internal/matching/service"
	"estatedesk/platform/config"
	"estatedesk/platform/logger"

	"github.com/hibiken/asynq"
)

type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	escalation *escalationservice.Service
	matching   *matchingservice.Service
	log        *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, escalation *escalationservice.Service, matching *matchingservice.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:     server,
		mux:        mux,
		escalation: escalation,
		matching:   matching,
		log:        log,
	}

	mux.HandleFunc(TaskEscalationRunBatch, w.handleEscalationRunBatch)
	mux.HandleFunc(TaskMatchRegenerateAll, w.handleMatchRegenerateAll)

	return w, nil
}

func (w *Worker) handleEscalationRunBatch(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseEscalationRunBatchPayload(task)
	if err != nil {
		return err
	}

	result, err := w.escalation.RunBatch(ctx)
	if err != nil {
		return err
	}

	w.log.Info("escalation batch complete",
		"triggered_at", payload.TriggeredAt,
		"total_leads", result.TotalLeads,
		"processed", result.Processed,
		"scheduled", result.Scheduled,
		"moved_to_lost", result.MovedToLost,
	)
	return nil
}

func (w *Worker) handleMatchRegenerateAll(ctx context.Context, task *asynq.Task) error {
	if _, err := ParseMatchRegenerateAllPayload(task); err != nil {
		return err
	}

	result, err := w.matching.RegenerateAll(ctx)
	if err != nil {
		return err
	}

	w.log.Info("full match regeneration task complete", "matches_created", result.MatchesCreated)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
