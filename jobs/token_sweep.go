// Package jobs contains background job definitions and the Asynq worker.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/taskdeck/taskdeck/internal/auth"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeTokenSweep is the task type for clearing stale refresh tokens.
	TaskTypeTokenSweep = "auth:token_sweep"
)

// TokenSweepPayload describes a refresh-token sweep run.
type TokenSweepPayload struct {
	Reason string `json:"reason"`
}

// NewTokenSweepTask constructs an Asynq task.
func NewTokenSweepTask(reason string) (*asynq.Task, error) {
	data, err := json.Marshal(TokenSweepPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeTokenSweep, data), nil
}

// TokenSweepJob clears stored refresh tokens that no longer verify, so dead
// sessions do not linger on user rows indefinitely.
type TokenSweepJob struct {
	service *auth.Service
	logger  *slog.Logger
}

// NewTokenSweepJob constructs a TokenSweepJob.
func NewTokenSweepJob(service *auth.Service, logger *slog.Logger) *TokenSweepJob {
	return &TokenSweepJob{service: service, logger: logger}
}

// Handle processes TaskTypeTokenSweep tasks.
func (j *TokenSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload TokenSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	cleared, err := j.service.SweepExpiredRefreshTokens(ctx)
	if err != nil {
		j.logger.Error("token sweep", slog.Any("error", err))
		return err
	}
	j.logger.Info("token sweep finished",
		slog.String("reason", payload.Reason),
		slog.Int("cleared", cleared))
	return nil
}
