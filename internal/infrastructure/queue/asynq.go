package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
)

const (
	TypeWebhook = "webhook:emit"

	webhookMaxRetry = 5
)

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *TaskEnqueuer {
	return &TaskEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueWebhook(ctx context.Context, event ports.AuditEvent) error {
	task, err := NewWebhookTask(event)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task, asynq.MaxRetry(webhookMaxRetry)); err != nil {
		q.log.Warn().Err(err).Str("event", event.Event).Str("project_id", event.ProjectID).Msg("enqueue webhook failed")
		return err
	}
	return nil
}

// NewWebhookTask wraps event as a TypeWebhook task.
func NewWebhookTask(event ports.AuditEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeWebhook, payload), nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
