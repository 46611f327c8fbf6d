package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
)

// Worker runs Asynq task handlers (webhook delivery).
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	emitter ports.WebhookEmitter
	log     zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, emitter ports.WebhookEmitter, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	w := &Worker{srv: srv, mux: asynq.NewServeMux(), emitter: emitter, log: log}
	w.mux.HandleFunc(TypeWebhook, w.HandleWebhook)
	return w
}

// HandleWebhook decodes the audit event and hands it to the emitter. Malformed payloads are not retried.
func (w *Worker) HandleWebhook(ctx context.Context, t *asynq.Task) error {
	var ev ports.AuditEvent
	if err := json.Unmarshal(t.Payload(), &ev); err != nil {
		w.log.Error().Err(err).Msg("webhook task payload invalid")
		return fmt.Errorf("decode webhook payload: %v: %w", err, asynq.SkipRetry)
	}
	if err := w.emitter.Emit(ctx, ev); err != nil {
		w.log.Warn().Err(err).Str("event", ev.Event).Str("project_id", ev.ProjectID).Msg("webhook delivery failed")
		return err
	}
	w.log.Debug().Str("event", ev.Event).Str("project_id", ev.ProjectID).Msg("webhook delivered")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
