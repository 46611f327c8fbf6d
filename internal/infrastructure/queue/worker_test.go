package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/projectdb/internal/application/ports"
)

type recordingEmitter struct {
	events []ports.AuditEvent
	err    error
}

func (e *recordingEmitter) Emit(ctx context.Context, ev ports.AuditEvent) error {
	e.events = append(e.events, ev)
	return e.err
}

func TestHandleWebhook(t *testing.T) {
	em := &recordingEmitter{}
	w := &Worker{emitter: em, log: zerolog.Nop()}

	ev := ports.AuditEvent{Event: ports.EventTableCreated, ProjectID: "p_a1b2c3d4e5f6", Table: "posts", SchemaKey: "p_a1b2c3d4e5f6_posts", Success: true}
	task, err := NewWebhookTask(ev)
	require.NoError(t, err)
	assert.Equal(t, TypeWebhook, task.Type())

	require.NoError(t, w.HandleWebhook(context.Background(), task))
	require.Len(t, em.events, 1)
	assert.Equal(t, ev, em.events[0])
}

func TestHandleWebhook_InvalidPayloadSkipsRetry(t *testing.T) {
	w := &Worker{emitter: &recordingEmitter{}, log: zerolog.Nop()}
	err := w.HandleWebhook(context.Background(), asynq.NewTask(TypeWebhook, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleWebhook_EmitErrorRetries(t *testing.T) {
	w := &Worker{emitter: &recordingEmitter{err: errors.New("503")}, log: zerolog.Nop()}
	task, _ := NewWebhookTask(ports.AuditEvent{Event: ports.EventProjectCreated})
	err := w.HandleWebhook(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestNoopEnqueuer(t *testing.T) {
	assert.NoError(t, NewNoopEnqueuer().EnqueueWebhook(context.Background(), ports.AuditEvent{}))
}
