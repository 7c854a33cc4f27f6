package task

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qport "pairingbook/internal/infrastructure/queue/port"
	"pairingbook/internal/infrastructure/realtime"
)

// fakeServer captures registered handlers so tests can invoke them directly.
type fakeServer struct {
	handlers map[string]qport.Handler
}

var _ qport.Server = (*fakeServer)(nil)

func (f *fakeServer) Register(taskType string, h qport.Handler) {
	if f.handlers == nil {
		f.handlers = make(map[string]qport.Handler)
	}
	f.handlers[taskType] = h
}

func (f *fakeServer) Run(context.Context) error  { return nil }
func (f *fakeServer) Stop(context.Context) error { return nil }

type fakeClient struct {
	tasks []qport.Task
	opts  []qport.EnqueueOption
}

var _ qport.Client = (*fakeClient)(nil)

func (f *fakeClient) Enqueue(_ context.Context, t qport.Task, opts ...qport.EnqueueOption) (string, error) {
	f.tasks = append(f.tasks, t)
	f.opts = append(f.opts, opts...)
	return "task-1", nil
}

func (f *fakeClient) Close() error { return nil }

func TestParticipationEventHandler(t *testing.T) {
	ctx := context.Background()
	srv := &fakeServer{}
	RegisterParticipationEventTask(srv, realtime.NewRouter())

	handler, ok := srv.handlers[ParticipationEventTaskType]
	require.True(t, ok)

	t.Run("offline recipient is not an error", func(t *testing.T) {
		payload, err := json.Marshal(ParticipationEventPayload{
			Event:       EventApproved,
			RecipientID: "user-2",
		})
		require.NoError(t, err)
		assert.NoError(t, handler(ctx, qport.Task{Type: ParticipationEventTaskType, Payload: payload}))
	})

	t.Run("malformed payload is dropped, never retried", func(t *testing.T) {
		err := handler(ctx, qport.Task{Type: ParticipationEventTaskType, Payload: []byte("{not json")})
		assert.NoError(t, err)
	})

	t.Run("payload without recipient is skipped", func(t *testing.T) {
		payload, err := json.Marshal(ParticipationEventPayload{Event: EventJoinRequested})
		require.NoError(t, err)
		assert.NoError(t, handler(ctx, qport.Task{Type: ParticipationEventTaskType, Payload: payload}))
	})
}

func TestEnqueueParticipationEvent(t *testing.T) {
	client := &fakeClient{}
	EnqueueParticipationEvent(context.Background(), client, ParticipationEventPayload{
		Event:       EventJoinRequested,
		RecipientID: "author-1",
	})

	require.Len(t, client.tasks, 1)
	assert.Equal(t, ParticipationEventTaskType, client.tasks[0].Type)

	var p ParticipationEventPayload
	require.NoError(t, json.Unmarshal(client.tasks[0].Payload, &p))
	assert.Equal(t, EventJoinRequested, p.Event)
	assert.Equal(t, "author-1", p.RecipientID)

	require.Len(t, client.opts, 1)
	assert.Equal(t, "discussion", client.opts[0].Queue)
	assert.Equal(t, 3, client.opts[0].MaxRetry)
}
