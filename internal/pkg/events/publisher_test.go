package events_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomarket/internal/domain"
	"gomarket/internal/pkg/events"
	"gomarket/internal/pkg/logger"
)

func TestNewEnvelope(t *testing.T) {
	env, err := events.NewEnvelope(events.EventFavoritesUpdated, "s1", domain.FavoritesUpdated{Count: 2, ProductID: "p1", Favorite: true})

	require.NoError(t, err)
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, 1, env.EventVersion)
	assert.Equal(t, "s1", env.SessionID)
	assert.False(t, env.OccurredAt.IsZero())
	assert.JSONEq(t, `{"count":2,"productId":"p1","favorite":true}`, string(env.Payload))

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"event_type":"favorites.updated"`)
}

func TestNewEnvelope_UnserializablePayload(t *testing.T) {
	_, err := events.NewEnvelope(events.EventOrderPlaced, "s1", make(chan int))
	assert.Error(t, err)
}

func TestKafkaPublisher_BufferFull(t *testing.T) {
	// Sem Start, ninguém consome a fila.
	p := events.NewKafkaPublisher([]string{"localhost:9092"}, 1, logger.NewNop())
	env, err := events.NewEnvelope(events.EventOrderPlaced, "s1", map[string]string{"id": "o1"})
	require.NoError(t, err)

	assert.NoError(t, p.Publish(context.Background(), "orders", env))
	assert.ErrorIs(t, p.Publish(context.Background(), "orders", env), events.ErrBufferFull)
}

func TestKafkaPublisher_ClosedAfterShutdown(t *testing.T) {
	p := events.NewKafkaPublisher([]string{"localhost:9092"}, 1, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Start(ctx)
	p.WaitClosed()

	env, err := events.NewEnvelope(events.EventOrderPlaced, "s1", map[string]string{"id": "o1"})
	require.NoError(t, err)

	assert.ErrorIs(t, p.Publish(context.Background(), "orders", env), events.ErrPublisherClosed)
}

func TestNopPublisher(t *testing.T) {
	var p events.Publisher = events.NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), "x", events.Envelope{}))
}
