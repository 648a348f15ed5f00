package favoriteservice_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gomarket/internal/domain"
	"gomarket/internal/pkg/events"
	"gomarket/internal/pkg/logger"
	"gomarket/internal/repository/storagerepo"
	"gomarket/internal/service/favoriteservice"
)

// MockPublisher é uma implementação mock de events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, env events.Envelope) error {
	args := m.Called(ctx, topic, env)
	return args.Error(0)
}

func TestService_IsolatedPerSession(t *testing.T) {
	svc := favoriteservice.NewService(storagerepo.NewMemoryStorage(), logger.NewNop())
	ctx := context.Background()

	ev, err := svc.Toggle(ctx, "s1", "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.FavoritesUpdated{Count: 1, ProductID: "p1", Favorite: true}, ev)

	assert.True(t, svc.IsFavorite(ctx, "s1", "p1"))
	assert.False(t, svc.IsFavorite(ctx, "s2", "p1"))
	assert.Equal(t, domain.FavoritesState{ProductIDs: []string{}, Count: 0}, svc.List(ctx, "s2"))
	assert.Equal(t, domain.FavoritesState{ProductIDs: []string{"p1"}, Count: 1}, svc.List(ctx, "s1"))
}

func TestService_ListenersReceiveSessionID(t *testing.T) {
	svc := favoriteservice.NewService(storagerepo.NewMemoryStorage(), logger.NewNop())
	ctx := context.Background()

	var sessions []string
	svc.AddListener(func(sessionID string, ev domain.FavoritesUpdated) {
		sessions = append(sessions, sessionID)
	})

	_, _ = svc.Toggle(ctx, "s1", "p1")
	_, _ = svc.Toggle(ctx, "s2", "p1")

	assert.Equal(t, []string{"s1", "s2"}, sessions)
}

func TestPublishTo_PublishesEnvelope(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, "favorites", mock.Anything).Return(nil).Once()

	svc := favoriteservice.NewService(storagerepo.NewMemoryStorage(), logger.NewNop())
	svc.AddListener(favoriteservice.PublishTo(pub, "favorites", logger.NewNop()))

	_, err := svc.Toggle(context.Background(), "s1", "p7")
	require.NoError(t, err)
	pub.AssertExpectations(t)

	env := pub.Calls[0].Arguments.Get(2).(events.Envelope)
	assert.Equal(t, events.EventFavoritesUpdated, env.EventType)
	assert.Equal(t, "s1", env.SessionID)

	var payload domain.FavoritesUpdated
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, domain.FavoritesUpdated{Count: 1, ProductID: "p7", Favorite: true}, payload)
}

func TestPublishTo_FailureDoesNotFailToggle(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("buffer full"))

	svc := favoriteservice.NewService(storagerepo.NewMemoryStorage(), logger.NewNop())
	svc.AddListener(favoriteservice.PublishTo(pub, "favorites", logger.NewNop()))

	ev, err := svc.Toggle(context.Background(), "s1", "p1")

	assert.NoError(t, err)
	assert.True(t, ev.Favorite)
}
