package storagerepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gomarket/internal/domain"
	apperror "gomarket/internal/errors"
	"gomarket/internal/pkg/cache"
	"gomarket/internal/repository/storagerepo"
)

// MockCacheClient é uma implementação mock de cache.Client.
type MockCacheClient struct {
	mock.Mock
}

func (m *MockCacheClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheClient) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheClient) GetInt(ctx context.Context, key string) (int, error) {
	args := m.Called(ctx, key)
	return args.Int(0), args.Error(1)
}

func (m *MockCacheClient) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheClient) Close() error { return nil }

func TestMemoryStorage_GetSet(t *testing.T) {
	s := storagerepo.NewMemoryStorage()
	ctx := context.Background()

	_, err := s.Get(ctx, "cart")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	value := []byte(`["p1"]`)
	require.NoError(t, s.Set(ctx, "cart", value))
	value[0] = 'X'

	got, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `["p1"]`, string(got))

	got[0] = 'Y'
	again, _ := s.Get(ctx, "cart")
	assert.Equal(t, `["p1"]`, string(again))
}

func TestRedisStorage_Get(t *testing.T) {
	c := new(MockCacheClient)
	c.On("Get", mock.Anything, "store:cart:s1").Return(`[]`, nil)
	c.On("Get", mock.Anything, "store:cart:s2").Return("", cache.ErrCacheMiss)
	c.On("Get", mock.Anything, "store:cart:s3").Return("", errors.New("i/o timeout"))

	s := storagerepo.NewRedisStorage(c, time.Hour)
	ctx := context.Background()

	got, err := s.Get(ctx, "cart:s1")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	_, err = s.Get(ctx, "cart:s2")
	assert.ErrorIs(t, err, domain.ErrKeyNotFound)

	_, err = s.Get(ctx, "cart:s3")
	var internalErr *apperror.InternalError
	assert.ErrorAs(t, err, &internalErr)
	c.AssertExpectations(t)
}

func TestRedisStorage_SetRenewsTTL(t *testing.T) {
	c := new(MockCacheClient)
	c.On("Set", mock.Anything, "store:favorites:s1", []byte(`["p1"]`), time.Hour).Return(nil).Once()
	c.On("Set", mock.Anything, "store:favorites:s2", mock.Anything, time.Hour).Return(errors.New("READONLY"))

	s := storagerepo.NewRedisStorage(c, time.Hour)
	ctx := context.Background()

	assert.NoError(t, s.Set(ctx, "favorites:s1", []byte(`["p1"]`)))

	err := s.Set(ctx, "favorites:s2", []byte(`[]`))
	var internalErr *apperror.InternalError
	assert.ErrorAs(t, err, &internalErr)
	c.AssertExpectations(t)
}
