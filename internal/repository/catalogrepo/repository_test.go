package catalogrepo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gomarket/internal/pkg/cache"
	"gomarket/internal/pkg/logger"
	"gomarket/internal/repository/catalogrepo"
)

const doc = `{"phones":[{"category":"android","products":[{"id":"p1","name":"Phone","price":10,"quantity":2}]}]}`

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

func TestLoad_FromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	repo := catalogrepo.NewRepository(srv.URL, srv.Client(), nil, time.Second, 0, logger.NewNop())

	got, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"phones"}, got.Keys)
	require.Len(t, got.Products(), 1)
	assert.Equal(t, "p1", got.Products()[0].ID)
}

func TestLoad_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	repo := catalogrepo.NewRepository(srv.URL, srv.Client(), nil, time.Second, 0, logger.NewNop())

	_, err := repo.Load(context.Background())
	assert.Error(t, err)
}

func TestLoad_NoRetryOnFailure(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := catalogrepo.NewRepository(srv.URL, srv.Client(), nil, time.Second, 0, logger.NewNop())
	_, _ = repo.Load(context.Background())

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	for _, source := range []string{path, "file://" + path} {
		repo := catalogrepo.NewRepository(source, nil, nil, time.Second, 0, logger.NewNop())
		got, err := repo.Load(context.Background())
		require.NoError(t, err, source)
		assert.Len(t, got.Products(), 1)
	}
}

func TestLoad_InvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`["not", "an", "object"]`), 0o600))

	repo := catalogrepo.NewRepository(path, nil, nil, time.Second, 0, logger.NewNop())
	_, err := repo.Load(context.Background())
	assert.Error(t, err)
}

func TestLoad_CacheHitSkipsSource(t *testing.T) {
	cacheClient := new(MockCacheClient)
	cacheClient.On("Get", mock.Anything, "catalog:document").Return(doc, nil)

	repo := catalogrepo.NewRepository("/does/not/exist.json", nil, cacheClient, time.Second, time.Minute, logger.NewNop())

	got, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, got.Products(), 1)
	cacheClient.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoad_CacheMissFillsCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cacheClient := new(MockCacheClient)
	cacheClient.On("Get", mock.Anything, "catalog:document").Return("", cache.ErrCacheMiss)
	cacheClient.On("Set", mock.Anything, "catalog:document", []byte(doc), time.Minute).Return(nil)

	repo := catalogrepo.NewRepository(path, nil, cacheClient, time.Second, time.Minute, logger.NewNop())

	_, err := repo.Load(context.Background())

	require.NoError(t, err)
	cacheClient.AssertExpectations(t)
}
