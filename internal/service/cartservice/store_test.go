package cartservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gomarket/internal/domain"
	apperror "gomarket/internal/errors"
	"gomarket/internal/pkg/logger"
	"gomarket/internal/repository/storagerepo"
	"gomarket/internal/service/cartservice"
)

// MockStorage é uma implementação mock de domain.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *MockStorage) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// flakyStorage falha as próximas failGets leituras e depois delega ao MemoryStorage.
type flakyStorage struct {
	*storagerepo.MemoryStorage
	failGets int
}

func (f *flakyStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGets > 0 {
		f.failGets--
		return nil, errors.New("i/o timeout")
	}
	return f.MemoryStorage.Get(ctx, key)
}

// stubCatalog devolve produtos de um mapa fixo.
type stubCatalog map[string]domain.Product

func (s stubCatalog) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	if p, ok := s[id]; ok {
		return p, nil
	}
	return domain.Product{}, apperror.NewNotFoundError(id)
}

func shoe() domain.Product {
	return domain.Product{
		ID:           "shoe",
		Name:         "Running Shoe",
		Price:        60,
		Quantity:     3,
		Color:        domain.OptionList{"red", "blue", "green"},
		VariantStock: map[string]int{"red": 5, "green": 0},
	}
}

func openEmpty(t *testing.T) (*cartservice.Store, *storagerepo.MemoryStorage) {
	t.Helper()
	storage := storagerepo.NewMemoryStorage()
	return cartservice.Open(context.Background(), storage, "", logger.NewNop()), storage
}

func TestAddToCart_ClampsToStock(t *testing.T) {
	store, _ := openEmpty(t)
	discount := 20.0
	p := domain.Product{ID: "p1", Price: 100, Discount: &discount, Quantity: 3}

	err := store.AddToCart(context.Background(), p, 5, domain.Selection{}, nil)

	assert.NoError(t, err)
	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	// O desconto só entra no resumo; o preço unitário guardado é o base.
	assert.Equal(t, 100.0, lines[0].Price)
}

func TestAddToCart_CapturesPriceOverride(t *testing.T) {
	store, _ := openEmpty(t)
	p := domain.Product{ID: "p1", Price: 80, Quantity: 10}
	price := 100.0

	require.NoError(t, store.AddToCart(context.Background(), p, 1, domain.Selection{}, &price))

	line, ok := store.Line("p1")
	require.True(t, ok)
	assert.Equal(t, 100.0, line.Price)
}

func TestAddToCart_SeparateLinesPerVariant(t *testing.T) {
	store, _ := openEmpty(t)
	ctx := context.Background()

	require.NoError(t, store.AddToCart(ctx, shoe(), 1, domain.NewSelection("", "red", ""), nil))
	require.NoError(t, store.AddToCart(ctx, shoe(), 2, domain.NewSelection("", "blue", ""), nil))

	lines := store.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, `shoe__{"color":"red"}`, lines[0].Key())
	assert.Equal(t, `shoe__{"color":"blue"}`, lines[1].Key())
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 2, lines[1].Quantity)
}

func TestAddToCart_MergesAndClampsExistingLine(t *testing.T) {
	store, _ := openEmpty(t)
	ctx := context.Background()
	red := domain.NewSelection("", "red", "")

	require.NoError(t, store.AddToCart(ctx, shoe(), 3, red, nil))
	require.NoError(t, store.AddToCart(ctx, shoe(), 4, red, nil))

	assert.Equal(t, 1, store.Len())
	line, _ := store.Line(domain.CartKey("shoe", red))
	assert.Equal(t, 5, line.Quantity)
}

func TestAddToCart_NoStockOrNonPositiveQuantityIsNoop(t *testing.T) {
	storage := new(MockStorage)
	storage.On("Get", mock.Anything, "cart").Return(nil, domain.ErrKeyNotFound)
	store := cartservice.Open(context.Background(), storage, "", logger.NewNop())
	ctx := context.Background()

	assert.NoError(t, store.AddToCart(ctx, shoe(), 1, domain.NewSelection("", "green", ""), nil))
	assert.NoError(t, store.AddToCart(ctx, shoe(), 0, domain.Selection{}, nil))
	assert.NoError(t, store.AddToCart(ctx, shoe(), -3, domain.Selection{}, nil))

	assert.Equal(t, 0, store.Len())
	storage.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveFromCart_Idempotent(t *testing.T) {
	store, _ := openEmpty(t)
	ctx := context.Background()
	p := domain.Product{ID: "p1", Price: 10, Quantity: 5}
	require.NoError(t, store.AddToCart(ctx, p, 1, domain.Selection{}, nil))

	assert.NoError(t, store.RemoveFromCart(ctx, "p1", ""))
	assert.NoError(t, store.RemoveFromCart(ctx, "p1", ""))
	assert.NoError(t, store.RemoveFromCart(ctx, "missing", ""))
	assert.Equal(t, 0, store.Len())
}

func TestRemoveFromCart_ByVariantKey(t *testing.T) {
	store, _ := openEmpty(t)
	ctx := context.Background()
	red := domain.NewSelection("", "red", "")
	blue := domain.NewSelection("", "blue", "")
	require.NoError(t, store.AddToCart(ctx, shoe(), 1, red, nil))
	require.NoError(t, store.AddToCart(ctx, shoe(), 1, blue, nil))

	// O ID puro não corresponde a linhas com variantes.
	require.NoError(t, store.RemoveFromCart(ctx, "shoe", ""))
	assert.Equal(t, 2, store.Len())

	require.NoError(t, store.RemoveFromCart(ctx, "shoe", domain.CartKey("shoe", red)))
	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, domain.CartKey("shoe", blue), lines[0].Key())
}

func TestUpdateQuantity_ClampsToRange(t *testing.T) {
	store, _ := openEmpty(t)
	ctx := context.Background()
	p := domain.Product{ID: "p1", Price: 10, Quantity: 4}
	require.NoError(t, store.AddToCart(ctx, p, 2, domain.Selection{}, nil))

	require.NoError(t, store.UpdateQuantity(ctx, "p1", 10, ""))
	line, _ := store.Line("p1")
	assert.Equal(t, 4, line.Quantity)

	require.NoError(t, store.UpdateQuantity(ctx, "p1", 0, ""))
	line, _ = store.Line("p1")
	assert.Equal(t, 1, line.Quantity)

	require.NoError(t, store.UpdateQuantity(ctx, "p1", -5, ""))
	line, _ = store.Line("p1")
	assert.Equal(t, 1, line.Quantity)
}

func TestUpdateQuantity_UnknownLineIsNoop(t *testing.T) {
	store, _ := openEmpty(t)
	assert.NoError(t, store.UpdateQuantity(context.Background(), "ghost", 3, ""))
	assert.Equal(t, 0, store.Len())
}

func TestUpdateQuantity_RemovesWhenLiveStockIsZero(t *testing.T) {
	storage := storagerepo.NewMemoryStorage()
	ctx := context.Background()
	p := domain.Product{ID: "p1", Price: 10, Quantity: 4}

	store := cartservice.Open(ctx, storage, "", logger.NewNop())
	require.NoError(t, store.AddToCart(ctx, p, 2, domain.Selection{}, nil))

	soldOut := p
	soldOut.Quantity = 0
	store = cartservice.Open(ctx, storage, "", logger.NewNop(), cartservice.WithProductLookup(stubCatalog{"p1": soldOut}))

	require.NoError(t, store.UpdateQuantity(ctx, "p1", 3, ""))
	assert.Equal(t, 0, store.Len())

	reloaded := cartservice.Open(ctx, storage, "", logger.NewNop())
	assert.Equal(t, 0, reloaded.Len())
}

func TestStore_RoundTripThroughStorage(t *testing.T) {
	storage := storagerepo.NewMemoryStorage()
	ctx := context.Background()
	price := 75.5

	store := cartservice.Open(ctx, storage, "cart:s1", logger.NewNop())
	require.NoError(t, store.AddToCart(ctx, shoe(), 2, domain.NewSelection("", "red", "42"), &price))
	require.NoError(t, store.AddToCart(ctx, domain.Product{ID: "p2", Price: 5, Quantity: 9}, 4, domain.Selection{}, nil))

	reloaded := cartservice.Open(ctx, storage, "cart:s1", logger.NewNop())
	assert.Equal(t, store.Lines(), reloaded.Lines())

	other := cartservice.Open(ctx, storage, "cart:s2", logger.NewNop())
	assert.Equal(t, 0, other.Len())
}

func TestOpen_CorruptOrMissingDataStartsEmpty(t *testing.T) {
	storage := storagerepo.NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, storage.Set(ctx, "cart", []byte("{not json")))

	assert.Equal(t, 0, cartservice.Open(ctx, storage, "", logger.NewNop()).Len())
	assert.Equal(t, 0, cartservice.Open(ctx, storage, "nothing-here", logger.NewNop()).Len())
}

func TestOpen_StorageErrorBlocksWrites(t *testing.T) {
	storage := new(MockStorage)
	storage.On("Get", mock.Anything, "cart").Return(nil, errors.New("connection refused"))
	ctx := context.Background()

	store := cartservice.Open(ctx, storage, "", logger.NewNop())

	assert.Equal(t, 0, store.Len())
	var internalErr *apperror.InternalError
	require.ErrorAs(t, store.Err(), &internalErr)

	p := domain.Product{ID: "p1", Quantity: 5}
	assert.ErrorAs(t, store.AddToCart(ctx, p, 1, domain.Selection{}, nil), &internalErr)
	assert.ErrorAs(t, store.UpdateQuantity(ctx, "p1", 2, ""), &internalErr)
	assert.ErrorAs(t, store.RemoveFromCart(ctx, "p1", ""), &internalErr)
	assert.ErrorAs(t, store.Reconcile(ctx), &internalErr)
	storage.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestOpen_TransientReadFailureKeepsPersistedCart(t *testing.T) {
	storage := &flakyStorage{MemoryStorage: storagerepo.NewMemoryStorage()}
	ctx := context.Background()
	a := domain.Product{ID: "a", Price: 10, Quantity: 5}
	b := domain.Product{ID: "b", Price: 20, Quantity: 5}
	require.NoError(t, cartservice.Open(ctx, storage, "", logger.NewNop()).AddToCart(ctx, a, 2, domain.Selection{}, nil))

	storage.failGets = 1
	store := cartservice.Open(ctx, storage, "", logger.NewNop())
	assert.Error(t, store.AddToCart(ctx, b, 1, domain.Selection{}, nil))

	store = cartservice.Open(ctx, storage, "", logger.NewNop())
	require.NoError(t, store.Err())
	require.NoError(t, store.AddToCart(ctx, b, 1, domain.Selection{}, nil))

	lines := store.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].Key())
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "b", lines[1].Key())
}

func TestClearCart_AllowedAfterReadFailure(t *testing.T) {
	storage := &flakyStorage{MemoryStorage: storagerepo.NewMemoryStorage(), failGets: 1}
	ctx := context.Background()
	store := cartservice.Open(ctx, storage, "", logger.NewNop())
	require.Error(t, store.Err())

	require.NoError(t, store.ClearCart(ctx))

	assert.NoError(t, store.Err())
	assert.NoError(t, store.AddToCart(ctx, domain.Product{ID: "p1", Quantity: 1}, 1, domain.Selection{}, nil))
}

func TestOpen_MergesDuplicateKeysAndSkipsInvalidLines(t *testing.T) {
	storage := storagerepo.NewMemoryStorage()
	ctx := context.Background()
	raw := `[
		{"product": {"id": "p1", "price": 10, "quantity": 9}, "quantity": 2, "selectedVariants": {}, "price": 10},
		{"product": {"id": "p1", "price": 10, "quantity": 9}, "quantity": 3, "selectedVariants": null, "price": 10},
		{"product": {"id": ""}, "quantity": 1, "price": 1},
		{"product": {"id": "p2"}, "quantity": 0, "price": 1}
	]`
	require.NoError(t, storage.Set(ctx, "cart", []byte(raw)))

	store := cartservice.Open(ctx, storage, "", logger.NewNop())

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].Key())
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestOpen_ClampsHydratedLinesToSnapshotStock(t *testing.T) {
	storage := storagerepo.NewMemoryStorage()
	ctx := context.Background()
	raw := `[
		{"product": {"id": "p1", "price": 10, "quantity": 4}, "quantity": 3, "price": 10},
		{"product": {"id": "p1", "price": 10, "quantity": 4}, "quantity": 3, "price": 10},
		{"product": {"id": "p2", "price": 5, "quantity": 2}, "quantity": 7, "price": 5},
		{"product": {"id": "p3", "price": 5, "quantity": 0}, "quantity": 1, "price": 5}
	]`
	require.NoError(t, storage.Set(ctx, "cart", []byte(raw)))

	lines := cartservice.Open(ctx, storage, "", logger.NewNop()).Lines()

	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].Key())
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, "p2", lines[1].Key())
	assert.Equal(t, 2, lines[1].Quantity)
}

func TestClearCart_PersistsEmptyList(t *testing.T) {
	store, storage := openEmpty(t)
	ctx := context.Background()
	require.NoError(t, store.AddToCart(ctx, domain.Product{ID: "p1", Quantity: 2}, 1, domain.Selection{}, nil))

	require.NoError(t, store.ClearCart(ctx))

	raw, err := storage.Get(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
	assert.Equal(t, 0, store.Len())
}

func TestReconcile_ClampsAndRemoves(t *testing.T) {
	storage := storagerepo.NewMemoryStorage()
	ctx := context.Background()
	a := domain.Product{ID: "a", Quantity: 10}
	b := domain.Product{ID: "b", Quantity: 10}

	store := cartservice.Open(ctx, storage, "", logger.NewNop())
	require.NoError(t, store.AddToCart(ctx, a, 6, domain.Selection{}, nil))
	require.NoError(t, store.AddToCart(ctx, b, 2, domain.Selection{}, nil))

	liveA, liveB := a, b
	liveA.Quantity = 4
	liveB.Quantity = 0
	store = cartservice.Open(ctx, storage, "", logger.NewNop(), cartservice.WithProductLookup(stubCatalog{"a": liveA, "b": liveB}))

	require.NoError(t, store.Reconcile(ctx))

	lines := store.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "a", lines[0].Key())
	assert.Equal(t, 4, lines[0].Quantity)
}

func TestPersistFailure_ReturnsStorageError(t *testing.T) {
	storage := new(MockStorage)
	storage.On("Get", mock.Anything, "cart").Return(nil, domain.ErrKeyNotFound)
	storage.On("Set", mock.Anything, "cart", mock.Anything).Return(errors.New("disk full"))
	store := cartservice.Open(context.Background(), storage, "", logger.NewNop())

	err := store.AddToCart(context.Background(), domain.Product{ID: "p1", Quantity: 1}, 1, domain.Selection{}, nil)

	var internalErr *apperror.InternalError
	assert.ErrorAs(t, err, &internalErr)
	storage.AssertExpectations(t)
}
