package favoriteservice

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"gomarket/internal/domain"
	apperror "gomarket/internal/errors"
	"gomarket/internal/pkg/logger"
)

// DefaultStorageKey é a chave usada quando os favoritos não pertencem a uma sessão.
const DefaultStorageKey = "favorites"

// Listener recebe as alterações do conjunto de favoritos.
type Listener func(domain.FavoritesUpdated)

// Store é o conjunto de favoritos persistido. Cada ID aparece no máximo uma vez.
// As leituras vão sempre ao Storage.
type Store struct {
	mu        sync.Mutex
	storage   domain.Storage
	key       string
	logger    logger.Logger
	listeners map[int]Listener
	nextID    int
}

// NewStore cria o Store de favoritos sobre o Storage.
func NewStore(storage domain.Storage, key string, log logger.Logger) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Store{
		storage:   storage,
		key:       key,
		logger:    log,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registra um Listener e retorna a função que o remove.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Toggle inclui o produto se ausente, ou remove se presente. Retorna a nova situação.
// Se a leitura do Storage falhar, retorna o erro sem gravar.
func (s *Store) Toggle(ctx context.Context, productID string) (bool, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return false, apperror.NewValidationError("O ID do produto é obrigatório.")
	}

	s.mu.Lock()
	ids, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	favorite := true
	if i := indexOf(ids, productID); i >= 0 {
		ids = append(ids[:i], ids[i+1:]...)
		favorite = false
	} else {
		ids = append(ids, productID)
	}
	if err := s.write(ctx, ids); err != nil {
		s.mu.Unlock()
		return !favorite, err
	}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	ev := domain.FavoritesUpdated{Count: len(ids), ProductID: productID, Favorite: favorite}
	for _, l := range listeners {
		l(ev)
	}
	return favorite, nil
}

// IsFavorite consulta o conjunto persistido.
func (s *Store) IsFavorite(ctx context.Context, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.read(ctx), productID) >= 0
}

// List retorna os IDs favoritados.
func (s *Store) List(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

// Count retorna a quantidade de favoritos.
func (s *Store) Count(ctx context.Context) int {
	return len(s.List(ctx))
}

// read é a leitura das consultas: falha do Storage vira conjunto vazio.
func (s *Store) read(ctx context.Context) []string {
	ids, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("Falha ao ler favoritos; tratando como vazio.", map[string]interface{}{"key": s.key, "error": err.Error()})
		return []string{}
	}
	return ids
}

// load carrega o conjunto; ausente ou corrompido = vazio. Duplicatas são descartadas.
// Outras falhas do Storage são retornadas.
func (s *Store) load(ctx context.Context) ([]string, error) {
	raw, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, apperror.NewStorageError("Falha ao ler favoritos.", err)
	}

	var stored []string
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("Favoritos corrompidos no armazenamento; tratando como vazio.", map[string]interface{}{"key": s.key})
		return []string{}, nil
	}

	ids := make([]string, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, id := range stored {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Store) write(ctx context.Context, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return apperror.NewInternalError("Falha ao serializar favoritos.", err)
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		return apperror.NewStorageError("Falha ao persistir favoritos.", err)
	}
	return nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
