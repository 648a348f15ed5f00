package favoriteservice

import (
	"context"
	"sync"

	"gomarket/internal/domain"
	"gomarket/internal/pkg/events"
	"gomarket/internal/pkg/logger"
)

// SessionListener recebe as alterações de favoritos de qualquer sessão.
type SessionListener func(sessionID string, ev domain.FavoritesUpdated)

// Service opera os favoritos de uma sessão e repassa as alterações aos listeners do serviço.
type Service struct {
	storage domain.Storage
	logger  logger.Logger

	mu        sync.RWMutex
	listeners []SessionListener
}

// NewService cria e retorna uma nova instância do Serviço de Favoritos.
func NewService(storage domain.Storage, log logger.Logger) *Service {
	return &Service{storage: storage, logger: log}
}

// AddListener registra um listener para todas as sessões.
func (s *Service) AddListener(l SessionListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// StorageKey retorna a chave dos favoritos de uma sessão.
func StorageKey(sessionID string) string {
	if sessionID == "" {
		return DefaultStorageKey
	}
	return DefaultStorageKey + ":" + sessionID
}

func (s *Service) open(sessionID string) *Store {
	store := NewStore(s.storage, StorageKey(sessionID), s.logger)

	s.mu.RLock()
	listeners := append([]SessionListener(nil), s.listeners...)
	s.mu.RUnlock()

	store.Subscribe(func(ev domain.FavoritesUpdated) {
		for _, l := range listeners {
			l(sessionID, ev)
		}
	})
	return store
}

// Toggle alterna o produto nos favoritos da sessão.
func (s *Service) Toggle(ctx context.Context, sessionID, productID string) (domain.FavoritesUpdated, error) {
	store := s.open(sessionID)
	favorite, err := store.Toggle(ctx, productID)
	if err != nil {
		return domain.FavoritesUpdated{}, err
	}
	return domain.FavoritesUpdated{
		Count:     store.Count(ctx),
		ProductID: productID,
		Favorite:  favorite,
	}, nil
}

// IsFavorite informa se o produto está nos favoritos da sessão.
func (s *Service) IsFavorite(ctx context.Context, sessionID, productID string) bool {
	return s.open(sessionID).IsFavorite(ctx, productID)
}

// List retorna os favoritos da sessão.
func (s *Service) List(ctx context.Context, sessionID string) domain.FavoritesState {
	ids := s.open(sessionID).List(ctx)
	return domain.FavoritesState{ProductIDs: ids, Count: len(ids)}
}

// PublishTo cria um listener que publica favorites.updated no tópico.
func PublishTo(publisher events.Publisher, topic string, log logger.Logger) SessionListener {
	return func(sessionID string, ev domain.FavoritesUpdated) {
		env, err := events.NewEnvelope(events.EventFavoritesUpdated, sessionID, ev)
		if err == nil {
			err = publisher.Publish(context.Background(), topic, env)
		}
		if err != nil {
			log.Error("Falha ao publicar evento de favoritos.", err)
		}
	}
}

// LogTo cria um listener que registra as alterações em debug.
func LogTo(log logger.Logger) SessionListener {
	return func(sessionID string, ev domain.FavoritesUpdated) {
		log.Debug("Favoritos atualizados.", map[string]interface{}{
			"session_id": sessionID,
			"product_id": ev.ProductID,
			"favorite":   ev.Favorite,
			"count":      ev.Count,
		})
	}
}
