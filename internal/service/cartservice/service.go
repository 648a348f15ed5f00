package cartservice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gomarket/internal/domain"
	apperror "gomarket/internal/errors"
	"gomarket/internal/pkg/events"
	"gomarket/internal/pkg/logger"
	"gomarket/internal/service/pricingservice"
)

// CatalogService define o que o carrinho espera do catálogo.
type CatalogService interface {
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
}

// PromoResolver resolve promocódigos.
type PromoResolver interface {
	ApplyPromoCode(code string) domain.PromoResult
}

// Service opera o carrinho de uma sessão: abre o Store da sessão a cada chamada,
// resolve produtos e preços no catálogo e publica o evento de pedido no checkout.
type Service struct {
	storage     domain.Storage
	catalog     CatalogService
	promo       PromoResolver
	publisher   events.Publisher
	ordersTopic string
	logger      logger.Logger
	now         func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Carrinho.
func NewService(storage domain.Storage, catalog CatalogService, promo PromoResolver, publisher events.Publisher, ordersTopic string, log logger.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		storage:     storage,
		catalog:     catalog,
		promo:       promo,
		publisher:   publisher,
		ordersTopic: ordersTopic,
		logger:      log,
		now:         time.Now,
	}
}

// StorageKey retorna a chave do carrinho de uma sessão.
func StorageKey(sessionID string) string {
	if sessionID == "" {
		return DefaultStorageKey
	}
	return DefaultStorageKey + ":" + sessionID
}

func (s *Service) open(ctx context.Context, sessionID string) *Store {
	return Open(ctx, s.storage, StorageKey(sessionID), s.logger, WithProductLookup(s.catalog))
}

// GetCart retorna as linhas do carrinho da sessão.
func (s *Service) GetCart(ctx context.Context, sessionID string) []domain.CartLine {
	return s.open(ctx, sessionID).Lines()
}

// AddItem inclui um produto do catálogo no carrinho com o preço da variante escolhida.
func (s *Service) AddItem(ctx context.Context, sessionID string, req domain.AddItemRequest) ([]domain.CartLine, error) {
	if strings.TrimSpace(req.ProductID) == "" {
		return nil, apperror.NewValidationError("O ID do produto é obrigatório.")
	}
	if req.Quantity < 1 {
		return nil, apperror.NewValidationError("A quantidade deve ser maior que zero.")
	}

	product, err := s.catalog.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	for _, attr := range domain.Attributes {
		if v, ok := req.Variants.Get(attr); ok && !product.HasOption(attr, v) {
			return nil, apperror.NewValidationError(fmt.Sprintf("Variante %s=%q não existe para o produto %s.", attr, v, product.ID))
		}
	}

	if pricingservice.AvailableStock(product, req.Variants) == 0 {
		return nil, apperror.NewConflictError(fmt.Sprintf("Produto %s esgotado para a variante escolhida.", product.ID))
	}

	price := pricingservice.CalculatePrice(product, &req.Variants)

	store := s.open(ctx, sessionID)
	if err := store.AddToCart(ctx, product, req.Quantity, req.Variants, &price); err != nil {
		return nil, err
	}

	s.logger.Debug("Item incluído no carrinho.", map[string]interface{}{
		"session_id": sessionID,
		"product_id": product.ID,
		"cart_key":   domain.CartKey(product.ID, req.Variants),
		"quantity":   req.Quantity,
	})
	return store.Lines(), nil
}

// UpdateItem altera a quantidade de uma linha.
func (s *Service) UpdateItem(ctx context.Context, sessionID string, req domain.UpdateItemRequest) ([]domain.CartLine, error) {
	if req.ProductID == "" && req.VariantKey == "" {
		return nil, apperror.NewValidationError("Informe o ID do produto ou a chave da variante.")
	}
	store := s.open(ctx, sessionID)
	if err := store.UpdateQuantity(ctx, req.ProductID, req.Quantity, req.VariantKey); err != nil {
		return nil, err
	}
	return store.Lines(), nil
}

// RemoveItem remove uma linha.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID, variantKey string) ([]domain.CartLine, error) {
	if productID == "" && variantKey == "" {
		return nil, apperror.NewValidationError("Informe o ID do produto ou a chave da variante.")
	}
	store := s.open(ctx, sessionID)
	if err := store.RemoveFromCart(ctx, productID, variantKey); err != nil {
		return nil, err
	}
	return store.Lines(), nil
}

// Clear esvazia o carrinho da sessão.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.open(ctx, sessionID).ClearCart(ctx)
}

// Summary calcula os totais do carrinho com o promocódigo (opcional).
func (s *Service) Summary(ctx context.Context, sessionID, promoCode string) domain.CartSummary {
	return pricingservice.Summarize(s.open(ctx, sessionID).Lines(), s.resolvePromo(promoCode))
}

// Checkout fecha o pedido (stub): confere o estoque, gera o pedido, esvazia o carrinho
// e publica order.placed.
func (s *Service) Checkout(ctx context.Context, sessionID, promoCode string) (domain.Order, error) {
	store := s.open(ctx, sessionID)
	if err := store.Reconcile(ctx); err != nil {
		return domain.Order{}, err
	}

	lines := store.Lines()
	if len(lines) == 0 {
		return domain.Order{}, apperror.NewValidationError("O carrinho está vazio.")
	}

	order := domain.Order{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Lines:     lines,
		Summary:   pricingservice.Summarize(lines, s.resolvePromo(promoCode)),
		PlacedAt:  s.now().UTC(),
	}

	if err := store.ClearCart(ctx); err != nil {
		return domain.Order{}, err
	}

	env, err := events.NewEnvelope(events.EventOrderPlaced, sessionID, order)
	if err == nil {
		err = s.publisher.Publish(ctx, s.ordersTopic, env)
	}
	if err != nil {
		// O pedido já foi registrado; a falha de publicação não desfaz o checkout.
		s.logger.Error("Falha ao publicar evento de pedido.", err)
	}

	s.logger.Info("Pedido registrado.", map[string]interface{}{
		"order_id":   order.ID,
		"session_id": sessionID,
		"items":      order.Summary.ItemCount,
		"total":      order.Summary.Total,
	})
	return order, nil
}

func (s *Service) resolvePromo(code string) domain.PromoResult {
	if strings.TrimSpace(code) == "" || s.promo == nil {
		return domain.PromoResult{}
	}
	return s.promo.ApplyPromoCode(code)
}
