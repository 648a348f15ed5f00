package cartservice

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"gomarket/internal/domain"
	apperror "gomarket/internal/errors"
	"gomarket/internal/pkg/logger"
	"gomarket/internal/service/pricingservice"
)

// DefaultStorageKey é a chave usada quando o carrinho não pertence a uma sessão.
const DefaultStorageKey = "cart"

// ProductLookup fornece o produto atual do catálogo, para checar o estoque vigente.
type ProductLookup interface {
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
}

// Option configura um Store.
type Option func(*Store)

// WithProductLookup faz UpdateQuantity e Reconcile usarem o estoque atual do catálogo
// em vez do estoque da cópia guardada na linha.
func WithProductLookup(lookup ProductLookup) Option {
	return func(s *Store) { s.lookup = lookup }
}

// Store é o carrinho: no máximo uma linha por chave composta, 1 <= quantidade <= estoque.
// Cada mutação grava a lista completa de linhas no Storage antes de retornar.
type Store struct {
	mu      sync.Mutex
	storage domain.Storage
	key     string
	logger  logger.Logger
	lookup  ProductLookup

	lines   []domain.CartLine // ordem de inclusão
	loadErr error             // falha de leitura na hidratação; bloqueia as gravações
}

// Open cria o Store e o hidrata a partir do Storage.
// Dados ausentes ou corrompidos resultam em carrinho vazio. Se o Storage falhar na leitura,
// o carrinho fica vazio e as mutações retornam o erro sem gravar (ver Err).
func Open(ctx context.Context, storage domain.Storage, key string, log logger.Logger, opts ...Option) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	s := &Store{storage: storage, key: key, logger: log}
	for _, opt := range opts {
		opt(s)
	}
	s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) {
	raw, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("Falha ao ler o carrinho; gravações bloqueadas.", map[string]interface{}{"key": s.key, "error": err.Error()})
		s.loadErr = apperror.NewStorageError("Falha ao ler o carrinho.", err)
		return
	}

	var stored []domain.CartLine
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("Carrinho corrompido no armazenamento; iniciando vazio.", map[string]interface{}{"key": s.key, "error": err.Error()})
		return
	}

	for _, l := range stored {
		if l.Product.ID == "" || l.Quantity < 1 {
			continue
		}
		available := pricingservice.AvailableStock(l.Product, l.SelectedVariants)
		if available == 0 {
			continue
		}
		if i := s.indexOf(l.Key()); i >= 0 {
			s.lines[i].Quantity = min(s.lines[i].Quantity+l.Quantity, available)
			continue
		}
		l.Quantity = min(l.Quantity, available)
		s.lines = append(s.lines, l)
	}
}

// Err retorna a falha de leitura da hidratação, ou nil.
func (s *Store) Err() error {
	return s.loadErr
}

// AddToCart inclui o produto ou soma à linha existente, limitado ao estoque da variante.
// Sem estoque, ou com quantidade <= 0, nada muda. O preço da linha é capturado na inclusão:
// priceOverride quando informado, senão o preço base.
func (s *Store) AddToCart(ctx context.Context, product domain.Product, quantity int, sel domain.Selection, priceOverride *float64) error {
	if quantity <= 0 {
		return nil
	}
	available := pricingservice.AvailableStock(product, sel)
	if available == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}

	key := domain.CartKey(product.ID, sel)
	if i := s.indexOf(key); i >= 0 {
		q := min(s.lines[i].Quantity+quantity, available)
		if q == s.lines[i].Quantity {
			return nil
		}
		s.lines[i].Quantity = q
		return s.persist(ctx)
	}

	price := product.Price
	if priceOverride != nil {
		price = *priceOverride
	}
	s.lines = append(s.lines, domain.CartLine{
		Product:          product,
		Quantity:         min(quantity, available),
		SelectedVariants: sel,
		Price:            price,
	})
	return s.persist(ctx)
}

// UpdateQuantity define a quantidade da linha (variantKey, ou o ID do produto quando vazio),
// limitada a [1, estoque]. Com estoque zerado a linha é removida.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, newQuantity int, variantKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}

	i := s.indexOf(targetKey(productID, variantKey))
	if i < 0 {
		return nil
	}

	available := s.availableFor(ctx, s.lines[i])
	if available == 0 {
		s.removeAt(i)
		return s.persist(ctx)
	}

	q := max(1, min(newQuantity, available))
	if q == s.lines[i].Quantity {
		return nil
	}
	s.lines[i].Quantity = q
	return s.persist(ctx)
}

// RemoveFromCart remove a linha; é idempotente.
func (s *Store) RemoveFromCart(ctx context.Context, productID, variantKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}

	i := s.indexOf(targetKey(productID, variantKey))
	if i < 0 {
		return nil
	}
	s.removeAt(i)
	return s.persist(ctx)
}

// ClearCart esvazia o carrinho (após o pedido). Não depende do estado lido, então grava
// mesmo após falha de leitura.
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.loadErr = nil
	return nil
}

// Reconcile confere todas as linhas com o estoque atual: reduz o que excede
// e remove o que esgotou.
func (s *Store) Reconcile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}

	changed := false
	kept := s.lines[:0]
	for _, l := range s.lines {
		available := s.availableFor(ctx, l)
		switch {
		case available == 0:
			changed = true
			continue
		case l.Quantity > available:
			l.Quantity = available
			changed = true
		}
		kept = append(kept, l)
	}
	s.lines = kept

	if !changed {
		return nil
	}
	return s.persist(ctx)
}

// Lines retorna uma cópia das linhas na ordem de inclusão.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Line busca uma linha pela chave composta.
func (s *Store) Line(key string) (domain.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(key); i >= 0 {
		return s.lines[i], true
	}
	return domain.CartLine{}, false
}

// Len retorna o número de linhas.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func targetKey(productID, variantKey string) string {
	if variantKey != "" {
		return variantKey
	}
	return productID
}

func (s *Store) indexOf(key string) int {
	for i, l := range s.lines {
		if l.Key() == key {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// availableFor usa o produto atual do catálogo quando possível, senão a cópia da linha.
func (s *Store) availableFor(ctx context.Context, l domain.CartLine) int {
	product := l.Product
	if s.lookup != nil {
		current, err := s.lookup.GetProductByID(ctx, l.Product.ID)
		if err == nil {
			product = current
		} else {
			s.logger.Debug("Produto fora do catálogo; usando estoque da cópia da linha.", map[string]interface{}{"product_id": l.Product.ID})
		}
	}
	return pricingservice.AvailableStock(product, l.SelectedVariants)
}

func (s *Store) persist(ctx context.Context) error {
	lines := s.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return apperror.NewInternalError("Falha ao serializar o carrinho.", err)
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		return apperror.NewStorageError("Falha ao persistir o carrinho.", err)
	}
	return nil
}
