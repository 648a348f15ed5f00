package cart

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gomarket/internal/api/response"
	"gomarket/internal/domain"
	apperror "gomarket/internal/errors"
	"gomarket/internal/pkg/logger"
	"gomarket/internal/pkg/middleware"
)

// CartService define o contrato que o Handler espera da camada de Serviço.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) []domain.CartLine
	AddItem(ctx context.Context, sessionID string, req domain.AddItemRequest) ([]domain.CartLine, error)
	UpdateItem(ctx context.Context, sessionID string, req domain.UpdateItemRequest) ([]domain.CartLine, error)
	RemoveItem(ctx context.Context, sessionID, productID, variantKey string) ([]domain.CartLine, error)
	Clear(ctx context.Context, sessionID string) error
	Summary(ctx context.Context, sessionID, promoCode string) domain.CartSummary
	Checkout(ctx context.Context, sessionID, promoCode string) (domain.Order, error)
}

// Handler agrupa os métodos de Handler do carrinho. Todas as rotas exigem sessão.
type Handler struct {
	Service CartService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc CartService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// Routes registra as rotas do carrinho.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.GetCartHandler)
	r.Delete("/", h.ClearCartHandler)
	r.Post("/items", h.AddItemHandler)
	r.Patch("/items", h.UpdateItemHandler)
	r.Delete("/items", h.RemoveItemHandler)
	r.Get("/summary", h.SummaryHandler)
	r.Post("/checkout", h.CheckoutHandler)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Sessão não encontrada na requisição."))
	}
	return id, ok
}

// GetCartHandler lida com a requisição GET /v1/cart.
// @Summary Lista as linhas do carrinho
// @Tags cart
// @Produce json
// @Success 200 {array} domain.CartLine "Linhas do carrinho"
// @Failure 401 {object} domain.ErrorResponse "Sessão inválida"
// @Security ApiKeyAuth
// @Router /cart [get]
func (h *Handler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	response.Handle(w, r, h.Logger, h.Service.GetCart(r.Context(), sid), nil, http.StatusOK)
}

// AddItemHandler lida com a requisição POST /v1/cart/items.
// @Summary Inclui um produto no carrinho
// @Description A quantidade é limitada ao estoque da variante. Sem estoque, o carrinho não muda.
// @Tags cart
// @Accept json
// @Produce json
// @Param item body domain.AddItemRequest true "Produto, quantidade e variantes"
// @Success 200 {array} domain.CartLine "Carrinho atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Produto esgotado"
// @Security ApiKeyAuth
// @Router /cart/items [post]
func (h *Handler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req domain.AddItemRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	lines, err := h.Service.AddItem(r.Context(), sid, req)
	response.Handle(w, r, h.Logger, lines, err, http.StatusOK)
}

// UpdateItemHandler lida com a requisição PATCH /v1/cart/items.
// @Summary Altera a quantidade de uma linha
// @Tags cart
// @Accept json
// @Produce json
// @Param item body domain.UpdateItemRequest true "Linha e nova quantidade"
// @Success 200 {array} domain.CartLine "Carrinho atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Security ApiKeyAuth
// @Router /cart/items [patch]
func (h *Handler) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req domain.UpdateItemRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	lines, err := h.Service.UpdateItem(r.Context(), sid, req)
	response.Handle(w, r, h.Logger, lines, err, http.StatusOK)
}

// RemoveItemHandler lida com a requisição DELETE /v1/cart/items.
// @Summary Remove uma linha do carrinho
// @Tags cart
// @Produce json
// @Param productId query string false "ID do Produto"
// @Param variantKey query string false "Chave composta da linha"
// @Success 200 {array} domain.CartLine "Carrinho atualizado"
// @Security ApiKeyAuth
// @Router /cart/items [delete]
func (h *Handler) RemoveItemHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	lines, err := h.Service.RemoveItem(r.Context(), sid, q.Get("productId"), q.Get("variantKey"))
	response.Handle(w, r, h.Logger, lines, err, http.StatusOK)
}

// ClearCartHandler lida com a requisição DELETE /v1/cart.
// @Summary Esvazia o carrinho
// @Tags cart
// @Success 204 "Carrinho vazio"
// @Security ApiKeyAuth
// @Router /cart [delete]
func (h *Handler) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	response.Handle(w, r, h.Logger, nil, h.Service.Clear(r.Context(), sid), http.StatusNoContent)
}

// SummaryHandler lida com a requisição GET /v1/cart/summary.
// @Summary Calcula os totais do carrinho
// @Tags cart
// @Produce json
// @Param promo query string false "Promocódigo"
// @Success 200 {object} domain.CartSummary "Totais"
// @Security ApiKeyAuth
// @Router /cart/summary [get]
func (h *Handler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	summary := h.Service.Summary(r.Context(), sid, r.URL.Query().Get("promo"))
	response.Handle(w, r, h.Logger, summary, nil, http.StatusOK)
}

// CheckoutHandler lida com a requisição POST /v1/cart/checkout.
// @Summary Fecha o pedido
// @Description Registra o pedido, esvazia o carrinho e publica order.placed. Não há pagamento.
// @Tags cart
// @Accept json
// @Produce json
// @Param checkout body domain.CheckoutRequest false "Promocódigo"
// @Success 201 {object} domain.Order "Pedido registrado"
// @Failure 400 {object} domain.ErrorResponse "Carrinho vazio"
// @Security ApiKeyAuth
// @Router /cart/checkout [post]
func (h *Handler) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req domain.CheckoutRequest
	if r.ContentLength != 0 {
		if err := response.Decode(r, &req); err != nil {
			response.Error(w, r, h.Logger, err)
			return
		}
	}
	order, err := h.Service.Checkout(r.Context(), sid, req.PromoCode)
	response.Handle(w, r, h.Logger, order, err, http.StatusCreated)
}
