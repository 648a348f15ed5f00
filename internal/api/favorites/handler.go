package favorites

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

// FavoritesService define o contrato que o Handler espera da camada de Serviço.
type FavoritesService interface {
	Toggle(ctx context.Context, sessionID, productID string) (domain.FavoritesUpdated, error)
	IsFavorite(ctx context.Context, sessionID, productID string) bool
	List(ctx context.Context, sessionID string) domain.FavoritesState
}

// Handler agrupa os métodos de Handler de favoritos.
type Handler struct {
	Service FavoritesService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc FavoritesService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// Routes registra as rotas de favoritos.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.ListHandler)
	r.Get("/{id}", h.IsFavoriteHandler)
	r.Post("/{id}/toggle", h.ToggleHandler)
}

// ListHandler lida com a requisição GET /v1/favorites.
// @Summary Lista os favoritos
// @Tags favorites
// @Produce json
// @Success 200 {object} domain.FavoritesState "IDs e contagem"
// @Security ApiKeyAuth
// @Router /favorites [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Sessão não encontrada na requisição."))
		return
	}
	response.Handle(w, r, h.Logger, h.Service.List(r.Context(), sid), nil, http.StatusOK)
}

// IsFavoriteHandler lida com a requisição GET /v1/favorites/{id}.
// @Summary Informa se o produto é favorito
// @Tags favorites
// @Produce json
// @Param id path string true "ID do Produto"
// @Success 200 {object} domain.FavoritesUpdated "Situação do produto"
// @Security ApiKeyAuth
// @Router /favorites/{id} [get]
func (h *Handler) IsFavoriteHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Sessão não encontrada na requisição."))
		return
	}
	id := chi.URLParam(r, "id")
	state := h.Service.List(r.Context(), sid)
	response.Handle(w, r, h.Logger, domain.FavoritesUpdated{
		Count:     state.Count,
		ProductID: id,
		Favorite:  h.Service.IsFavorite(r.Context(), sid, id),
	}, nil, http.StatusOK)
}

// ToggleHandler lida com a requisição POST /v1/favorites/{id}/toggle.
// @Summary Alterna o produto nos favoritos
// @Tags favorites
// @Produce json
// @Param id path string true "ID do Produto"
// @Success 200 {object} domain.FavoritesUpdated "Nova situação e contagem"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Security ApiKeyAuth
// @Router /favorites/{id}/toggle [post]
func (h *Handler) ToggleHandler(w http.ResponseWriter, r *http.Request) {
	sid, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Sessão não encontrada na requisição."))
		return
	}
	ev, err := h.Service.Toggle(r.Context(), sid, chi.URLParam(r, "id"))
	response.Handle(w, r, h.Logger, ev, err, http.StatusOK)
}
