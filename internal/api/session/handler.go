package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"gomarket/internal/api/response"
	"gomarket/internal/domain"
	"gomarket/internal/pkg/logger"
)

// SessionService define o contrato que o Handler espera da camada de Serviço.
type SessionService interface {
	CreateSession(ctx context.Context) (domain.Session, error)
	RefreshSession(ctx context.Context, tokenString string) (domain.Session, error)
}

// Handler agrupa os métodos de Handler de sessão.
type Handler struct {
	Service SessionService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc SessionService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// Routes registra as rotas de sessão.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.CreateSessionHandler)
	r.Post("/refresh", h.RefreshSessionHandler)
}

// CreateSessionHandler lida com a requisição POST /v1/sessions.
// @Summary Cria uma sessão anônima
// @Description Retorna o token que identifica o carrinho e os favoritos do visitante.
// @Tags sessions
// @Produce json
// @Success 201 {object} domain.Session "Sessão criada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /sessions [post]
func (h *Handler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.CreateSession(r.Context())
	response.Handle(w, r, h.Logger, s, err, http.StatusCreated)
}

// RefreshSessionHandler lida com a requisição POST /v1/sessions/refresh.
// @Summary Renova o token da sessão
// @Tags sessions
// @Produce json
// @Success 200 {object} domain.Session "Sessão renovada"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Security ApiKeyAuth
// @Router /sessions/refresh [post]
func (h *Handler) RefreshSessionHandler(w http.ResponseWriter, r *http.Request) {
	tok, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	s, err := h.Service.RefreshSession(r.Context(), tok)
	response.Handle(w, r, h.Logger, s, err, http.StatusOK)
}
