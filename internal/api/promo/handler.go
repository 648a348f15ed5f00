package promo

import (
	"net/http"

	"gomarket/internal/api/response"
	"gomarket/internal/domain"
	"gomarket/internal/pkg/logger"
)

// PromoResolver define o contrato que o Handler espera da camada de Serviço.
type PromoResolver interface {
	ApplyPromoCode(code string) domain.PromoResult
}

// Handler expõe a validação de promocódigos.
type Handler struct {
	Resolver PromoResolver
	Logger   logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(resolver PromoResolver, log logger.Logger) *Handler {
	return &Handler{Resolver: resolver, Logger: log}
}

// ApplyPromoHandler lida com a requisição POST /v1/promo.
// @Summary Aplica um promocódigo
// @Description Código inválido não é erro: a resposta traz accepted=false e a mensagem.
// @Tags promo
// @Accept json
// @Produce json
// @Param promo body domain.PromoRequest true "Código"
// @Success 200 {object} domain.PromoResult "Resultado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Router /promo [post]
func (h *Handler) ApplyPromoHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.PromoRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.Handle(w, r, h.Logger, h.Resolver.ApplyPromoCode(req.Code), nil, http.StatusOK)
}
