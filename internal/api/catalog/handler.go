package catalog

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gomarket/internal/api/response"
	"gomarket/internal/domain"
	"gomarket/internal/pkg/logger"
)

// CatalogService define o contrato que o Handler espera da camada de Serviço.
type CatalogService interface {
	GetCatalogs(ctx context.Context) []string
	GetCategoriesByCatalog(ctx context.Context, catalog string) []domain.CategorySummary
	GetProductsByCatalog(ctx context.Context, catalog, category string) []domain.Product
}

// Handler agrupa os métodos de Handler de catálogos.
type Handler struct {
	Service CatalogService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc CatalogService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// Routes registra as rotas de catálogo.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.ListCatalogsHandler)
	r.Get("/{catalog}/categories", h.ListCategoriesHandler)
	r.Get("/{catalog}/products", h.ListProductsHandler)
}

// ListCatalogsHandler lida com a requisição GET /v1/catalogs.
// @Summary Lista os catálogos
// @Tags catalogs
// @Produce json
// @Success 200 {array} string "Chaves dos catálogos"
// @Router /catalogs [get]
func (h *Handler) ListCatalogsHandler(w http.ResponseWriter, r *http.Request) {
	response.Handle(w, r, h.Logger, h.Service.GetCatalogs(r.Context()), nil, http.StatusOK)
}

// ListCategoriesHandler lida com a requisição GET /v1/catalogs/{catalog}/categories.
// @Summary Lista as categorias de um catálogo
// @Tags catalogs
// @Produce json
// @Param catalog path string true "Catálogo"
// @Success 200 {array} domain.CategorySummary "Categorias com a contagem de produtos"
// @Router /catalogs/{catalog}/categories [get]
func (h *Handler) ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	cats := h.Service.GetCategoriesByCatalog(r.Context(), chi.URLParam(r, "catalog"))
	response.Handle(w, r, h.Logger, cats, nil, http.StatusOK)
}

// ListProductsHandler lida com a requisição GET /v1/catalogs/{catalog}/products.
// @Summary Lista os produtos de um catálogo
// @Description Sem category, ou com category=all, retorna o catálogo inteiro. Ordenado por avaliação.
// @Tags catalogs
// @Produce json
// @Param catalog path string true "Catálogo"
// @Param category query string false "Categoria"
// @Success 200 {array} domain.Product "Produtos"
// @Router /catalogs/{catalog}/products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	products := h.Service.GetProductsByCatalog(r.Context(), chi.URLParam(r, "catalog"), r.URL.Query().Get("category"))
	response.Handle(w, r, h.Logger, products, nil, http.StatusOK)
}
