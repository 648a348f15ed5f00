package product

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"gomarket/internal/api/response"
	"gomarket/internal/domain"
	"gomarket/internal/pkg/logger"
	"gomarket/internal/service/pricingservice"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	GetAllProducts(ctx context.Context) []domain.Product
	Search(ctx context.Context, query string) []domain.Product
	TopProducts(ctx context.Context, limit int) []domain.Product
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// Routes registra as rotas de produto.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.SearchProductsHandler)
	r.Get("/top", h.TopProductsHandler)
	r.Get("/{id}", h.GetProductByIDHandler)
	r.Get("/{id}/price", h.GetPriceHandler)
}

// SearchProductsHandler lida com a requisição GET /v1/products.
// @Summary Busca produtos pelo nome
// @Description Busca sem diferenciar maiúsculas. Sem o parâmetro q, lista todos os produtos.
// @Tags products
// @Produce json
// @Param q query string false "Trecho do nome"
// @Success 200 {array} domain.Product "Produtos encontrados"
// @Router /products [get]
func (h *Handler) SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")

	var products []domain.Product
	if strings.TrimSpace(q) == "" {
		products = h.Service.GetAllProducts(ctx)
	} else {
		products = h.Service.Search(ctx, q)
	}
	response.Handle(w, r, h.Logger, products, nil, http.StatusOK)
}

// TopProductsHandler lida com a requisição GET /v1/products/top.
// @Summary Lista os produtos mais bem avaliados
// @Tags products
// @Produce json
// @Param limit query int false "Quantidade (padrão 10)"
// @Success 200 {array} domain.Product "Produtos por avaliação"
// @Router /products/top [get]
func (h *Handler) TopProductsHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	response.Handle(w, r, h.Logger, h.Service.TopProducts(r.Context(), limit), nil, http.StatusOK)
}

// GetProductByIDHandler lida com a requisição GET /v1/products/{id}.
// @Summary Obtém um produto por ID
// @Description Retorna o produto com a descrição no idioma pedido e a seleção padrão de variantes.
// @Tags products
// @Produce json
// @Param id path string true "ID do Produto"
// @Param lang query string false "Idioma da descrição (padrão uz)"
// @Success 200 {object} domain.ProductView "Produto encontrado"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	view := domain.ProductView{
		Product:       p,
		Description:   p.Description.Text(r.URL.Query().Get("lang")),
		AverageRating: p.AverageRating(),
		Selection:     p.DefaultSelection(),
	}
	response.Handle(w, r, h.Logger, view, nil, http.StatusOK)
}

// GetPriceHandler lida com a requisição GET /v1/products/{id}/price.
// @Summary Calcula o preço de uma variante
// @Description Resolve o preço e o estoque para a seleção (memory > color > size).
// @Tags products
// @Produce json
// @Param id path string true "ID do Produto"
// @Param memory query string false "Memória"
// @Param color query string false "Cor"
// @Param size query string false "Tamanho"
// @Success 200 {object} domain.PriceQuote "Preço da variante"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /products/{id}/price [get]
func (h *Handler) GetPriceHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	q := r.URL.Query()
	sel := domain.NewSelection(q.Get("memory"), q.Get("color"), q.Get("size"))
	price := pricingservice.CalculatePrice(p, &sel)

	quote := domain.PriceQuote{
		ProductID:       p.ID,
		Selection:       sel,
		Price:           price,
		DiscountPercent: p.DiscountPercent(),
		FinalPrice:      math.Round(pricingservice.DiscountedPrice(price, p.DiscountPercent())*100) / 100,
		Available:       pricingservice.AvailableStock(p, sel),
	}
	if v, ok := pricingservice.OriginalPrice(price, quote.DiscountPercent); ok {
		quote.CompareAtPrice = v
	}
	response.Handle(w, r, h.Logger, quote, nil, http.StatusOK)
}
