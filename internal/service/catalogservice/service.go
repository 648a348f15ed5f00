package catalogservice

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gomarket/internal/domain"
	apperror "gomarket/internal/errors"
	"gomarket/internal/pkg/logger"
)

// DefaultTopLimit é a quantidade de produtos da vitrine "mais bem avaliados".
const DefaultTopLimit = 10

// allCategories é o filtro que devolve todas as categorias de um catálogo.
const allCategories = "all"

// CatalogRepository define o que o Serviço espera da camada de leitura do catálogo.
type CatalogRepository interface {
	Load(ctx context.Context) (domain.CatalogDocument, error)
}

// Service expõe as consultas de leitura do catálogo.
// Falhas de leitura são registradas e tratadas como catálogo vazio.
type Service struct {
	repo   CatalogRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Catálogo.
func NewService(repo CatalogRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

func (s *Service) load(ctx context.Context) (domain.CatalogDocument, bool) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("Falha ao carregar o catálogo.", err)
		return domain.CatalogDocument{}, false
	}
	return doc, true
}

// GetProductByID busca o primeiro produto com o ID em todos os catálogos e categorias.
func (s *Service) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, apperror.NewValidationError("O ID do produto é obrigatório.")
	}

	doc, ok := s.load(ctx)
	if ok {
		for _, p := range doc.Products() {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não foi encontrado.", id))
}

// GetAllProducts retorna todos os produtos na ordem do documento.
func (s *Service) GetAllProducts(ctx context.Context) []domain.Product {
	doc, ok := s.load(ctx)
	if !ok {
		return []domain.Product{}
	}
	return nonNil(doc.Products())
}

// GetCatalogs retorna as chaves dos catálogos na ordem do documento.
func (s *Service) GetCatalogs(ctx context.Context) []string {
	doc, ok := s.load(ctx)
	if !ok || len(doc.Keys) == 0 {
		return []string{}
	}
	return append([]string(nil), doc.Keys...)
}

// GetCategoriesByCatalog lista as categorias de um catálogo com a contagem de produtos.
func (s *Service) GetCategoriesByCatalog(ctx context.Context, catalog string) []domain.CategorySummary {
	doc, ok := s.load(ctx)
	if !ok {
		return []domain.CategorySummary{}
	}
	cats := doc.Catalogs[catalog]
	out := make([]domain.CategorySummary, 0, len(cats))
	for _, c := range cats {
		out = append(out, domain.CategorySummary{Category: c.Category, ProductCount: len(c.Products)})
	}
	return out
}

// GetProductsByCatalog retorna os produtos de um catálogo, opcionalmente filtrados por categoria
// ("" ou "all" = todas), ordenados por avaliação decrescente.
func (s *Service) GetProductsByCatalog(ctx context.Context, catalog, category string) []domain.Product {
	doc, ok := s.load(ctx)
	if !ok {
		return []domain.Product{}
	}

	var out []domain.Product
	for _, c := range doc.Catalogs[catalog] {
		if category != "" && category != allCategories && !strings.EqualFold(c.Category, category) {
			continue
		}
		out = append(out, c.Products...)
	}
	sortByRating(out)
	return nonNil(out)
}

// Search busca produtos cujo nome contém a consulta, sem diferenciar maiúsculas.
func (s *Service) Search(ctx context.Context, query string) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []domain.Product{}
	}

	var out []domain.Product
	for _, p := range s.GetAllProducts(ctx) {
		if strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	return nonNil(out)
}

// TopProducts retorna os produtos mais bem avaliados.
func (s *Service) TopProducts(ctx context.Context, limit int) []domain.Product {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	products := s.GetAllProducts(ctx)
	sortByRating(products)
	if len(products) > limit {
		products = products[:limit]
	}
	return products
}

func sortByRating(products []domain.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Rating > products[j].Rating
	})
}

func nonNil(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	return products
}
