package catalogrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gomarket/internal/domain"
	"gomarket/internal/pkg/cache"
	"gomarket/internal/pkg/logger"
)

// catalogCacheKey é a chave do documento inteiro no Redis.
const catalogCacheKey = "catalog:document"

// maxDocumentSize limita o corpo lido da fonte do catálogo.
const maxDocumentSize = 32 << 20

// Repository lê o documento do catálogo (somente leitura) a partir de uma URL HTTP
// ou de um arquivo local, com cache-aside no Redis quando configurado.
type Repository struct {
	Source   string       // http(s)://..., file://... ou caminho local
	Client   *http.Client // usado apenas para fontes HTTP
	Cache    cache.Client // opcional
	CacheTTL time.Duration
	Timeout  time.Duration
	Logger   logger.Logger
}

// NewRepository cria o repositório do catálogo.
func NewRepository(source string, httpClient *http.Client, cacheClient cache.Client, timeout, cacheTTL time.Duration, log logger.Logger) *Repository {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Repository{
		Source:   source,
		Client:   httpClient,
		Cache:    cacheClient,
		CacheTTL: cacheTTL,
		Timeout:  timeout,
		Logger:   log,
	}
}

// Load retorna o documento do catálogo. Sem retries: uma falha encerra a requisição.
func (r *Repository) Load(ctx context.Context) (domain.CatalogDocument, error) {
	var doc domain.CatalogDocument

	// --- Cache-Aside (READ) ---
	if r.Cache != nil {
		cached, err := r.Cache.Get(ctx, catalogCacheKey)
		if err == nil {
			if json.Unmarshal([]byte(cached), &doc) == nil {
				return doc, nil
			}
			r.Logger.Warn("Documento de catálogo corrompido no cache; buscando na origem.", nil)
		} else if err != cache.ErrCacheMiss {
			r.Logger.Warn("Falha ao ler catálogo do cache.", map[string]interface{}{"error": err.Error()})
		}
	}

	raw, err := r.fetch(ctx)
	if err != nil {
		return domain.CatalogDocument{}, err
	}

	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.CatalogDocument{}, fmt.Errorf("documento de catálogo inválido: %w", err)
	}

	// --- Cache-Aside (WRITE) ---
	if r.Cache != nil {
		if err := r.Cache.Set(ctx, catalogCacheKey, raw, r.CacheTTL); err != nil {
			r.Logger.Warn("Falha ao gravar catálogo no cache.", map[string]interface{}{"error": err.Error()})
		}
	}

	return doc, nil
}

func (r *Repository) fetch(ctx context.Context) ([]byte, error) {
	switch {
	case strings.HasPrefix(r.Source, "http://"), strings.HasPrefix(r.Source, "https://"):
		return r.fetchHTTP(ctx)
	case strings.HasPrefix(r.Source, "file://"):
		return readFile(strings.TrimPrefix(r.Source, "file://"))
	default:
		return readFile(r.Source)
	}
}

func (r *Repository) fetchHTTP(ctx context.Context) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.Source, nil)
	if err != nil {
		return nil, fmt.Errorf("montar requisição do catálogo: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("buscar catálogo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("buscar catálogo: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("ler catálogo: %w", err)
	}
	return body, nil
}

func readFile(path string) ([]byte, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ler catálogo de %s: %w", path, err)
	}
	return body, nil
}
