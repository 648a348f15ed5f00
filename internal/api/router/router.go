package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gomarket/docs" // Registra a especificação Swagger

	"gomarket/internal/api/cart"
	"gomarket/internal/api/catalog"
	"gomarket/internal/api/favorites"
	"gomarket/internal/api/product"
	"gomarket/internal/api/promo"
	"gomarket/internal/api/session"
	"gomarket/internal/pkg/cache"
	"gomarket/internal/pkg/logger"
	"gomarket/internal/pkg/middleware"
)

// Handlers reúne os Handlers já inicializados por injeção de dependências.
type Handlers struct {
	Catalog   *catalog.Handler
	Product   *product.Handler
	Session   *session.Handler
	Cart      *cart.Handler
	Favorites *favorites.Handler
	Promo     *promo.Handler
}

// RateLimit configura o limitador por IP. Sem Cache, as rotas não são limitadas.
type RateLimit struct {
	Cache       cache.Client
	MaxRequests int
	Period      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(h Handlers, tokenSvc middleware.TokenService, rl RateLimit, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(chimw.Timeout(15 * time.Second))

	r.Get("/ping", PingHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	auth := middleware.NewAuthMiddleware(tokenSvc)

	r.Route("/v1", func(v1 chi.Router) {
		if rl.Cache != nil && rl.MaxRequests > 0 {
			v1.Use(middleware.RateLimiter(rl.Cache, rl.MaxRequests, rl.Period, log))
		}

		v1.Route("/sessions", h.Session.Routes)
		v1.Route("/catalogs", h.Catalog.Routes)
		v1.Route("/products", h.Product.Routes)
		v1.Post("/promo", h.Promo.ApplyPromoHandler)

		v1.Group(func(private chi.Router) {
			private.Use(auth)
			private.Route("/cart", h.Cart.Routes)
			private.Route("/favorites", h.Favorites.Routes)
		})
	})

	return r
}

// PingHandler é o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
