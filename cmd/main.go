package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gomarket/config"
	"gomarket/internal/domain"
	"gomarket/internal/pkg/cache"
	"gomarket/internal/pkg/database"
	"gomarket/internal/pkg/events"
	"gomarket/internal/pkg/logger"
	"gomarket/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"gomarket/internal/api/cart"
	"gomarket/internal/api/catalog"
	"gomarket/internal/api/favorites"
	"gomarket/internal/api/product"
	"gomarket/internal/api/promo"
	"gomarket/internal/api/router"
	"gomarket/internal/api/session"
	"gomarket/internal/repository/catalogrepo"
	"gomarket/internal/repository/storagerepo"
	"gomarket/internal/service/cartservice"
	"gomarket/internal/service/catalogservice"
	"gomarket/internal/service/favoriteservice"
	"gomarket/internal/service/promoservice"
	"gomarket/internal/service/sessionservice"
)

// @title GoMarket API
// @version 1.0
// @description Catálogo, carrinho, favoritos e promocódigos da loja GoMarket.
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	log.Println("⚡ Inicializando serviço GoMarket...")
	if err := godotenv.Load(); err != nil {
		// As variáveis podem vir do ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	logg := logger.NewLogger(cfg.LogLevel)
	logg.Info("Configurações carregadas.", map[string]interface{}{
		"env":     cfg.Environment,
		"storage": cfg.StorageBackend,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Cache (Redis), opcional
	var cacheClient cache.Client
	if cfg.RedisAddr != "" {
		c, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
		if err != nil {
			if cfg.StorageBackend == config.StorageRedis {
				logg.Fatal("Falha ao conectar ao Redis.", err)
			}
			logg.Warn("Redis indisponível; seguindo sem cache e sem rate limit.", map[string]interface{}{"error": err.Error()})
		} else {
			cacheClient = c
			defer c.Close()
			logg.Info("Conexão Redis estabelecida.", nil)
		}
	}

	// 2. Armazenamento de carrinho e favoritos
	storage, db := openStorage(cfg, cacheClient, logg)
	if db != nil {
		defer db.Close()
	}

	// 3. Eventos (Kafka), opcional
	var publisher events.Publisher = events.NopPublisher{}
	var kafkaPub *events.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub = events.NewKafkaPublisher(cfg.KafkaBrokers, 1024, logg)
		kafkaPub.Start(ctx)
		publisher = kafkaPub
		logg.Info("Publisher Kafka iniciado.", map[string]interface{}{"brokers": cfg.KafkaBrokers})
	}

	// 4. INJEÇÃO DE DEPENDÊNCIAS: Repository -> Service -> Handler
	catalogRepo := catalogrepo.NewRepository(cfg.CatalogURL, &http.Client{Timeout: cfg.CatalogTimeout}, cacheClient, cfg.CatalogTimeout, cfg.CatalogCacheTTL, logg)
	catalogSvc := catalogservice.NewService(catalogRepo, logg)
	promoSvc := promoservice.NewResolver(cfg.PromoCode, cfg.PromoDiscount)
	cartSvc := cartservice.NewService(storage, catalogSvc, promoSvc, publisher, cfg.KafkaTopicOrders, logg)

	favoriteSvc := favoriteservice.NewService(storage, logg)
	favoriteSvc.AddListener(favoriteservice.LogTo(logg))
	favoriteSvc.AddListener(favoriteservice.PublishTo(publisher, cfg.KafkaTopicFavorites, logg))

	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.SessionExpiry)
	sessionSvc := sessionservice.NewService(tokenSvc, logg)
	logg.Debug("Serviços inicializados.", nil)

	handlers := router.Handlers{
		Catalog:   catalog.NewHandler(catalogSvc, logg),
		Product:   product.NewHandler(catalogSvc, logg),
		Session:   session.NewHandler(sessionSvc, logg),
		Cart:      cart.NewHandler(cartSvc, logg),
		Favorites: favorites.NewHandler(favoriteSvc, logg),
		Promo:     promo.NewHandler(promoSvc, logg),
	}
	r := router.NewRouter(handlers, tokenSvc, router.RateLimit{
		Cache:       cacheClient,
		MaxRequests: cfg.RateLimitMaxRequests,
		Period:      cfg.RateLimitPeriod,
	}, logg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		logg.Info("Servidor GoMarket ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("Servidor falhou.", err)
		}
	}()

	<-ctx.Done()
	logg.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("Desligamento do servidor forçado.", err)
	}
	if kafkaPub != nil {
		kafkaPub.WaitClosed()
	}

	logg.Info("Servidor encerrado com sucesso.", nil)
}

// openStorage escolhe o backend do carrinho e dos favoritos.
func openStorage(cfg *config.Config, cacheClient cache.Client, logg logger.Logger) (domain.Storage, *sql.DB) {
	switch cfg.StorageBackend {
	case config.StorageRedis:
		logg.Info("Armazenamento: Redis.", nil)
		return storagerepo.NewRedisStorage(cacheClient, cfg.StorageTTL), nil
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(cfg.DatabaseURL, cfg.DBTimeout)
		if err != nil {
			logg.Fatal("Falha ao conectar ao banco de dados.", err)
		}
		logg.Info("Armazenamento: PostgreSQL.", nil)
		return storagerepo.NewPostgresStorage(db, cfg.DBTimeout), db
	default:
		logg.Warn("Armazenamento em memória: carrinhos e favoritos se perdem ao reiniciar.", nil)
		return storagerepo.NewMemoryStorage(), nil
	}
}
