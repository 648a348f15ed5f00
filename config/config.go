package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Backends de armazenamento do carrinho e dos favoritos.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config armazena todas as configurações do aplicativo GoMarket.
type Config struct {
	// Geral
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Catálogo (URL http(s), file:// ou caminho local)
	CatalogURL      string        `envconfig:"CATALOG_URL" default:"./data/catalog.json"`
	CatalogTimeout  time.Duration `envconfig:"CATALOG_TIMEOUT" default:"10s"`
	CatalogCacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`

	// Armazenamento de carrinho e favoritos
	StorageBackend string        `envconfig:"STORAGE_BACKEND" default:"memory"`
	StorageTTL     time.Duration `envconfig:"STORAGE_TTL" default:"720h"` // só Redis; 0 = sem expiração

	// Banco de Dados (PostgreSQL)
	DatabaseURL string        `envconfig:"DATABASE_URL"`
	DBTimeout   time.Duration `envconfig:"DB_TIMEOUT" default:"5s"`

	// Cache (Redis). Vazio desliga o cache do catálogo e o rate limit.
	RedisAddr    string        `envconfig:"REDIS_ADDR"`
	CacheTimeout time.Duration `envconfig:"CACHE_TIMEOUT" default:"10s"`

	// Segurança (JWT da sessão anônima)
	JWTSecretKey  string        `envconfig:"JWT_SECRET_KEY" required:"true"`
	SessionExpiry time.Duration `envconfig:"SESSION_EXPIRY" default:"720h"`

	// Rate Limiting
	RateLimitMaxRequests int           `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"100"`
	RateLimitPeriod      time.Duration `envconfig:"RATE_LIMIT_PERIOD" default:"1m"`

	// Eventos (Kafka). Sem brokers, os eventos são descartados.
	KafkaBrokers        []string `envconfig:"KAFKA_BROKERS"`
	KafkaTopicFavorites string   `envconfig:"KAFKA_TOPIC_FAVORITES" default:"gomarket.favorites"`
	KafkaTopicOrders    string   `envconfig:"KAFKA_TOPIC_ORDERS" default:"gomarket.orders"`

	// Promoção
	PromoCode     string  `envconfig:"PROMO_CODE" default:"MARKET"`
	PromoDiscount float64 `envconfig:"PROMO_DISCOUNT" default:"0.5"`
}

// Load lê as configurações das variáveis de ambiente e as valida.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate confere as combinações que dependem umas das outras.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("configuração inválida: JWT_SECRET_KEY deve ser definida")
	}

	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch c.StorageBackend {
	case StorageMemory:
	case StorageRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("configuração inválida: STORAGE_BACKEND=redis exige REDIS_ADDR")
		}
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("configuração inválida: STORAGE_BACKEND=postgres exige DATABASE_URL")
		}
	default:
		return fmt.Errorf("configuração inválida: STORAGE_BACKEND desconhecido %q", c.StorageBackend)
	}

	if c.CatalogURL == "" {
		return fmt.Errorf("configuração inválida: CATALOG_URL vazio")
	}
	if c.PromoDiscount <= 0 || c.PromoDiscount > 1 {
		return fmt.Errorf("configuração inválida: PROMO_DISCOUNT deve estar em (0, 1], recebido %v", c.PromoDiscount)
	}
	return nil
}

// LoadConfig carrega as configurações e encerra o processo se forem inválidas.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("❌ Erro de Configuração: %v", err)
	}
	return cfg
}
