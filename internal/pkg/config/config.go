package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Rating RatingConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=carrier_rating"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,          default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,            default=0"`
	PoolSize int           `env:"REDIS_POOL_SIZE,     default=0"`
	CacheTTL time.Duration `env:"RATE_CARD_CACHE_TTL, default=5m"`
}

type RatingConfig struct {
	// TablesFile optionally points at a YAML file overriding the built-in
	// zone and accessorial tables.
	TablesFile      string  `env:"RATING_TABLES_FILE"`
	DefaultCurrency string  `env:"DEFAULT_CURRENCY,  default=CAD"`
	ShopConcurrency int     `env:"SHOP_CONCURRENCY,  default=8"`
	RateLimitRPS    float64 `env:"RATE_LIMIT_RPS,    default=20"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
