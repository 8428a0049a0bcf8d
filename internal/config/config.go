package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Enabled  bool   `yaml:"PG_ENABLED" env:"PG_ENABLED" env-default:"false"`
	Host     string `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port     string `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User     string `yaml:"PG_USER" env:"PG_USER" env-default:"storefront"`
	Password string `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-default:""`
	Name     string `yaml:"PG_DBNAME" env:"PG_DBNAME" env-default:"storefront"`
	SSLMode  string `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"disable"`
}

type RedisConnect struct {
	Enabled  bool   `yaml:"REDIS_ENABLED" env:"REDIS_ENABLED" env-default:"false"`
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// UpstreamAPI points at the storefront backend serving product lookups,
// session checks and the analytics collector.
type UpstreamAPI struct {
	BaseURL string        `yaml:"base_url" env:"STORE_API_BASE" env-default:"http://localhost:5000"`
	Timeout time.Duration `yaml:"timeout" env:"STORE_API_TIMEOUT" env-default:"5s"`
}

type CatalogConfig struct {
	PageSize       int           `yaml:"page_size" env:"CATALOG_PAGE_SIZE" env-default:"12"`
	MaxPrice       float64       `yaml:"max_price" env:"CATALOG_MAX_PRICE" env-default:"100000"`
	SearchDebounce time.Duration `yaml:"search_debounce" env:"CATALOG_SEARCH_DEBOUNCE" env-default:"300ms"`
}

type CartConfig struct {
	// RemoveDelay is the presentation delay between marking an entry for
	// removal and committing the splice.
	RemoveDelay time.Duration `yaml:"remove_delay" env:"CART_REMOVE_DELAY" env-default:"300ms"`
	// ClearStagger is multiplied by the entry count to delay a cart clear.
	ClearStagger time.Duration `yaml:"clear_stagger" env:"CART_CLEAR_STAGGER" env-default:"100ms"`
	// DetailTTL is the freshness window of the product detail cache.
	DetailTTL time.Duration `yaml:"detail_ttl" env:"CART_DETAIL_TTL" env-default:"5m"`
}

type AnalyticsConfig struct {
	PendingLimit int  `yaml:"pending_limit" env:"ANALYTICS_PENDING_LIMIT" env-default:"100"`
	Enabled      bool `yaml:"enabled" env:"ANALYTICS_ENABLED" env-default:"true"`
}

type Security struct {
	JWTKey     string        `yaml:"JWT_KEY" env:"JWT_KEY" env-default:""`
	SessionTTL time.Duration `yaml:"SESSION_TTL" env:"SESSION_TTL" env-default:"60s"`
}

type Telemetry struct {
	Enabled      bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	Database     Database        `yaml:"database"`
	RedisConnect RedisConnect    `yaml:"redis"`
	UpstreamAPI  UpstreamAPI     `yaml:"upstream_api"`
	Catalog      CatalogConfig   `yaml:"catalog"`
	Cart         CartConfig      `yaml:"cart"`
	Analytics    AnalyticsConfig `yaml:"analytics"`
	Security     Security        `yaml:"security"`
	Telemetry    Telemetry       `yaml:"telemetry"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		if flag.Lookup("config") == nil {
			flag.String("config", "", "gets the config flag value")
		}

		if !flag.Parsed() {
			flag.Parse()
		}

		configPath = flag.Lookup("config").Value.String()

	}

	var cfg Config

	if configPath == "" {
		// No file given: defaults plus environment are enough to run.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("can not read config from environment: %s", err.Error())
		}

		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
