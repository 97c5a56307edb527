package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"log"
	"strings"
	"time"
)

type Config struct {
	HTTPServer HTTPServer
	Provider   Provider
	Cache      Cache
	Redis      Redis
	Catalog    Catalog
	Log        Log
}

type HTTPServer struct {
	Port            string        `env:"HTTP_PORT" env-default:"8082"`
	Timeout         time.Duration `env:"HTTP_TIMEOUT" env-default:"2m"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type Provider struct {
	URL     string        `env:"PROVIDER_URL" env-default:"https://api.frankfurter.app"`
	Timeout time.Duration `env:"PROVIDER_TIMEOUT" env-default:"10s"`
}

type Cache struct {
	TTL             time.Duration `env:"CACHE_TTL" env-default:"1h"`
	JanitorInterval time.Duration `env:"CACHE_JANITOR_INTERVAL" env-default:"10m"`
}

// Redis is optional: an empty Addr keeps the cache process-local.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
	Prefix   string `env:"REDIS_PREFIX" env-default:"rates"`
}

// Catalog is the selection offered to the dashboard.
type Catalog struct {
	Currencies       string `env:"CATALOG_CURRENCIES" env-default:"USD,EUR,KRW,JPY,GBP,CAD,CNY,HKD"`
	DefaultBase      string `env:"CATALOG_DEFAULT_BASE" env-default:"USD"`
	DefaultTargets   string `env:"CATALOG_DEFAULT_TARGETS" env-default:"KRW"`
	DefaultStartYear int    `env:"CATALOG_DEFAULT_START_YEAR" env-default:"2015"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" env-default:"debug"`
}

func NewConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal("Error reading env: ", err)
	}

	return cfg
}

func Load() (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load(".env")

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Split breaks a comma separated env value into trimmed, non-empty items.
func Split(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
