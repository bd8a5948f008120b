package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	CatalogSourceFile     = "file"
	CatalogSourceMinIO    = "minio"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Environment   string `mapstructure:"ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN         string `mapstructure:"DB_DSN"`

	HTTPAddr       string `mapstructure:"HTTP_ADDR"`
	MetricsEnabled bool   `mapstructure:"METRICS_ENABLED"`

	CatalogSource     string        `mapstructure:"CATALOG_SOURCE"`
	CatalogPath       string        `mapstructure:"CATALOG_PATH"`
	CatalogReloadCron string        `mapstructure:"CATALOG_RELOAD_CRON"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL"`
	Center            string        `mapstructure:"CENTER"`

	MinIOEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket    string `mapstructure:"MINIO_BUCKET"`
	MinIOObject    string `mapstructure:"MINIO_OBJECT"`
	MinIOUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
}

var defaults = map[string]interface{}{
	"ENV":                 "development",
	"LOG_LEVEL":           "",
	"TELEGRAM_TOKEN":      "",
	"DB_DSN":              "",
	"HTTP_ADDR":           ":8080",
	"METRICS_ENABLED":     true,
	"CATALOG_SOURCE":      CatalogSourceFile,
	"CATALOG_PATH":        "catalog/batches.json",
	"CATALOG_RELOAD_CRON": "*/15 * * * *",
	"SESSION_TTL":         "2h",
	"CENTER":              "HRBR",
	"MINIO_ENDPOINT":      "",
	"MINIO_ACCESS_KEY":    "",
	"MINIO_SECRET_KEY":    "",
	"MINIO_BUCKET":        "",
	"MINIO_OBJECT":        "",
	"MINIO_USE_SSL":       false,
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return fromEnv()
}

// fromEnv читает переменные окружения через viper и проверяет результат
func fromEnv() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CatalogSource = strings.ToLower(strings.TrimSpace(cfg.CatalogSource))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.CatalogSource {
	case CatalogSourceFile:
		if c.CatalogPath == "" {
			return fmt.Errorf("CATALOG_PATH is required for file catalog")
		}
	case CatalogSourceMinIO:
		if c.MinIOEndpoint == "" || c.MinIOBucket == "" || c.MinIOObject == "" {
			return fmt.Errorf("MINIO_ENDPOINT, MINIO_BUCKET and MINIO_OBJECT are required for minio catalog")
		}
	case CatalogSourcePostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required for postgres catalog")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
