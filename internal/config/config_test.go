package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, CatalogSourceFile, cfg.CatalogSource)
	assert.Equal(t, "catalog/batches.json", cfg.CatalogPath)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "HRBR", cfg.Center)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CATALOG_SOURCE", "MinIO")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_BUCKET", "catalogs")
	t.Setenv("MINIO_OBJECT", "batches.xlsx")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, CatalogSourceMinIO, cfg.CatalogSource)
	assert.Equal(t, "catalogs", cfg.MinIOBucket)
	assert.True(t, cfg.MinIOUseSSL)
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"postgres without dsn", Config{CatalogSource: CatalogSourcePostgres, SessionTTL: time.Hour}},
		{"minio without bucket", Config{CatalogSource: CatalogSourceMinIO, MinIOEndpoint: "x", SessionTTL: time.Hour}},
		{"file without path", Config{CatalogSource: CatalogSourceFile, SessionTTL: time.Hour}},
		{"unknown source", Config{CatalogSource: "ftp", SessionTTL: time.Hour}},
		{"zero ttl", Config{CatalogSource: CatalogSourceFile, CatalogPath: "a.json"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.cfg.Validate())
		})
	}

	ok := Config{CatalogSource: CatalogSourcePostgres, DBDSN: "postgres://x", SessionTTL: time.Minute}
	assert.NoError(t, ok.Validate())
}
