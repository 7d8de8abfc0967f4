package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/5w1tchy/smart-library-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "Smart Library API", cfg.App.Name)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 100, cfg.Paging.DefaultPageSize)
	assert.Equal(t, 1000, cfg.Paging.MaxPageSize)
	assert.Equal(t, []string{"*"}, cfg.Security.CORSOrigins)
	assert.Equal(t, int64(1<<20), cfg.Security.MaxBodySize)
	assert.Equal(t, "library:books:changes", cfg.Events.Channel)
	assert.False(t, cfg.Events.Enabled())
	assert.False(t, cfg.Server.TLSEnabled())
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/library")
	t.Setenv("DB_CONN_MAX_LIFETIME", "1h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MAX_PAGE_SIZE", "50")
	t.Setenv("DEFAULT_PAGE_SIZE", "20")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSOrigins)
	assert.Equal(t, 20, cfg.Paging.DefaultPageSize)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_NAME=From File\nDB_DRIVER=memory\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("APP_NAME")
		os.Unsetenv("DB_DRIVER")
	})

	cfg, err := config.Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "From File", cfg.App.Name)
}

func TestValidate(t *testing.T) {
	tests := map[string]map[string]string{
		"sql driver without url": {"DB_DRIVER": "pgx"},
		"unknown driver":         {"DB_DRIVER": "sqlite"},
		"default above max":      {"DB_DRIVER": "memory", "DEFAULT_PAGE_SIZE": "2000"},
		"half tls":               {"DB_DRIVER": "memory", "TLS_CERT": "cert.pem"},
		"strict wildcard cors":   {"DB_DRIVER": "memory", "STRICT_SECURITY": "true"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
