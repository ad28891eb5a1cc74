package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.BackendURL)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.AdminEnabled())
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: ":9000"
db_path: /tmp/site.db
backend_url: https://api.example.com/
admin_key: from-file
jwt_secret: 0123456789abcdef0123456789abcdef
token_ttl: 30m
cors_origins:
  - https://example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("ADMIN_KEY", "from-env")
	t.Setenv("PORT", "9100")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Port)
	assert.Equal(t, "/tmp/site.db", cfg.DBPath)
	assert.Equal(t, "https://api.example.com", cfg.BackendURL, "trailing slash is trimmed")
	assert.Equal(t, "from-env", cfg.AdminKey)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.True(t, cfg.AdminEnabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "relative backend url", env: map[string]string{"BACKEND_URL": "/api"}},
		{name: "unsupported scheme", env: map[string]string{"BACKEND_URL": "ftp://example.com"}},
		{name: "bad rps", env: map[string]string{"RATE_LIMIT_RPS": "fast"}},
		{name: "zero burst", env: map[string]string{"RATE_LIMIT_BURST": "0"}},
		{name: "bad ttl", env: map[string]string{"TOKEN_TTL": "forever"}},
		{name: "admin with default secret", env: map[string]string{"ADMIN_KEY": "k"}},
		{name: "admin with short secret", env: map[string]string{"ADMIN_KEY": "k", "JWT_SECRET": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadDefaultSecretWithoutAdmin(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret, "placeholder is fine while nothing is signed")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
