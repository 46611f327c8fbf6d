package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_TOKEN_EXPIRY", "")
	t.Setenv("ADMIN_LOCKOUT_MAX_ATTEMPTS", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "projectdb", cfg.JWT.Issuer)
	assert.Equal(t, int64(3600), cfg.JWT.TokenExpiry)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, 30, cfg.Retention.PurgeAfterDays)
	assert.Equal(t, 5, cfg.Admin.LockoutMaxAttempts)
	assert.Equal(t, 900, cfg.Admin.LockoutCooldownSeconds)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_SECRET", "shh")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,,")
	t.Setenv("RATE_LIMIT_PER_IP", "100-M")
	t.Setenv("SECURE_DEVELOPMENT", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "shh", cfg.Admin.Secret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "100-M", cfg.RateLimit.RatePerIP)
	assert.True(t, cfg.Secure.IsDevelopment)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projectdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PORT: \"7070\"\nWEBHOOK_URL: https://hooks.example/in\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("WEBHOOK_URL", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "https://hooks.example/in", cfg.Webhook.URL)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadJWTPrivateKey_Empty(t *testing.T) {
	b, err := (&Config{}).LoadJWTPrivateKey()
	require.NoError(t, err)
	assert.Nil(t, b)
}
