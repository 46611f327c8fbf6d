package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Admin     AdminConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Secure    SecureConfig
	CORS      CORSConfig
	Webhook   WebhookConfig
	Retention RetentionConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	// URL empty = in-memory repositories.
	URL string
}

type RedisConfig struct {
	// URL empty = no cache, no queue.
	URL      string
	CacheTTL time.Duration
}

type AdminConfig struct {
	Secret string
	// LockoutMaxAttempts wrong secrets from one IP lock it out; 0 disables.
	LockoutMaxAttempts     int
	LockoutCooldownSeconds int
}

type JWTConfig struct {
	PrivateKeyPath string
	Issuer         string
	Audience       string
	TokenExpiry    int64 // seconds
}

type RateLimitConfig struct {
	RatePerIP      string // "100-M"; empty disables
	RatePerProject string
}

type SecureConfig struct {
	IsDevelopment bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type WebhookConfig struct {
	URL    string
	Secret string
}

type RetentionConfig struct {
	PurgeAfterDays int
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("PROJECT_CACHE_TTL_SECONDS", 300)
	v.SetDefault("ADMIN_LOCKOUT_MAX_ATTEMPTS", 5)
	v.SetDefault("ADMIN_LOCKOUT_COOLDOWN_SECONDS", 900)
	v.SetDefault("JWT_ISSUER", "projectdb")
	v.SetDefault("JWT_AUDIENCE", "projectdb")
	v.SetDefault("JWT_TOKEN_EXPIRY", 3600)
	v.SetDefault("RETENTION_PURGE_AFTER_DAYS", 30)
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", p, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("REDIS_URL"),
			CacheTTL: time.Duration(v.GetInt("PROJECT_CACHE_TTL_SECONDS")) * time.Second,
		},
		Admin: AdminConfig{
			Secret:                 v.GetString("ADMIN_SECRET"),
			LockoutMaxAttempts:     v.GetInt("ADMIN_LOCKOUT_MAX_ATTEMPTS"),
			LockoutCooldownSeconds: v.GetInt("ADMIN_LOCKOUT_COOLDOWN_SECONDS"),
		},
		JWT: JWTConfig{
			PrivateKeyPath: v.GetString("JWT_PRIVATE_KEY_PATH"),
			Issuer:         v.GetString("JWT_ISSUER"),
			Audience:       v.GetString("JWT_AUDIENCE"),
			TokenExpiry:    v.GetInt64("JWT_TOKEN_EXPIRY"),
		},
		RateLimit: RateLimitConfig{
			RatePerIP:      v.GetString("RATE_LIMIT_PER_IP"),
			RatePerProject: v.GetString("RATE_LIMIT_PER_PROJECT"),
		},
		Secure: SecureConfig{
			IsDevelopment: v.GetBool("SECURE_DEVELOPMENT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Webhook: WebhookConfig{
			URL:    v.GetString("WEBHOOK_URL"),
			Secret: v.GetString("WEBHOOK_SECRET"),
		},
		Retention: RetentionConfig{
			PurgeAfterDays: v.GetInt("RETENTION_PURGE_AFTER_DAYS"),
		},
	}
	if cfg.JWT.TokenExpiry <= 0 {
		cfg.JWT.TokenExpiry = 3600
	}
	if cfg.Redis.CacheTTL <= 0 {
		cfg.Redis.CacheTTL = 5 * time.Minute
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadJWTPrivateKey reads the PEM file and returns its contents. Empty path returns nil, nil.
func (c *Config) LoadJWTPrivateKey() ([]byte, error) {
	if c.JWT.PrivateKeyPath == "" {
		return nil, nil
	}
	return os.ReadFile(c.JWT.PrivateKeyPath)
}
