package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Port      string `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	JWTSecret string `yaml:"jwt_secret"`

	// AdminKey is exchanged for a short-lived JWT on /api/auth/token.
	// An empty key disables the admin endpoints.
	AdminKey string        `yaml:"admin_key"`
	TokenTTL time.Duration `yaml:"token_ttl"`

	// BackendURL is the one origin every client in this repo talks to.
	BackendURL  string   `yaml:"backend_url"`
	CORSOrigins []string `yaml:"cors_origins"`

	LogLevel string `yaml:"log_level"`

	// Per-IP limit for consultation submissions.
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DefaultJWTSecret is the placeholder secret of Default. It is public, so
// Validate refuses it while the admin endpoints are enabled.
const DefaultJWTSecret = "your-secret-key-change-in-production"

// MinJWTSecretLength is the shortest secret accepted with admin enabled.
const MinJWTSecretLength = 32

// Default 默认配置
func Default() *Config {
	return &Config{
		Port:            ":8080",
		DBPath:          "./data/ecoindus.db",
		JWTSecret:       DefaultJWTSecret,
		TokenTTL:        12 * time.Hour,
		BackendURL:      "http://localhost:8080",
		CORSOrigins:     []string{"*"},
		LogLevel:        "info",
		RateLimitRPS:    0.2,
		RateLimitBurst:  5,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load 加载配置
//
// Defaults are overlaid by the YAML file at path (when path is non-empty) and
// then by environment variables. The result is validated before it is returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		if !strings.Contains(port, ":") {
			port = ":" + port
		}
		c.Port = port
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		c.DBPath = dbPath
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWTSecret = secret
	}
	if key := os.Getenv("ADMIN_KEY"); key != "" {
		c.AdminKey = key
	}
	if backend := os.Getenv("BACKEND_URL"); backend != "" {
		c.BackendURL = backend
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = splitList(origins)
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if rps := os.Getenv("RATE_LIMIT_RPS"); rps != "" {
		v, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", rps, err)
		}
		c.RateLimitRPS = v
	}
	if burst := os.Getenv("RATE_LIMIT_BURST"); burst != "" {
		v, err := strconv.Atoi(burst)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", burst, err)
		}
		c.RateLimitBurst = v
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		v, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_TTL %q: %w", ttl, err)
		}
		c.TokenTTL = v
	}
	return nil
}

// Validate checks the settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret must not be empty")
	}
	if c.AdminEnabled() {
		if c.JWTSecret == DefaultJWTSecret {
			return errors.New("jwt_secret must be changed from the default when admin_key is set")
		}
		if len(c.JWTSecret) < MinJWTSecretLength {
			return fmt.Errorf("jwt_secret must be at least %d bytes when admin_key is set", MinJWTSecretLength)
		}
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend_url %q: %w", c.BackendURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend_url %q must be an absolute http(s) URL", c.BackendURL)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit must be positive, got rps=%v burst=%d", c.RateLimitRPS, c.RateLimitBurst)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// AdminEnabled reports whether the admin endpoints are reachable.
func (c *Config) AdminEnabled() bool {
	return c.AdminKey != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
