package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	IdP      IdPConfig
	App      AppConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// IdPConfig holds the external identity provider settings. Tokens are issued
// and signed by the provider; this service only verifies them.
type IdPConfig struct {
	IssuerURL     string
	JWKSURL       string
	Audience      string // empty disables the audience check
	JWKSCacheTTL  time.Duration
	FetchTimeout  time.Duration
	WebhookSecret string // optional shared secret for the user sync webhook
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hrms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// Identity provider configuration
	cacheTTL, err := time.ParseDuration(getEnv("JWKS_CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWKS_CACHE_TTL: %w", err)
	}
	fetchTimeout, err := time.ParseDuration(getEnv("JWKS_FETCH_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWKS_FETCH_TIMEOUT: %w", err)
	}

	issuer := getEnv("IDP_ISSUER_URL", "")
	config.IdP = IdPConfig{
		IssuerURL:     issuer,
		JWKSURL:       getEnv("IDP_JWKS_URL", defaultJWKSURL(issuer)),
		Audience:      getEnv("IDP_AUDIENCE", ""),
		JWKSCacheTTL:  cacheTTL,
		FetchTimeout:  fetchTimeout,
		WebhookSecret: getEnv("SYNC_WEBHOOK_SECRET", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.IdP.IssuerURL == "" {
		return fmt.Errorf("IDP_ISSUER_URL is required")
	}
	if c.IdP.JWKSURL == "" {
		return fmt.Errorf("IDP_JWKS_URL is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func defaultJWKSURL(issuer string) string {
	if issuer == "" {
		return ""
	}
	return issuer + "/.well-known/jwks.json"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
