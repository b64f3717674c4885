package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Session  SessionConfig
	Enricher EnricherConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// AuthConfig holds JWT signing and access-code settings.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret"`
	AccessExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer        string        `mapstructure:"issuer"`
	// AccessCodeHash is a bcrypt hash of the operator access code. When set
	// it takes precedence over the plain AccessCode.
	AccessCodeHash string `mapstructure:"access_code_hash"`
	AccessCode     string `mapstructure:"access_code"`
}

// SessionConfig holds session store settings.
type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// EnricherProviderConfig holds settings for a single LLM enrichment provider.
type EnricherProviderConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// EnricherConfig holds LLM enrichment settings with primary/secondary
// provider support. An empty primary provider disables enrichment entirely;
// extraction then runs on the deterministic tier alone.
type EnricherConfig struct {
	Primary   EnricherProviderConfig `mapstructure:"primary"`
	Secondary EnricherProviderConfig `mapstructure:"secondary"`
}

// PrimaryConfig returns the primary enrichment provider config, or nil if not configured.
func (e *EnricherConfig) PrimaryConfig() *EnricherProviderConfig {
	if e.Primary.Provider != "" {
		return &e.Primary
	}
	return nil
}

// SecondaryConfig returns the secondary enrichment provider config, or nil if not configured.
func (e *EnricherConfig) SecondaryConfig() *EnricherProviderConfig {
	if e.Secondary.Provider != "" {
		return &e.Secondary
	}
	return nil
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the VOCALIS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VOCALIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Auth defaults
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.access_expiry", "15m")
	v.SetDefault("auth.refresh_expiry", "168h")
	v.SetDefault("auth.issuer", "vocalis")
	v.SetDefault("auth.access_code_hash", "")
	v.SetDefault("auth.access_code", "")

	// Session defaults
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.cleanup_interval", "5m")

	// Enricher defaults
	v.SetDefault("enricher.primary.provider", "")
	v.SetDefault("enricher.primary.api_key", "")
	v.SetDefault("enricher.primary.model", "")
	v.SetDefault("enricher.primary.timeout_secs", 30)
	v.SetDefault("enricher.secondary.provider", "")
	v.SetDefault("enricher.secondary.api_key", "")
	v.SetDefault("enricher.secondary.model", "")
	v.SetDefault("enricher.secondary.timeout_secs", 30)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                     "VOCALIS_SERVER_PORT",
		"server.read_timeout":             "VOCALIS_SERVER_READ_TIMEOUT",
		"server.write_timeout":            "VOCALIS_SERVER_WRITE_TIMEOUT",
		"server.environment":              "VOCALIS_SERVER_ENVIRONMENT",
		"auth.jwt_secret":                 "VOCALIS_AUTH_JWT_SECRET",
		"auth.access_expiry":              "VOCALIS_AUTH_ACCESS_EXPIRY",
		"auth.refresh_expiry":             "VOCALIS_AUTH_REFRESH_EXPIRY",
		"auth.issuer":                     "VOCALIS_AUTH_ISSUER",
		"auth.access_code_hash":           "VOCALIS_AUTH_ACCESS_CODE_HASH",
		"auth.access_code":                "VOCALIS_AUTH_ACCESS_CODE",
		"session.ttl":                     "VOCALIS_SESSION_TTL",
		"session.cleanup_interval":        "VOCALIS_SESSION_CLEANUP_INTERVAL",
		"enricher.primary.provider":       "VOCALIS_ENRICHER_PRIMARY_PROVIDER",
		"enricher.primary.api_key":        "VOCALIS_ENRICHER_PRIMARY_API_KEY",
		"enricher.primary.model":          "VOCALIS_ENRICHER_PRIMARY_MODEL",
		"enricher.primary.timeout_secs":   "VOCALIS_ENRICHER_PRIMARY_TIMEOUT_SECS",
		"enricher.secondary.provider":     "VOCALIS_ENRICHER_SECONDARY_PROVIDER",
		"enricher.secondary.api_key":      "VOCALIS_ENRICHER_SECONDARY_API_KEY",
		"enricher.secondary.model":        "VOCALIS_ENRICHER_SECONDARY_MODEL",
		"enricher.secondary.timeout_secs": "VOCALIS_ENRICHER_SECONDARY_TIMEOUT_SECS",
		"cors.allowed_origins":            "VOCALIS_CORS_ALLOWED_ORIGINS",
		"log.level":                       "VOCALIS_LOG_LEVEL",
		"log.format":                      "VOCALIS_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if VOCALIS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("VOCALIS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Auth = AuthConfig{
		JWTSecret:      v.GetString("auth.jwt_secret"),
		AccessExpiry:   v.GetDuration("auth.access_expiry"),
		RefreshExpiry:  v.GetDuration("auth.refresh_expiry"),
		Issuer:         v.GetString("auth.issuer"),
		AccessCodeHash: v.GetString("auth.access_code_hash"),
		AccessCode:     v.GetString("auth.access_code"),
	}
	cfg.Session = SessionConfig{
		TTL:             v.GetDuration("session.ttl"),
		CleanupInterval: v.GetDuration("session.cleanup_interval"),
	}
	cfg.Enricher = EnricherConfig{
		Primary: EnricherProviderConfig{
			Provider:    v.GetString("enricher.primary.provider"),
			APIKey:      v.GetString("enricher.primary.api_key"),
			Model:       v.GetString("enricher.primary.model"),
			TimeoutSecs: v.GetInt("enricher.primary.timeout_secs"),
		},
		Secondary: EnricherProviderConfig{
			Provider:    v.GetString("enricher.secondary.provider"),
			APIKey:      v.GetString("enricher.secondary.api_key"),
			Model:       v.GetString("enricher.secondary.model"),
			TimeoutSecs: v.GetInt("enricher.secondary.timeout_secs"),
		},
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
