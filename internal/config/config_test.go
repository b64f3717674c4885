package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vocalis/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.Auth.RefreshExpiry)
	assert.Equal(t, "vocalis", cfg.Auth.Issuer)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 5*time.Minute, cfg.Session.CleanupInterval)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("VOCALIS_SERVER_PORT", ":9090")
	t.Setenv("VOCALIS_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("VOCALIS_AUTH_ACCESS_CODE", "dicte-moi-42")
	t.Setenv("VOCALIS_SESSION_TTL", "45m")
	t.Setenv("VOCALIS_CORS_ALLOWED_ORIGINS", "https://app.example.com")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "dicte-moi-42", cfg.Auth.AccessCode)
	assert.Equal(t, 45*time.Minute, cfg.Session.TTL)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnricherDisabledByDefault(t *testing.T) {
	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Nil(t, cfg.Enricher.PrimaryConfig())
	assert.Nil(t, cfg.Enricher.SecondaryConfig())
}

func TestLoad_EnricherProviders(t *testing.T) {
	t.Setenv("VOCALIS_ENRICHER_PRIMARY_PROVIDER", "claude")
	t.Setenv("VOCALIS_ENRICHER_PRIMARY_API_KEY", "sk-test")
	t.Setenv("VOCALIS_ENRICHER_PRIMARY_TIMEOUT_SECS", "10")
	t.Setenv("VOCALIS_ENRICHER_SECONDARY_PROVIDER", "openai")
	t.Setenv("VOCALIS_ENRICHER_SECONDARY_API_KEY", "sk-backup")

	cfg, err := config.Load()

	assert.NoError(t, err)
	primary := cfg.Enricher.PrimaryConfig()
	assert.NotNil(t, primary)
	assert.Equal(t, "claude", primary.Provider)
	assert.Equal(t, "sk-test", primary.APIKey)
	assert.Equal(t, 10, primary.TimeoutSecs)

	secondary := cfg.Enricher.SecondaryConfig()
	assert.NotNil(t, secondary)
	assert.Equal(t, "openai", secondary.Provider)
	assert.Equal(t, 30, secondary.TimeoutSecs)
}

func TestLoad_PaaSPortFallback(t *testing.T) {
	t.Setenv("PORT", "5000")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Port)
}

func TestLoad_ExplicitPortWinsOverPaaS(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("VOCALIS_SERVER_PORT", ":9090")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}
