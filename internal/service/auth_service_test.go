package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"vocalis/internal/config"
	"vocalis/internal/domain"
	"vocalis/internal/service"
)

func authConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:     "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "vocalis-test",
		AccessCode:    "dicte-moi-42",
	}
}

func TestAuth_LoginSuccess(t *testing.T) {
	svc := service.NewAuthService(authConfig())

	pair, err := svc.Login(service.LoginInput{AccessCode: "dicte-moi-42"})

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), pair.ExpiresAt, 5*time.Second)
}

func TestAuth_LoginWrongCode(t *testing.T) {
	svc := service.NewAuthService(authConfig())

	pair, err := svc.Login(service.LoginInput{AccessCode: "sesame"})

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuth_LoginBcryptHashPreferred(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("code-hache"), bcrypt.MinCost)
	assert.NoError(t, err)

	cfg := authConfig()
	cfg.AccessCodeHash = string(hash)
	svc := service.NewAuthService(cfg)

	_, err = svc.Login(service.LoginInput{AccessCode: "code-hache"})
	assert.NoError(t, err)

	// The plain code is ignored once a hash is configured.
	_, err = svc.Login(service.LoginInput{AccessCode: "dicte-moi-42"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuth_NoCodeConfiguredRejectsEverything(t *testing.T) {
	cfg := authConfig()
	cfg.AccessCode = ""
	svc := service.NewAuthService(cfg)

	_, err := svc.Login(service.LoginInput{AccessCode: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuth_ValidateAccessToken(t *testing.T) {
	svc := service.NewAuthService(authConfig())
	pair, _ := svc.Login(service.LoginInput{AccessCode: "dicte-moi-42"})

	claims, err := svc.ValidateToken(pair.AccessToken)

	assert.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)
	assert.Equal(t, "vocalis-test", claims.Issuer)
}

func TestAuth_RefreshTokenNotValidAsAccess(t *testing.T) {
	svc := service.NewAuthService(authConfig())
	pair, _ := svc.Login(service.LoginInput{AccessCode: "dicte-moi-42"})

	claims, err := svc.ValidateToken(pair.RefreshToken)

	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestAuth_RefreshIssuesNewPair(t *testing.T) {
	svc := service.NewAuthService(authConfig())
	pair, _ := svc.Login(service.LoginInput{AccessCode: "dicte-moi-42"})

	fresh, err := svc.RefreshToken(pair.RefreshToken)

	assert.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	_, err = svc.ValidateToken(fresh.AccessToken)
	assert.NoError(t, err)
}

func TestAuth_RefreshRejectsAccessToken(t *testing.T) {
	svc := service.NewAuthService(authConfig())
	pair, _ := svc.Login(service.LoginInput{AccessCode: "dicte-moi-42"})

	fresh, err := svc.RefreshToken(pair.AccessToken)

	assert.Nil(t, fresh)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuth_GarbageToken(t *testing.T) {
	svc := service.NewAuthService(authConfig())

	claims, err := svc.ValidateToken("not-a-jwt")

	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestAuth_WrongSecret(t *testing.T) {
	svc := service.NewAuthService(authConfig())
	pair, _ := svc.Login(service.LoginInput{AccessCode: "dicte-moi-42"})

	other := authConfig()
	other.JWTSecret = "different-secret"
	otherSvc := service.NewAuthService(other)

	claims, err := otherSvc.ValidateToken(pair.AccessToken)

	assert.Nil(t, claims)
	assert.Error(t, err)
}
