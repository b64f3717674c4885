package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vocalis/internal/config"
	"vocalis/internal/domain"
)

// Claims represents the JWT claims issued to an operator.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginInput is the DTO for login requests. The backend is single-tenant: a
// shared access code guards the whole API.
type LoginInput struct {
	AccessCode string `json:"access_code" binding:"required"`
}

// RefreshInput is the DTO for token refresh requests.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	Login(input LoginInput) (*TokenPair, error)
	RefreshToken(refreshToken string) (*TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	cfg config.AuthConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(cfg config.AuthConfig) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) Login(input LoginInput) (*TokenPair, error) {
	if !s.codeMatches(input.AccessCode) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.generateTokenPair()
}

// codeMatches prefers the bcrypt hash when configured and falls back to a
// constant-time comparison against the plain code for local setups.
func (s *authService) codeMatches(code string) bool {
	if s.cfg.AccessCodeHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AccessCodeHash), []byte(code)) == nil
	}
	if s.cfg.AccessCode == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.AccessCode), []byte(code)) == 1
}

func (s *authService) RefreshToken(refreshToken string) (*TokenPair, error) {
	if _, err := s.validateTokenString(refreshToken, "refresh"); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return s.generateTokenPair()
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, "access")
}

func (s *authService) generateTokenPair() (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.cfg.AccessExpiry)
	refreshExpiry := now.Add(s.cfg.RefreshExpiry)

	accessClaims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "operator",
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"access"},
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refreshClaims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "operator",
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"refresh"},
		},
	}

	refreshTokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshTokenObj.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *authService) validateTokenString(tokenString, audience string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	aud, _ := claims.GetAudience()
	for _, a := range aud {
		if a == audience {
			return claims, nil
		}
	}
	return nil, domain.ErrUnauthorized
}
