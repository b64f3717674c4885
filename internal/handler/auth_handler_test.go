package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"vocalis/internal/domain"
	"vocalis/internal/handler"
	"vocalis/internal/service"
	"vocalis/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func authRouter(svc service.AuthService) *gin.Engine {
	r := gin.New()
	h := handler.NewAuthHandler(svc)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.RefreshToken)
	return r
}

func TestLogin_Success(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("Login", service.LoginInput{AccessCode: "dicte-moi-42"}).
		Return(&service.TokenPair{AccessToken: "at", RefreshToken: "rt"}, nil)

	w := performJSON(authRouter(authSvc), http.MethodPost, "/auth/login",
		gin.H{"access_code": "dicte-moi-42"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	authSvc.AssertExpectations(t)
}

func TestLogin_InvalidCode(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("Login", service.LoginInput{AccessCode: "wrong"}).
		Return(nil, domain.ErrInvalidCredentials)

	w := performJSON(authRouter(authSvc), http.MethodPost, "/auth/login",
		gin.H{"access_code": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestLogin_MissingBody(t *testing.T) {
	authSvc := new(mocks.MockAuthService)

	w := performJSON(authRouter(authSvc), http.MethodPost, "/auth/login", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	authSvc.AssertNotCalled(t, "Login")
}

func TestRefresh_Success(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("RefreshToken", "rt").
		Return(&service.TokenPair{AccessToken: "at2", RefreshToken: "rt2"}, nil)

	w := performJSON(authRouter(authSvc), http.MethodPost, "/auth/refresh",
		gin.H{"refresh_token": "rt"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefresh_Expired(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("RefreshToken", "stale").Return(nil, domain.ErrUnauthorized)

	w := performJSON(authRouter(authSvc), http.MethodPost, "/auth/refresh",
		gin.H{"refresh_token": "stale"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
