package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekoshield/internal/auth"
	authhandler "ekoshield/internal/auth/handler"
	cataloghandler "ekoshield/internal/catalog/handler"
	"ekoshield/internal/token"
	"ekoshield/internal/wallet"
	wallethandler "ekoshield/internal/wallet/handler"
)

const testPassword = "open sesame"

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	tokens := token.NewService("test-signing-key", "ekoshield", "ekoshield-console")
	authSvc, err := auth.New(testPassword, tokens)
	require.NoError(t, err)
	walletSvc, err := wallet.New(wallet.NewInMemoryStore(100))
	require.NoError(t, err)

	return NewRouter(RouterConfig{
		Logger:    slog.Default(),
		Validator: authSvc,
		Auth:      authhandler.New(authSvc, slog.Default()),
		Catalog:   cataloghandler.New(),
		Wallet:    wallethandler.New(walletSvc, slog.Default()),
	})
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"password":"`+testPassword+`"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestHealthzIsPublic(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsIsPublic(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newRouter(t)

	t.Run("no token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wallet", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/wallet", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLoginThenAccessProtectedRoute(t *testing.T) {
	router := newRouter(t)
	sessionToken := login(t, router)

	req := httptest.NewRequest(http.MethodGet, "/wallet", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"balance":100}`, rec.Body.String())
}

func TestWrongPasswordIsUnauthorized(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalogBehindAuth(t *testing.T) {
	router := newRouter(t)
	sessionToken := login(t, router)

	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Categories []any `json:"categories"`
		Services   []any `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Categories, 6)
	assert.Len(t, body.Services, 23)
}
