package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"driftgraph/interfaces/http/rest/middleware"
	"driftgraph/pkg/auth"
)

// echoUserHandler writes the authenticated user id into the response
func echoUserHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(auth.UserIDFromContext(r.Context())))
	})
}

func TestAuthenticateOpenMode(t *testing.T) {
	handler := middleware.Authenticate(nil, zap.NewNop())(echoUserHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, auth.AnonymousUserID, rec.Body.String())
}

func TestAuthenticateWithValidator(t *testing.T) {
	cfg := auth.JWTConfig{SecretKey: "test-secret", Issuer: "driftgraph"}
	validator, err := auth.NewJWTValidator(cfg)
	require.NoError(t, err)
	generator, err := auth.NewJWTGenerator(cfg, time.Hour)
	require.NoError(t, err)

	handler := middleware.Authenticate(validator, zap.NewNop())(echoUserHandler())

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid bearer token", func(t *testing.T) {
		token, err := generator.GenerateToken("user-123", "")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-123", rec.Body.String())
	})

	t.Run("token from cookie", func(t *testing.T) {
		token, err := generator.GenerateToken("user-456", "")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-456", rec.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
