package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(userID string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": userID,
		"iss": "inkwell-api",
		"aud": "inkwell-client",
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
}

func authTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()
	s, _ := newTestServer(testDeps{}, "")
	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": currentUserID(c)})
	})
	return app, s
}

func TestAuthRequired(t *testing.T) {
	t.Run("valid token passes and sets user ID", func(t *testing.T) {
		app, s := authTestApp(t)
		token := signToken(t, s.config.JWTSecret, validClaims("user_42"))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "user_42", body["user_id"])
	})

	t.Run("missing header rejected", func(t *testing.T) {
		app, _ := authTestApp(t)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong signature rejected", func(t *testing.T) {
		app, _ := authTestApp(t)
		token := signToken(t, "some-other-secret", validClaims("user_42"))

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong issuer rejected", func(t *testing.T) {
		app, s := authTestApp(t)
		claims := validClaims("user_42")
		claims["iss"] = "someone-else"
		token := signToken(t, s.config.JWTSecret, claims)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("wrong audience rejected", func(t *testing.T) {
		app, s := authTestApp(t)
		claims := validClaims("user_42")
		claims["aud"] = "other-client"
		token := signToken(t, s.config.JWTSecret, claims)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		app, s := authTestApp(t)
		claims := validClaims("user_42")
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		token := signToken(t, s.config.JWTSecret, claims)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("empty subject rejected", func(t *testing.T) {
		app, s := authTestApp(t)
		claims := validClaims("")
		token := signToken(t, s.config.JWTSecret, claims)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, statusForCode("UNAUTHORIZED"))
	assert.Equal(t, http.StatusBadRequest, statusForCode("INVALID_INPUT"))
	assert.Equal(t, http.StatusForbidden, statusForCode("PLAN_RESTRICTION"))
	assert.Equal(t, http.StatusTooManyRequests, statusForCode("USAGE_LIMIT_EXCEEDED"))
	assert.Equal(t, http.StatusNotFound, statusForCode("NOT_FOUND"))
	assert.Equal(t, http.StatusBadGateway, statusForCode("GENERATION_FAILED"))
	assert.Equal(t, http.StatusInternalServerError, statusForCode("PERSISTENCE_FAILED"))
	assert.Equal(t, http.StatusInternalServerError, statusForCode("INTERNAL_ERROR"))
}
