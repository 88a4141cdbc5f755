package middleware

import (
	"certchain/config"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 10}

	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	return app
}

func TestJWTRoundTrip(t *testing.T) {
	app := setupApp(t)

	token, err := GenerateJWT(42, "Jane Doe", "INSTITUTION", "jane@example.edu", 7)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Tokens signed with the shared key by another service may carry claim
// types we never issue; they must be rejected, not crash the handler.
func TestJWTMalformedClaims(t *testing.T) {
	app := setupApp(t)

	testCases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{
			name: "non-numeric userId",
			claims: jwt.MapClaims{
				"userId": "42",
				"role":   "USER",
				"exp":    time.Now().Add(time.Hour).Unix(),
			},
		},
		{
			name: "missing userId",
			claims: jwt.MapClaims{
				"role": "USER",
				"exp":  time.Now().Add(time.Hour).Unix(),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc.claims).
				SignedString([]byte(config.AppConfig.JWTKey))
			require.NoError(t, err)

			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestJWTRejections(t *testing.T) {
	app := setupApp(t)

	testCases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}
