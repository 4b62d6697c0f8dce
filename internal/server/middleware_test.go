package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mingle/internal/config"
	"mingle/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProtectedRoute_TokenRoundTrip verifies that tokens issued by the server
// are accepted by the auth middleware guarding protected routes, and that
// requests without a valid token are rejected.
func TestProtectedRoute_TokenRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret-key-12345678901234567890123456789012"}
	middleware.InitMiddleware(cfg)

	s := &Server{config: cfg}

	app := fiber.New()
	app.Get("/protected", middleware.AuthRequired, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": c.Locals("userID")})
	})

	issued, err := s.generateToken(123, "alice")
	require.NoError(t, err)

	foreignToken := func() string {
		claims := jwt.MapClaims{
			"sub": "123",
			"iss": "someone-else",
			"aud": middleware.TokenAudience,
			"exp": time.Now().Add(time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		str, _ := token.SignedString([]byte(cfg.JWTSecret))
		return str
	}()

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{
			name:           "Issued token accepted",
			authHeader:     "Bearer " + issued,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing token rejected",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Foreign issuer rejected",
			authHeader:     "Bearer " + foreignToken,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]interface{}
				_ = json.NewDecoder(resp.Body).Decode(&body)
				assert.Equal(t, float64(123), body["userID"])
			}
		})
	}
}
