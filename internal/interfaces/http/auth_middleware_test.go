package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Inventario-pos/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Inventario-pos/pkg/jwt"
)

// stubAuthenticator acepta solo el token "valido".
type stubAuthenticator struct{}

func (stubAuthenticator) Authenticate(_ context.Context, token string) (*pkgjwt.Claims, error) {
	if token != "valido" {
		return nil, errors.New("token inválido")
	}
	return &pkgjwt.Claims{UserID: "u1", Username: "admin"}, nil
}

func buildMiddlewareApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(stubAuthenticator{}), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
		})
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	cases := map[string]struct {
		header string
		status int
	}{
		"sin header":       {"", http.StatusUnauthorized},
		"sin Bearer":       {"valido", http.StatusUnauthorized},
		"token vacío":      {"Bearer  ", http.StatusUnauthorized},
		"token rechazado":  {"Bearer otro", http.StatusUnauthorized},
		"token aceptado":   {"Bearer valido", http.StatusOK},
		"bearer minúscula": {"bearer valido", http.StatusOK},
	}
	app := buildMiddlewareApp()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer valido")
	resp, err := buildMiddlewareApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u1", body["user_id"])
	assert.Equal(t, "admin", body["username"])
}
