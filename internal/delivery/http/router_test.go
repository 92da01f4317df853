package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kosarinj/lilys-dogboarding-app/internal/cache"
	"github.com/kosarinj/lilys-dogboarding-app/internal/config"
	"github.com/kosarinj/lilys-dogboarding-app/internal/delivery/middleware"
)

// --- Helpers -------------------------------------------------------------

const testSecret = "router-test-secret"

// newTestApp registers every route without a database. Only requests that
// fail before reaching a store can be exercised here.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	log := zap.NewNop()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(log)})
	RegisterRoutes(app, Deps{
		Config: config.Config{
			JWTSecret:         testSecret,
			JWTExpiresMinutes: 60,
			BillDueDays:       7,
		},
		Denylist: cache.NewMemoryDenylist(),
		Log:      log,
	})
	return app
}

func adminToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   "9a1f7c52-5d8e-4f0e-8f6a-2c1d3b4a5e6f",
		"typ":   "admin",
		"email": "lily@example.com",
		"jti":   "router-test-jti",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func call(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]any) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(res.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return res.StatusCode, out
}

// --- Tests ---------------------------------------------------------------

// This test validates:
// - health and metrics are public
func TestRoutes_PublicEndpoints(t *testing.T) {
	app := newTestApp(t)

	status, body := call(t, app, "GET", "/health", "", "")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, true, body["ok"])

	status, _ = call(t, app, "GET", "/metrics", "", "")
	require.Equal(t, fiber.StatusOK, status)
}

// This test validates:
// - admin routes reject requests without a token
// - the guest bill page treats malformed codes as not found
func TestRoutes_AuthBoundary(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/admin/customers", "/api/admin/stays", "/api/admin/bills", "/api/admin/me"} {
		status, body := call(t, app, "GET", path, "", "")
		require.Equal(t, fiber.StatusUnauthorized, status, path)
		require.NotEmpty(t, body["error"], path)
	}

	status, body := call(t, app, "GET", "/api/bills/code/not-a-code", "", "")
	require.Equal(t, fiber.StatusNotFound, status)
	require.NotEmpty(t, body["error"])
}

// This test validates:
// - /me echoes the token claims
// - logout revokes the token for later requests
func TestRoutes_MeAndLogout(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t)

	status, body := call(t, app, "GET", "/api/admin/me", token, "")
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "lily@example.com", body["email"])

	status, _ = call(t, app, "POST", "/api/admin/logout", token, "")
	require.Equal(t, fiber.StatusNoContent, status)

	status, body = call(t, app, "GET", "/api/admin/me", token, "")
	require.Equal(t, fiber.StatusUnauthorized, status)
	require.Equal(t, "token revoked", body["error"])
}

// This test validates:
// - malformed input is rejected with 400 before any storage is touched
func TestRoutes_InputValidation(t *testing.T) {
	app := newTestApp(t)
	token := adminToken(t)

	cases := []struct {
		method, path, body string
	}{
		{"POST", "/api/admin/stays/quote", "{not json"},
		{"GET", "/api/admin/stays?dogId=nope", ""},
		{"GET", "/api/admin/stays/nope", ""},
		{"GET", "/api/admin/bills/nope", ""},
		{"PATCH", "/api/admin/bills/nope/status", `{"status":"sent"}`},
		{"POST", "/api/admin/bills/nope/payments", `{"method":"cash","amount":"10"}`},
	}
	for _, tc := range cases {
		status, body := call(t, app, tc.method, tc.path, token, tc.body)
		require.Equal(t, fiber.StatusBadRequest, status, tc.path)
		require.NotEmpty(t, body["error"], tc.path)
	}
}
