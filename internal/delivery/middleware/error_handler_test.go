package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorHandler(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.New(core))})

	app.Get("/missing", func(*fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "dog not found")
	})
	app.Get("/boom", func(*fiber.Ctx) error {
		return errors.New("connection reset by peer")
	})

	cases := []struct {
		path   string
		status int
		msg    string
	}{
		{"/missing", fiber.StatusNotFound, "dog not found"},
		{"/boom", fiber.StatusInternalServerError, "internal error"},
		{"/nowhere", fiber.StatusNotFound, "Cannot GET /nowhere"},
	}
	for _, tc := range cases {
		res, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		require.Equal(t, tc.status, res.StatusCode, tc.path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		require.Equal(t, tc.msg, body["error"], tc.path)
	}

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "request failed", logs.All()[0].Message)
}
