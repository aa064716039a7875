package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimePtr(t *testing.T) {
	assert.Nil(t, formatTimePtr(nil))

	now := time.Date(2025, 5, 1, 12, 34, 56, 0, time.Local)
	formatted := formatTimePtr(&now)
	assert.IsType(t, "", formatted)

	expected := now.UTC().Format(time.RFC3339)
	assert.Equal(t, expected, formatted)
}

func TestParseIDParam(t *testing.T) {
	app := fiber.New()
	var got uint
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		got = parseIDParam(c, "id")
		return c.SendStatus(fiber.StatusNoContent)
	})

	for path, want := range map[string]uint{
		"/items/42":  42,
		"/items/0":   0,
		"/items/abc": 0,
		"/items/-5":  0,
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		_, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var offset, limit int
	app.Get("/items", func(c *fiber.Ctx) error {
		offset, limit = parsePagination(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		query      string
		wantOffset int
		wantLimit  int
	}{
		{"", 0, 50},
		{"?offset=10&limit=20", 10, 20},
		{"?offset=-3", 0, 50},
		{"?limit=1000", 0, 50},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil)
		_, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, tt.wantOffset, offset, tt.query)
		assert.Equal(t, tt.wantLimit, limit, tt.query)
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.False(t, isDuplicateKeyError(nil))
	assert.False(t, isDuplicateKeyError(assert.AnError))
	assert.True(t, isDuplicateKeyError(errDuplicateForTest{}))
}

type errDuplicateForTest struct{}

func (errDuplicateForTest) Error() string {
	return "Error 1062 (23000): Duplicate entry 'brand' for key 'ux_user_models_trigger_word'"
}
