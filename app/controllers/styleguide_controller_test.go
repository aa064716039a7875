package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandforgehq/brandforge/app/repository"
)

func TestHandleGetStyleguideDemoFixture(t *testing.T) {
	app := fiber.New()
	app.Get("/styleguide/:userId", HandleGetStyleguide)

	req := httptest.NewRequest(http.MethodGet, "/styleguide/"+DemoStyleguideID, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &doc))
	assert.Equal(t, true, doc["is_active"])
	for _, field := range []string{"colors", "typography", "imagery", "brand_personality", "business_application"} {
		assert.Contains(t, doc, field)
	}
	assert.Contains(t, string(body), "Playfair Display")
}

// The save and chat routes must reject anonymous callers before anything
// touches the repository layer. The tests install an empty repository set, so
// any storage access would panic on a nil repository.
func TestHandleSaveStyleguideUnauthorized(t *testing.T) {
	repository.SetGlobalRepositories(&repository.Repositories{})
	app := fiber.New()
	app.Post("/styleguide", HandleSaveStyleguide)

	req := httptest.NewRequest(http.MethodPost, "/styleguide", strings.NewReader(`{"name":"My Brand"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	assert.Contains(t, string(body), "unauthorized")
}

func TestHandleStyleguideChatUnauthorized(t *testing.T) {
	repository.SetGlobalRepositories(&repository.Repositories{})
	app := fiber.New()
	app.Post("/styleguide-chat", HandleStyleguideChat)

	req := httptest.NewRequest(http.MethodPost, "/styleguide-chat", strings.NewReader(`{"message":"create something"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDemoStyleguideShape(t *testing.T) {
	doc := demoStyleguide()

	colors, ok := doc["colors"].(fiber.Map)
	require.True(t, ok)
	assert.NotEmpty(t, colors["primary"])
	assert.NotEmpty(t, colors["secondary"])
	assert.NotEmpty(t, colors["accent"])

	typography, ok := doc["typography"].(fiber.Map)
	require.True(t, ok)
	assert.NotEmpty(t, typography["heading"])
	assert.NotEmpty(t, typography["body"])
}
