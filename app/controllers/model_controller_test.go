package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/usercontext"
)

// authedTestApp wires a single route behind a middleware that pins the caller
// identity, standing in for the session layer.
func authedTestApp(method, path string, userID uint, plan string, handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Add(method, path, func(c *fiber.Ctx) error {
		usercontext.SetUserContext(c, usercontext.UserContext{
			UserID:     userID,
			IsLoggedIn: true,
			Plan:       plan,
		})
		return c.Next()
	}, handler)
	return app
}

type duplicateUserModelRepo struct{}

func (duplicateUserModelRepo) Create(*models.UserModel) error {
	return errDuplicateForTest{}
}

func (duplicateUserModelRepo) GetByUserID(uint) (*models.UserModel, error) {
	return nil, gorm.ErrRecordNotFound
}

func (duplicateUserModelRepo) Update(*models.UserModel) error { return nil }

type stubSelfieRepo struct {
	count int64
}

func (stubSelfieRepo) Create(*models.SelfieUpload) error { return nil }

func (stubSelfieRepo) GetByUserID(uint) ([]models.SelfieUpload, error) { return nil, nil }

func (r stubSelfieRepo) CountByUserID(uint) (int64, error) { return r.count, nil }

// Two racing creations for the same user both pass the read-side checks; the
// unique index stops the second one and the handler must answer 409.
func TestHandleCreateUserModelDuplicateConflicts(t *testing.T) {
	repository.SetGlobalRepositories(&repository.Repositories{
		UserModel: duplicateUserModelRepo{},
		Selfie:    stubSelfieRepo{count: 6},
	})

	app := authedTestApp(fiber.MethodPost, "/api/models", 7, "pro", HandleCreateUserModel)

	req := httptest.NewRequest(fiber.MethodPost, "/api/models", strings.NewReader(`{"trigger_word":"janedoe"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "conflict", payload["error"])
}

func TestHandleCreateUserModelRequiresPaidPlan(t *testing.T) {
	repository.SetGlobalRepositories(&repository.Repositories{
		UserModel: duplicateUserModelRepo{},
		Selfie:    stubSelfieRepo{count: 6},
	})

	app := authedTestApp(fiber.MethodPost, "/api/models", 7, "free", HandleCreateUserModel)

	req := httptest.NewRequest(fiber.MethodPost, "/api/models", strings.NewReader(`{"trigger_word":"janedoe"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestHandleCreateUserModelNeedsEnoughSelfies(t *testing.T) {
	repository.SetGlobalRepositories(&repository.Repositories{
		UserModel: duplicateUserModelRepo{},
		Selfie:    stubSelfieRepo{count: 2},
	})

	app := authedTestApp(fiber.MethodPost, "/api/models", 7, "pro", HandleCreateUserModel)

	req := httptest.NewRequest(fiber.MethodPost, "/api/models", strings.NewReader(`{"trigger_word":"janedoe"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
