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
)

type duplicateDomainRepo struct{}

func (duplicateDomainRepo) Create(*models.Domain) error {
	return errDuplicateForTest{}
}

func (duplicateDomainRepo) GetByID(uint) (*models.Domain, error) {
	return nil, gorm.ErrRecordNotFound
}

func (duplicateDomainRepo) GetByUserID(uint) ([]models.Domain, error) { return nil, nil }

func (duplicateDomainRepo) Update(*models.Domain) error { return nil }

func (duplicateDomainRepo) Delete(uint) error { return nil }

type stubContentRepo struct {
	brandbook *models.Brandbook
}

func (r stubContentRepo) GetBrandbook(uint) (*models.Brandbook, error) {
	if r.brandbook == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.brandbook, nil
}

func (stubContentRepo) SaveBrandbook(*models.Brandbook) error { return nil }

func (stubContentRepo) GetDashboard(uint) (*models.Dashboard, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubContentRepo) SaveDashboard(*models.Dashboard) error { return nil }

func (stubContentRepo) CreateLandingPage(*models.LandingPage) error { return nil }

func (stubContentRepo) GetLandingPage(uint) (*models.LandingPage, error) {
	return nil, gorm.ErrRecordNotFound
}

func (stubContentRepo) GetLandingPagesByUserID(uint) ([]models.LandingPage, error) {
	return nil, nil
}

func (stubContentRepo) UpdateLandingPage(*models.LandingPage) error { return nil }

func (stubContentRepo) DeleteLandingPage(uint) error { return nil }

// A domain or subdomain that is already taken is caught by the unique index
// and must come back as a conflict, not an internal error.
func TestHandleCreateDomainDuplicateConflicts(t *testing.T) {
	repository.SetGlobalRepositories(&repository.Repositories{
		Domain:  duplicateDomainRepo{},
		Content: stubContentRepo{brandbook: &models.Brandbook{ID: 3, UserID: 7}},
	})

	app := authedTestApp(fiber.MethodPost, "/api/domains", 7, "pro", HandleCreateDomain)

	body := `{"domain":"janedoe.com","subdomain":"jane","connected_type":"brandbook","target_id":3}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/domains", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "conflict", payload["error"])
}

// The connection target must exist and belong to the caller before anything
// is written.
func TestHandleCreateDomainRejectsForeignTarget(t *testing.T) {
	repository.SetGlobalRepositories(&repository.Repositories{
		Domain:  duplicateDomainRepo{},
		Content: stubContentRepo{},
	})

	app := authedTestApp(fiber.MethodPost, "/api/domains", 7, "pro", HandleCreateDomain)

	body := `{"domain":"janedoe.com","subdomain":"jane","connected_type":"brandbook","target_id":3}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/domains", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleCreateDomainRejectsUnknownConnectionType(t *testing.T) {
	repository.SetGlobalRepositories(&repository.Repositories{})

	app := authedTestApp(fiber.MethodPost, "/api/domains", 7, "pro", HandleCreateDomain)

	body := `{"domain":"janedoe.com","subdomain":"jane","connected_type":"portfolio","target_id":1}`
	req := httptest.NewRequest(fiber.MethodPost, "/api/domains", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
