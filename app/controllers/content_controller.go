package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/usercontext"
)

// HandleGetBrandbook returns the caller's brandbook.
func HandleGetBrandbook(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	brandbook, err := repository.GetGlobalFactory().GetContentRepository().GetBrandbook(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Brandbook not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load brandbook"})
	}
	return c.JSON(brandbook)
}

// HandleSaveBrandbook upserts the caller's one brandbook.
func HandleSaveBrandbook(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req struct {
		Title  string      `json:"title"`
		Config models.JSON `json:"config"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	repo := repository.GetGlobalFactory().GetContentRepository()

	brandbook, err := repo.GetBrandbook(userCtx.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load brandbook"})
		}
		brandbook = &models.Brandbook{UserID: userCtx.UserID}
	}
	brandbook.Title = req.Title
	brandbook.Config = req.Config

	if err := repo.SaveBrandbook(brandbook); err != nil {
		fiberlog.Error(fmt.Sprintf("save brandbook for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save brandbook"})
	}
	return c.JSON(brandbook)
}

// HandlePublishBrandbook marks the caller's brandbook as published.
func HandlePublishBrandbook(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repo := repository.GetGlobalFactory().GetContentRepository()
	brandbook, err := repo.GetBrandbook(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Brandbook not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load brandbook"})
	}

	brandbook.Publish(time.Now())
	if err := repo.SaveBrandbook(brandbook); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to publish brandbook"})
	}
	return c.JSON(brandbook)
}

// HandleGetDashboard returns the caller's dashboard.
func HandleGetDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	dashboard, err := repository.GetGlobalFactory().GetContentRepository().GetDashboard(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Dashboard not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load dashboard"})
	}
	return c.JSON(dashboard)
}

// HandleSaveDashboard upserts the caller's one dashboard.
func HandleSaveDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req struct {
		Title  string      `json:"title"`
		Config models.JSON `json:"config"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	repo := repository.GetGlobalFactory().GetContentRepository()

	dashboard, err := repo.GetDashboard(userCtx.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load dashboard"})
		}
		dashboard = &models.Dashboard{UserID: userCtx.UserID}
	}
	dashboard.Title = req.Title
	dashboard.Config = req.Config

	if err := repo.SaveDashboard(dashboard); err != nil {
		fiberlog.Error(fmt.Sprintf("save dashboard for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save dashboard"})
	}
	return c.JSON(dashboard)
}

// HandlePublishDashboard marks the caller's dashboard as published.
func HandlePublishDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repo := repository.GetGlobalFactory().GetContentRepository()
	dashboard, err := repo.GetDashboard(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Dashboard not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load dashboard"})
	}

	dashboard.Publish(time.Now())
	if err := repo.SaveDashboard(dashboard); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to publish dashboard"})
	}
	return c.JSON(dashboard)
}

// HandleListLandingPages returns the caller's landing pages.
func HandleListLandingPages(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	pages, err := repository.GetGlobalFactory().GetContentRepository().GetLandingPagesByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load landing pages"})
	}
	return c.JSON(fiber.Map{"landing_pages": pages})
}

// HandleCreateLandingPage creates a landing page. Slug is unique per user.
func HandleCreateLandingPage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req struct {
		Slug   string      `json:"slug"`
		Title  string      `json:"title"`
		Config models.JSON `json:"config"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	page := &models.LandingPage{
		UserID: userCtx.UserID,
		Slug:   req.Slug,
		Title:  req.Title,
		Config: req.Config,
	}
	if err := page.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid landing page data"})
	}

	if err := repository.GetGlobalFactory().GetContentRepository().CreateLandingPage(page); err != nil {
		if isDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "A landing page with this slug already exists"})
		}
		fiberlog.Error(fmt.Sprintf("create landing page for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create landing page"})
	}
	return c.Status(fiber.StatusCreated).JSON(page)
}

// HandleUpdateLandingPage patches a landing page owned by the caller.
func HandleUpdateLandingPage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	page, ok := loadOwnLandingPage(c, userCtx.UserID)
	if !ok {
		return nil
	}

	var req struct {
		Slug   *string      `json:"slug"`
		Title  *string      `json:"title"`
		Config *models.JSON `json:"config"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if req.Slug != nil {
		page.Slug = *req.Slug
	}
	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.Config != nil {
		page.Config = *req.Config
	}
	if err := page.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid landing page data"})
	}

	if err := repository.GetGlobalFactory().GetContentRepository().UpdateLandingPage(page); err != nil {
		if isDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "A landing page with this slug already exists"})
		}
		fiberlog.Error(fmt.Sprintf("update landing page %d: %v", page.ID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update landing page"})
	}
	return c.JSON(page)
}

// HandleDeleteLandingPage soft-deletes a landing page owned by the caller.
func HandleDeleteLandingPage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	page, ok := loadOwnLandingPage(c, userCtx.UserID)
	if !ok {
		return nil
	}

	if err := repository.GetGlobalFactory().GetContentRepository().DeleteLandingPage(page.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete landing page"})
	}
	return c.JSON(fiber.Map{"message": "Landing page deleted"})
}

// HandlePublishLandingPage marks a landing page as published.
func HandlePublishLandingPage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	page, ok := loadOwnLandingPage(c, userCtx.UserID)
	if !ok {
		return nil
	}

	page.Publish(time.Now())
	if err := repository.GetGlobalFactory().GetContentRepository().UpdateLandingPage(page); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to publish landing page"})
	}
	return c.JSON(page)
}

// loadOwnLandingPage fetches the :id landing page and enforces ownership.
// When ok is false the response has already been written.
func loadOwnLandingPage(c *fiber.Ctx, userID uint) (*models.LandingPage, bool) {
	id := parseIDParam(c, "id")
	if id == 0 {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Landing page not found"})
		return nil, false
	}

	page, err := repository.GetGlobalFactory().GetContentRepository().GetLandingPage(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Landing page not found"})
		} else {
			fiberlog.Error(fmt.Sprintf("load landing page %d: %v", id, err))
			_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load landing page"})
		}
		return nil, false
	}
	if page.UserID != userID {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Landing page not found"})
		return nil, false
	}
	return page, true
}
