package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/usercontext"
)

// HandleListProjects returns the caller's projects, newest first.
func HandleListProjects(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	offset, limit := parsePagination(c)
	repo := repository.GetGlobalFactory().GetProjectRepository()

	projects, err := repo.GetByUserID(userCtx.UserID, offset, limit)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("list projects for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load projects"})
	}
	total, err := repo.CountByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load projects"})
	}

	return c.JSON(fiber.Map{"projects": projects, "total": total, "offset": offset, "limit": limit})
}

// HandleCreateProject creates a new draft project for the caller.
func HandleCreateProject(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	project := &models.Project{
		UserID:      userCtx.UserID,
		Name:        req.Name,
		Description: req.Description,
		Status:      models.PROJECT_STATUS_DRAFT,
	}
	if err := project.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid project data"})
	}

	if err := repository.GetGlobalFactory().GetProjectRepository().Create(project); err != nil {
		fiberlog.Error(fmt.Sprintf("create project for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create project"})
	}

	return c.Status(fiber.StatusCreated).JSON(project)
}

// HandleGetProject returns a single project owned by the caller.
// Foreign projects look like missing ones.
func HandleGetProject(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	project, ok := loadOwnProject(c, userCtx.UserID)
	if !ok {
		return nil
	}
	return c.JSON(project)
}

// HandleUpdateProject patches status and completion flags of a project.
func HandleUpdateProject(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	project, ok := loadOwnProject(c, userCtx.UserID)
	if !ok {
		return nil
	}

	var req struct {
		Name             *string `json:"name"`
		Description      *string `json:"description"`
		Status           *string `json:"status"`
		ImagesCompleted  *bool   `json:"images_completed"`
		ContentCompleted *bool   `json:"content_completed"`
		PaymentCompleted *bool   `json:"payment_completed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.ImagesCompleted != nil {
		project.ImagesCompleted = *req.ImagesCompleted
	}
	if req.ContentCompleted != nil {
		project.ContentCompleted = *req.ContentCompleted
	}
	if req.PaymentCompleted != nil {
		project.PaymentCompleted = *req.PaymentCompleted
	}

	if err := project.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid project data"})
	}

	if err := repository.GetGlobalFactory().GetProjectRepository().Update(project); err != nil {
		fiberlog.Error(fmt.Sprintf("update project %d: %v", project.ID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update project"})
	}

	return c.JSON(project)
}

// HandleDeleteProject soft-deletes a project owned by the caller.
func HandleDeleteProject(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	project, ok := loadOwnProject(c, userCtx.UserID)
	if !ok {
		return nil
	}

	if err := repository.GetGlobalFactory().GetProjectRepository().Delete(project.ID); err != nil {
		fiberlog.Error(fmt.Sprintf("delete project %d: %v", project.ID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete project"})
	}

	return c.JSON(fiber.Map{"message": "Project deleted"})
}

// loadOwnProject fetches the :id project and enforces ownership. Foreign
// projects return not-found to avoid leaking their existence. When ok is
// false the response has already been written.
func loadOwnProject(c *fiber.Ctx, userID uint) (*models.Project, bool) {
	id := parseIDParam(c, "id")
	if id == 0 {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Project not found"})
		return nil, false
	}

	project, err := repository.GetGlobalFactory().GetProjectRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Project not found"})
		} else {
			fiberlog.Error(fmt.Sprintf("load project %d: %v", id, err))
			_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load project"})
		}
		return nil, false
	}
	if project.UserID != userID {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Project not found"})
		return nil, false
	}
	return project, true
}
