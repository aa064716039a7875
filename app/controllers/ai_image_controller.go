package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/database"
	"github.com/brandforgehq/brandforge/internal/pkg/entitlements"
	"github.com/brandforgehq/brandforge/internal/pkg/generation"
	"github.com/brandforgehq/brandforge/internal/pkg/usage"
	"github.com/brandforgehq/brandforge/internal/pkg/usercontext"
)

// HandleCreateAiImage books a one-off generation: the request is persisted as
// pending, the provider call runs asynchronously, and the caller polls the
// status route with the returned uuid.
func HandleCreateAiImage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req struct {
		Prompt    string `json:"prompt"`
		Style     string `json:"style"`
		ProjectID *uint  `json:"project_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	plan := entitlements.NormalizePlan(userCtx.Plan)
	usageSvc := usage.NewService(database.GetDB(), repository.GetGlobalFactory().GetUsageRepository())
	if err := usageSvc.CheckAllowance(userCtx.UserID, plan); err != nil {
		if errors.Is(err, usage.ErrLimitReached) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "limit_reached", "message": "Monthly generation limit reached"})
		}
		fiberlog.Error(fmt.Sprintf("check allowance for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to check usage"})
	}

	if req.ProjectID != nil {
		project, err := repository.GetGlobalFactory().GetProjectRepository().GetByID(*req.ProjectID)
		if err != nil || project.UserID != userCtx.UserID {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Project not found"})
		}
	}

	image := &models.AiImage{
		UUID:             uuid.New().String(),
		UserID:           userCtx.UserID,
		ProjectID:        req.ProjectID,
		Prompt:           req.Prompt,
		Style:            req.Style,
		GenerationStatus: models.GENERATION_PENDING,
	}
	if err := image.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Prompt is required"})
	}

	imageRepo := repository.GetGlobalFactory().GetAiImageRepository()
	if err := imageRepo.Create(image); err != nil {
		fiberlog.Error(fmt.Sprintf("create ai image for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create generation request"})
	}
	_ = generation.SetStatus(image.UUID, models.GENERATION_PENDING)

	if err := usageSvc.RecordGeneration(userCtx.UserID, plan, models.USAGE_ACTION_AI_IMAGE, nil, entitlements.GenerationCost(plan), nil); err != nil {
		fiberlog.Error(fmt.Sprintf("record usage for user %d: %v", userCtx.UserID, err))
	}

	go runGeneration(image.UUID, req.Prompt, req.Style)

	return c.Status(fiber.StatusCreated).JSON(image)
}

// runGeneration drives one provider call and moves the request through the
// processing states. Runs detached from the originating request.
func runGeneration(imageUUID, prompt, style string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	imageRepo := repository.GetGlobalFactory().GetAiImageRepository()
	image, err := imageRepo.GetByUUID(imageUUID)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("generation %s: load: %v", imageUUID, err))
		return
	}

	image.GenerationStatus = models.GENERATION_PROCESSING
	_ = imageRepo.Update(image)
	_ = generation.SetStatus(imageUUID, models.GENERATION_PROCESSING)

	trackingID, imageURL, err := generation.GetProvider().GenerateImage(ctx, prompt, style)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("generation %s: provider: %v", imageUUID, err))
		image.GenerationStatus = models.GENERATION_FAILED
		_ = imageRepo.Update(image)
		_ = generation.SetStatus(imageUUID, models.GENERATION_FAILED)
		return
	}

	image.ProviderTrackingID = trackingID
	image.ImageURL = imageURL
	image.GenerationStatus = models.GENERATION_COMPLETED
	if err := imageRepo.Update(image); err != nil {
		fiberlog.Error(fmt.Sprintf("generation %s: save result: %v", imageUUID, err))
		return
	}
	_ = generation.SetStatus(imageUUID, models.GENERATION_COMPLETED)
}

// HandleListAiImages returns the caller's generation requests, newest first.
func HandleListAiImages(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	offset, limit := parsePagination(c)
	images, err := repository.GetGlobalFactory().GetAiImageRepository().GetByUserID(userCtx.UserID, offset, limit)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("list ai images for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load images"})
	}

	return c.JSON(fiber.Map{"images": images, "offset": offset, "limit": limit})
}

// HandleAiImageStatus returns the generation status of a request (cache-first).
func HandleAiImageStatus(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	imageUUID := c.Params("uuid")
	if imageUUID == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Image not found"})
	}

	image, err := repository.GetGlobalFactory().GetAiImageRepository().GetByUUID(imageUUID)
	if err != nil || image.UserID != userCtx.UserID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Image not found"})
	}

	status, err := generation.GetStatus(imageUUID)
	if err != nil {
		status = image.GenerationStatus
	}

	resp := fiber.Map{"uuid": imageUUID, "status": status, "complete": status == models.GENERATION_COMPLETED}
	if status == models.GENERATION_COMPLETED {
		resp["image_url"] = image.ImageURL
	}
	return c.JSON(resp)
}

// HandleSelectAiImage marks one candidate as the chosen output. Selection is
// exclusive among the request's siblings (same user and project).
func HandleSelectAiImage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	imageUUID := c.Params("uuid")
	imageRepo := repository.GetGlobalFactory().GetAiImageRepository()

	image, err := imageRepo.GetByUUID(imageUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Image not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load image"})
	}
	if image.UserID != userCtx.UserID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Image not found"})
	}
	if image.GenerationStatus != models.GENERATION_COMPLETED {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "Only completed images can be selected"})
	}

	if err := imageRepo.SelectImage(image); err != nil {
		fiberlog.Error(fmt.Sprintf("select ai image %s: %v", imageUUID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to select image"})
	}

	return c.JSON(image)
}
