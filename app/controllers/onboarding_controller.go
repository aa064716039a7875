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

// HandleGetOnboarding returns the caller's intake record.
func HandleGetOnboarding(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	repo := repository.GetGlobalFactory().GetOnboardingRepository()
	data, err := repo.GetByUserID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Onboarding data not found"})
		}
		fiberlog.Error(fmt.Sprintf("load onboarding for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load onboarding data"})
	}

	return c.JSON(data)
}

// HandleSaveOnboarding upserts the caller's intake record. The step only ever
// advances; reaching the terminal step stamps completedAt.
func HandleSaveOnboarding(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req struct {
		OnboardingStep  int         `json:"onboarding_step"`
		BrandName       string      `json:"brand_name"`
		Industry        string      `json:"industry"`
		PersonalMission string      `json:"personal_mission"`
		BrandVoice      string      `json:"brand_voice"`
		TargetAudience  string      `json:"target_audience"`
		Answers         models.JSON `json:"answers"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if req.OnboardingStep < 0 || req.OnboardingStep > models.OnboardingLastStep {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": fmt.Sprintf("onboarding_step must be between 0 and %d", models.OnboardingLastStep)})
	}

	repo := repository.GetGlobalFactory().GetOnboardingRepository()

	data, err := repo.GetByUserID(userCtx.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			fiberlog.Error(fmt.Sprintf("load onboarding for user %d: %v", userCtx.UserID, err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load onboarding data"})
		}
		data = &models.OnboardingData{UserID: userCtx.UserID}
	}

	data.BrandName = req.BrandName
	data.Industry = req.Industry
	data.PersonalMission = req.PersonalMission
	data.BrandVoice = req.BrandVoice
	data.TargetAudience = req.TargetAudience
	if req.Answers != nil {
		data.Answers = req.Answers
	}
	data.Advance(req.OnboardingStep, time.Now())

	if err := repo.CreateOrUpdate(data); err != nil {
		fiberlog.Error(fmt.Sprintf("save onboarding for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save onboarding data"})
	}

	return c.JSON(data)
}
