package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/assistant"
	"github.com/brandforgehq/brandforge/internal/pkg/usercontext"
)

// DemoStyleguideID is the fixture identifier that returns a fully populated
// sample document without touching storage. Kept for the marketing demo; the
// frontend links to it from the landing page.
const DemoStyleguideID = "demo"

// HandleGetStyleguide returns the styleguide for the given user id.
// The demo identifier short-circuits to a canned sample document.
func HandleGetStyleguide(c *fiber.Ctx) error {
	userParam := c.Params("userId")
	if userParam == DemoStyleguideID {
		return c.JSON(demoStyleguide())
	}

	userID := parseIDParam(c, "userId")
	if userID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Styleguide not found"})
	}

	repo := repository.GetGlobalFactory().GetStyleguideRepository()
	styleguide, err := repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Styleguide not found"})
		}
		fiberlog.Error(fmt.Sprintf("load styleguide for user %d: %v", userID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load styleguide"})
	}

	return c.JSON(styleguide)
}

// HandleSaveStyleguide creates or fully overwrites the caller's styleguide.
func HandleSaveStyleguide(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req struct {
		Name                string      `json:"name"`
		TemplateID          *uint       `json:"template_id"`
		Colors              models.JSON `json:"colors"`
		Typography          models.JSON `json:"typography"`
		Imagery             models.JSON `json:"imagery"`
		BrandPersonality    string      `json:"brand_personality"`
		BusinessApplication models.JSON `json:"business_application"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	styleguide := &models.Styleguide{
		UserID:              userCtx.UserID,
		Name:                req.Name,
		TemplateID:          req.TemplateID,
		Colors:              req.Colors,
		Typography:          req.Typography,
		Imagery:             req.Imagery,
		BrandPersonality:    req.BrandPersonality,
		BusinessApplication: req.BusinessApplication,
		IsActive:            true,
	}

	repo := repository.GetGlobalFactory().GetStyleguideRepository()
	if err := repo.CreateOrUpdate(styleguide); err != nil {
		fiberlog.Error(fmt.Sprintf("save styleguide for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save styleguide"})
	}

	return c.JSON(styleguide)
}

// HandleListStyleguideTemplates returns the active template catalog.
func HandleListStyleguideTemplates(c *fiber.Ctx) error {
	repo := repository.GetGlobalFactory().GetTemplateRepository()
	templates, err := repo.List()
	if err != nil {
		fiberlog.Error(fmt.Sprintf("list templates: %v", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load templates"})
	}
	return c.JSON(templates)
}

// HandleStyleguideChat classifies a chat message and answers without
// persisting anything. The creation branch proposes a styleguide built from
// the first catalog template and the caller's onboarding answers.
func HandleStyleguideChat(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req struct {
		Message           string      `json:"message"`
		CurrentStyleguide models.JSON `json:"currentStyleguide"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	factory := repository.GetGlobalFactory()

	templates, err := factory.GetTemplateRepository().List()
	if err != nil {
		fiberlog.Error(fmt.Sprintf("chat: list templates: %v", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load templates"})
	}

	// Missing onboarding data is fine, the assistant falls back to placeholders.
	onboarding, err := factory.GetOnboardingRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			fiberlog.Error(fmt.Sprintf("chat: load onboarding for user %d: %v", userCtx.UserID, err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load onboarding data"})
		}
		onboarding = nil
	}

	return c.JSON(assistant.Respond(req.Message, onboarding, req.CurrentStyleguide, templates))
}

// demoStyleguide is the fixture returned for the demo identifier.
func demoStyleguide() fiber.Map {
	return fiber.Map{
		"id":         0,
		"user_id":    0,
		"name":       "Classic Professional",
		"colors":     fiber.Map{"primary": "#1a365d", "secondary": "#2d3748", "accent": "#d69e2e"},
		"typography": fiber.Map{"heading": "Playfair Display", "body": "Source Sans Pro"},
		"imagery": fiber.Map{
			"style":      "editorial",
			"selections": []string{"portrait-studio", "workspace-minimal", "city-skyline"},
		},
		"brand_personality": "professional",
		"business_application": fiber.Map{
			"tagline":     "Timeless advice, modern delivery",
			"use_cases":   []string{"website", "social", "pitch-deck"},
			"industries":  []string{"consulting", "coaching"},
			"cta_example": "Book a discovery call",
		},
		"is_active": true,
	}
}
