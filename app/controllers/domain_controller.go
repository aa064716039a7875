package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/usercontext"
)

// HandleListDomains returns the caller's connected domains.
func HandleListDomains(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	domains, err := repository.GetGlobalFactory().GetDomainRepository().GetByUserID(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load domains"})
	}
	return c.JSON(fiber.Map{"domains": domains})
}

// HandleCreateDomain connects a domain and subdomain to one published
// artifact of the caller. The connection target must exist and belong to the
// caller; duplicate domains or subdomains conflict.
func HandleCreateDomain(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	var req struct {
		Domain        string `json:"domain"`
		Subdomain     string `json:"subdomain"`
		ConnectedType string `json:"connected_type"`
		TargetID      uint   `json:"target_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	domain := &models.Domain{
		UserID:    userCtx.UserID,
		Domain:    strings.ToLower(strings.TrimSpace(req.Domain)),
		Subdomain: strings.ToLower(strings.TrimSpace(req.Subdomain)),
	}

	switch req.ConnectedType {
	case models.CONNECTED_BRANDBOOK:
		domain.ConnectBrandbook(req.TargetID)
	case models.CONNECTED_DASHBOARD:
		domain.ConnectDashboard(req.TargetID)
	case models.CONNECTED_LANDING_PAGE:
		domain.ConnectLandingPage(req.TargetID)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "connected_type must be brandbook, dashboard or landing_page"})
	}

	if err := domain.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid domain data"})
	}

	if ok, err := connectionTargetOwned(domain, userCtx.UserID); err != nil {
		fiberlog.Error(fmt.Sprintf("check domain target for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to verify connection target"})
	} else if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Connection target not found"})
	}

	if err := repository.GetGlobalFactory().GetDomainRepository().Create(domain); err != nil {
		if isDuplicateKeyError(err) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "The domain or subdomain is already taken"})
		}
		fiberlog.Error(fmt.Sprintf("create domain for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create domain"})
	}

	return c.Status(fiber.StatusCreated).JSON(domain)
}

// HandleDeleteDomain removes a domain owned by the caller.
func HandleDeleteDomain(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	domain, ok := loadOwnDomain(c, userCtx.UserID)
	if !ok {
		return nil
	}

	if err := repository.GetGlobalFactory().GetDomainRepository().Delete(domain.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete domain"})
	}
	return c.JSON(fiber.Map{"message": "Domain deleted"})
}

// HandleVerifyDomain marks a domain as verified and live. DNS ownership
// checking happens out of band; this endpoint records its outcome.
func HandleVerifyDomain(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	domain, ok := loadOwnDomain(c, userCtx.UserID)
	if !ok {
		return nil
	}

	domain.IsVerified = true
	domain.IsLive = true
	if err := repository.GetGlobalFactory().GetDomainRepository().Update(domain); err != nil {
		fiberlog.Error(fmt.Sprintf("verify domain %d: %v", domain.ID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to verify domain"})
	}
	return c.JSON(domain)
}

// connectionTargetOwned checks that the tagged connection target exists and
// belongs to the given user.
func connectionTargetOwned(domain *models.Domain, userID uint) (bool, error) {
	repo := repository.GetGlobalFactory().GetContentRepository()

	switch domain.ConnectedType {
	case models.CONNECTED_BRANDBOOK:
		brandbook, err := repo.GetBrandbook(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		return brandbook.ID == *domain.BrandbookID, nil
	case models.CONNECTED_DASHBOARD:
		dashboard, err := repo.GetDashboard(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		return dashboard.ID == *domain.DashboardID, nil
	case models.CONNECTED_LANDING_PAGE:
		page, err := repo.GetLandingPage(*domain.LandingPageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		return page.UserID == userID, nil
	}
	return false, nil
}

// loadOwnDomain fetches the :id domain and enforces ownership. When ok is
// false the response has already been written.
func loadOwnDomain(c *fiber.Ctx, userID uint) (*models.Domain, bool) {
	id := parseIDParam(c, "id")
	if id == 0 {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Domain not found"})
		return nil, false
	}

	domain, err := repository.GetGlobalFactory().GetDomainRepository().GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Domain not found"})
		} else {
			fiberlog.Error(fmt.Sprintf("load domain %d: %v", id, err))
			_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load domain"})
		}
		return nil, false
	}
	if domain.UserID != userID {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Domain not found"})
		return nil, false
	}
	return domain, true
}
