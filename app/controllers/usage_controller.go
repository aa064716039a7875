package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/database"
	"github.com/brandforgehq/brandforge/internal/pkg/entitlements"
	"github.com/brandforgehq/brandforge/internal/pkg/usage"
	"github.com/brandforgehq/brandforge/internal/pkg/usercontext"
)

// HandleGetUsage returns the caller's current-month counters and plan limits.
func HandleGetUsage(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	plan := entitlements.NormalizePlan(userCtx.Plan)
	usageSvc := usage.NewService(database.GetDB(), repository.GetGlobalFactory().GetUsageRepository())

	current, err := usageSvc.Current(userCtx.UserID, plan)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("load usage for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load usage"})
	}

	return c.JSON(fiber.Map{
		"plan":                        current.Plan,
		"monthly_generations_allowed": current.MonthlyGenerationsAllowed,
		"monthly_generations_used":    current.MonthlyGenerationsUsed,
		"remaining_this_month":        current.RemainingThisMonth(),
		"total_generations_used":      current.TotalGenerationsUsed,
		"total_cost_incurred":         current.TotalCostIncurred,
		"limit_reached":               current.LimitReached,
		"last_reset_at":               formatTimePtr(current.LastResetAt),
		"generation_cost":             entitlements.GenerationCost(plan),
	})
}

// HandleGetUsageHistory returns the append-only usage log, newest first.
func HandleGetUsageHistory(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	offset, limit := parsePagination(c)
	history, err := repository.GetGlobalFactory().GetUsageRepository().ListHistory(userCtx.UserID, offset, limit)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("load usage history for user %d: %v", userCtx.UserID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load usage history"})
	}

	return c.JSON(fiber.Map{"history": history, "offset": offset, "limit": limit})
}
