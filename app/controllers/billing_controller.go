package controllers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/brandforgehq/brandforge/internal/pkg/billing"
	"github.com/brandforgehq/brandforge/internal/pkg/database"
	"github.com/brandforgehq/brandforge/internal/pkg/env"
)

// HandleBillingWebhook ingests billing provider events. Deliveries are
// signature-checked, deduped per event id and applied idempotently.
func HandleBillingWebhook(c *fiber.Ctx) error {
	secret := env.GetEnv("BILLING_WEBHOOK_SECRET", "")
	if secret == "" {
		fiberlog.Warn("BILLING_WEBHOOK_SECRET not set; rejecting webhook")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "not_configured", "message": "Billing webhooks are not configured"})
	}

	payload := c.Body()
	if !billing.VerifyWebhookSignature(payload, c.Get("X-Webhook-Signature"), secret) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid webhook signature"})
	}

	var event billing.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid webhook payload"})
	}

	svc := billing.NewServiceFromDB(database.GetDB())

	if svc.AlreadyProcessed(event.EventID) {
		return c.JSON(fiber.Map{"message": "Event already processed"})
	}

	if err := svc.HandleEvent(event); err != nil {
		fiberlog.Error(fmt.Sprintf("billing webhook %s: %v", event.EventID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to process event"})
	}
	svc.MarkProcessed(event.EventID)

	return c.JSON(fiber.Map{"message": "Event processed"})
}
