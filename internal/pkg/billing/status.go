package billing

import (
	"strings"

	"github.com/brandforgehq/brandforge/app/models"
)

// normalizeStatus maps arbitrary provider status strings onto the local
// subscription status domain.
func normalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "active", "trialing", "past_due":
		return models.SUBSCRIPTION_ACTIVE
	case "canceled", "cancelled":
		return models.SUBSCRIPTION_CANCELLED
	default:
		return models.SUBSCRIPTION_EXPIRED
	}
}

// isEntitlingStatus reports whether the provider status grants the plan.
func isEntitlingStatus(status string) bool {
	return normalizeStatus(status) == models.SUBSCRIPTION_ACTIVE
}
