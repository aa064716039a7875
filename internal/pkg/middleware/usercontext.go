package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/entitlements"
	"github.com/brandforgehq/brandforge/internal/pkg/session"
	"github.com/brandforgehq/brandforge/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the caller's session into a request-scoped
// UserContext. Every request passes through here; anonymous requests get the
// default context.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Goth keeps its own fiber session store on the OAuth routes; skip our
	// app session there to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	store := session.GetSessionStore()
	if store == nil {
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	sess, err := store.Get(c)
	if err != nil {
		// On error: treat as anonymous
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	email := session.GetSessionValue(c, usercontext.KeyUserEmail)
	name := session.GetSessionValue(c, "user_name")

	// Plan comes from the invalidatable cache, not the session: the billing
	// webhook drops the cached entry on subscription changes, so an upgrade
	// is honored on the next request. On a miss, re-derive from the newest
	// entitling subscription.
	uid := userID.(uint)
	plan := string(entitlements.PlanFree)
	if cached, ok := entitlements.CachedPlan(uid); ok {
		plan = string(cached)
	} else {
		repo := repository.GetGlobalFactory().GetSubscriptionRepository()
		if sub, err := repo.GetActiveByUserID(uid); err == nil && sub != nil {
			plan = string(entitlements.NormalizePlan(sub.Plan))
		}
		entitlements.CachePlan(uid, entitlements.Plan(plan))
	}

	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:     uid,
		Email:      email,
		Name:       name,
		IsLoggedIn: true,
		Plan:       plan,
	})

	return c.Next()
}
