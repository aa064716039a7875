package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	gothfiber "github.com/shareed2k/goth_fiber"
	"gorm.io/gorm"

	"github.com/brandforgehq/brandforge/app/models"
	"github.com/brandforgehq/brandforge/app/repository"
	"github.com/brandforgehq/brandforge/internal/pkg/entitlements"
	"github.com/brandforgehq/brandforge/internal/pkg/session"
	"github.com/brandforgehq/brandforge/internal/pkg/usercontext"
)

// HandleRegister creates a local-credentials account and opens a session.
func HandleRegister(c *fiber.Ctx) error {
	var req struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Password must be at least 8 characters"})
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	if existing, err := userRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": "An account with this email already exists"})
	}

	user, err := models.CreateUser(req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid registration data"})
	}

	if err := userRepo.Create(user); err != nil {
		fiberlog.Error(fmt.Sprintf("register %s: %v", req.Email, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create account"})
	}

	if err := openSession(c, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create session"})
	}

	return c.Status(fiber.StatusCreated).JSON(accountResponse(user))
}

// HandleLogin verifies local credentials and opens a session.
func HandleLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		// Same response for unknown email and wrong password
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid email or password"})
	}
	if !user.IsActive() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Account is not active"})
	}

	if err := openSession(c, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create session"})
	}

	now := time.Now()
	user.LastLoginAt = &now
	_ = userRepo.Update(user)

	return c.JSON(accountResponse(user))
}

// HandleLogout destroys the caller's session.
func HandleLogout(c *fiber.Ctx) error {
	store := session.GetSessionStore()
	if store != nil {
		if sess, err := store.Get(c); err == nil {
			_ = sess.Destroy()
		}
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// HandleGetMe returns account information for the authenticated caller.
func HandleGetMe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing or invalid authentication"})
	}

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load user"})
	}

	resp := accountResponse(user)
	resp["plan"] = userCtx.Plan
	return c.JSON(resp)
}

// HandleOAuthCallback completes the provider flow, creating the account on
// first sign-in, and opens an app session.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": fmt.Sprintf("OAuth failed: %v", err)})
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()

	user, err := userRepo.GetByProviderAccount(u.Provider, u.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to look up account"})
		}
		// Optional email match before creating a fresh account
		if u.Email != "" {
			if existing, err := userRepo.GetByEmail(u.Email); err == nil {
				existing.Provider = u.Provider
				existing.ProviderAccountID = u.UserID
				if err := userRepo.Update(existing); err != nil {
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to link account"})
				}
				user = existing
			}
		}
		if user == nil {
			email := u.Email
			if email == "" {
				// Ensure unique, non-empty email to satisfy the unique index
				email = fmt.Sprintf("%s_%s@%s.oauth.local", u.Provider, u.UserID, u.Provider)
			}
			user = &models.User{
				Email:             email,
				FirstName:         u.FirstName,
				LastName:          u.LastName,
				AvatarURL:         u.AvatarURL,
				Provider:          u.Provider,
				ProviderAccountID: u.UserID,
				Status:            models.STATUS_ACTIVE,
			}
			if err := userRepo.Create(user); err != nil {
				fiberlog.Error(fmt.Sprintf("oauth create user %s/%s: %v", u.Provider, u.UserID, err))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create account"})
			}
		}
	}

	if err := openSession(c, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create session"})
	}

	now := time.Now()
	user.LastLoginAt = &now
	_ = userRepo.Update(user)

	return c.Redirect("/", fiber.StatusSeeOther)
}

// openSession stores identity in the app session and primes the plan cache.
// The plan itself is never session state; the billing webhook invalidates the
// cache when a subscription changes.
func openSession(c *fiber.Ctx, user *models.User) error {
	store := session.GetSessionStore()
	if store == nil {
		return fmt.Errorf("session store not initialized")
	}
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUserEmail, user.Email)
	sess.Set("user_name", user.FullName())

	plan := entitlements.PlanFree
	subRepo := repository.GetGlobalFactory().GetSubscriptionRepository()
	if sub, err := subRepo.GetActiveByUserID(user.ID); err == nil && sub != nil {
		plan = entitlements.NormalizePlan(sub.Plan)
	}
	entitlements.CachePlan(user.ID, plan)

	return sess.Save()
}

func accountResponse(user *models.User) fiber.Map {
	return fiber.Map{
		"id":            user.ID,
		"email":         user.Email,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"avatar_url":    user.AvatarURL,
		"status":        user.Status,
		"created_at":    user.CreatedAt.UTC().Format(time.RFC3339),
		"last_login_at": formatTimePtr(user.LastLoginAt),
	}
}
