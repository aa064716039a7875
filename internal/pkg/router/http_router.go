package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/brandforgehq/brandforge/app/controllers"
	"github.com/brandforgehq/brandforge/internal/pkg/middleware"
	"github.com/brandforgehq/brandforge/internal/pkg/oauth"
	"github.com/brandforgehq/brandforge/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// OAuth flow lives outside /api; goth keeps its own session store here
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
