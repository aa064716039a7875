package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/brandforgehq/brandforge/app/controllers"
	"github.com/brandforgehq/brandforge/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	// Public routes
	api.Post("/auth/register", controllers.HandleRegister)
	api.Post("/auth/login", controllers.HandleLogin)
	api.Post("/auth/logout", controllers.HandleLogout)
	api.Get("/styleguide/:userId", controllers.HandleGetStyleguide)
	api.Get("/styleguide-templates", controllers.HandleListStyleguideTemplates)
	api.Post("/billing/webhook", controllers.HandleBillingWebhook)

	// Authenticated routes
	auth := api.Group("", middleware.RequireAPIAuth)
	auth.Get("/auth/me", controllers.HandleGetMe)

	auth.Post("/styleguide", controllers.HandleSaveStyleguide)
	auth.Post("/styleguide-chat", controllers.HandleStyleguideChat)

	auth.Get("/onboarding", controllers.HandleGetOnboarding)
	auth.Put("/onboarding", controllers.HandleSaveOnboarding)

	auth.Get("/projects", controllers.HandleListProjects)
	auth.Post("/projects", controllers.HandleCreateProject)
	auth.Get("/projects/:id", controllers.HandleGetProject)
	auth.Patch("/projects/:id", controllers.HandleUpdateProject)
	auth.Delete("/projects/:id", controllers.HandleDeleteProject)

	auth.Post("/ai-images", controllers.HandleCreateAiImage)
	auth.Get("/ai-images", controllers.HandleListAiImages)
	auth.Get("/ai-images/:uuid/status", controllers.HandleAiImageStatus)
	auth.Post("/ai-images/:uuid/select", controllers.HandleSelectAiImage)

	auth.Post("/selfies", controllers.HandleUploadSelfie)
	auth.Get("/selfies", controllers.HandleListSelfies)
	auth.Post("/models", controllers.HandleCreateUserModel)
	auth.Get("/models/me", controllers.HandleGetMyModel)
	auth.Post("/models/me/generate", controllers.HandleGenerateWithModel)
	auth.Get("/generated-images", controllers.HandleListGeneratedImages)
	auth.Post("/generated-images/:uuid/select", controllers.HandleSelectGeneratedImage)

	auth.Get("/usage", controllers.HandleGetUsage)
	auth.Get("/usage/history", controllers.HandleGetUsageHistory)

	auth.Get("/brandbook", controllers.HandleGetBrandbook)
	auth.Put("/brandbook", controllers.HandleSaveBrandbook)
	auth.Post("/brandbook/publish", controllers.HandlePublishBrandbook)
	auth.Get("/dashboard", controllers.HandleGetDashboard)
	auth.Put("/dashboard", controllers.HandleSaveDashboard)
	auth.Post("/dashboard/publish", controllers.HandlePublishDashboard)

	auth.Get("/landing-pages", controllers.HandleListLandingPages)
	auth.Post("/landing-pages", controllers.HandleCreateLandingPage)
	auth.Patch("/landing-pages/:id", controllers.HandleUpdateLandingPage)
	auth.Delete("/landing-pages/:id", controllers.HandleDeleteLandingPage)
	auth.Post("/landing-pages/:id/publish", controllers.HandlePublishLandingPage)

	auth.Get("/domains", controllers.HandleListDomains)
	auth.Post("/domains", controllers.HandleCreateDomain)
	auth.Delete("/domains/:id", controllers.HandleDeleteDomain)
	auth.Post("/domains/:id/verify", controllers.HandleVerifyDomain)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
