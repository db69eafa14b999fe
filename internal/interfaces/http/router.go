package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Eddiexian/AI-Pr/internal/application/auth"
	"github.com/Eddiexian/AI-Pr/internal/application/occupancy"
	"github.com/Eddiexian/AI-Pr/internal/application/usecase"
	"github.com/Eddiexian/AI-Pr/internal/domain/entity"
	"github.com/Eddiexian/AI-Pr/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	LayoutUC    *usecase.LayoutUseCase
	ComponentUC *usecase.ComponentUseCase
	OccupancyUC *occupancy.UseCase
	Tokens      *jwt.Signer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token); lectura para cualquier rol
	protected := api.Group("", AuthMiddleware(deps.Tokens))
	canEdit := RequireRole(entity.RoleMaintainer)
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/verify", authHandler.Verify)
	protected.Get("/auth/users", adminOnly, authHandler.ListUsers)
	protected.Put("/auth/users/:id/role", adminOnly, authHandler.UpdateRole)

	layoutHandler := NewLayoutHandler(deps.LayoutUC, deps.ComponentUC)
	protected.Get("/layouts", layoutHandler.List)
	protected.Post("/layouts", canEdit, layoutHandler.Create)
	protected.Get("/layouts/:id", layoutHandler.Get)
	protected.Put("/layouts/:id", canEdit, layoutHandler.Update)
	protected.Delete("/layouts/:id", canEdit, layoutHandler.Delete)
	protected.Post("/layouts/:id/components", canEdit, layoutHandler.AddComponent)
	protected.Put("/components/:id", canEdit, layoutHandler.UpdateComponent)
	protected.Delete("/components/:id", canEdit, layoutHandler.DeleteComponent)

	dataHandler := NewDataHandler(deps.OccupancyUC)
	data := protected.Group("/data")
	data.Post("/counts", dataHandler.Counts)
	data.Post("/cassette-counts", dataHandler.CassetteCounts)
	data.Post("/wip", dataHandler.WIP)
	data.Post("/locate", dataHandler.Locate)
}
