package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/mrp-api/internal/application/auth"
	"github.com/jhoicas/mrp-api/internal/application/planning"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Orchestrator   *planning.Orchestrator
	Query          *planning.QueryUseCase
	PlannedOrderUC *planning.PlannedOrderUseCase
	// AuthUC habilita /api/auth si no es nil.
	AuthUC         *auth.AuthUseCase
	RunDefaults    planning.RunOptions
	// MetricsHandler se monta en /metrics (sin auth) si no es nil.
	MetricsHandler http.Handler
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	if deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC)
		authGroup := api.Group("/auth")
		authGroup.Post("/login", authHandler.Login)
		authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(RoleAdmin), authHandler.Register)
	}

	// Rutas protegidas (requieren Bearer Token)
	mrpGroup := api.Group("/mrp", AuthMiddleware(deps.JWTSecret))
	mrpHandler := NewMRPHandler(deps.Orchestrator, deps.Query, deps.RunDefaults)

	mrpGroup.Post("/runs", RequireRole(RoleAdmin, RolePlanner), mrpHandler.RunMRP)
	mrpGroup.Get("/runs", mrpHandler.ListRuns)
	mrpGroup.Get("/runs/:id", mrpHandler.GetRun)
	mrpGroup.Get("/runs/:id/planned-orders", mrpHandler.ListPlannedOrders)
	mrpGroup.Get("/runs/:id/report", mrpHandler.RunReport)
	mrpGroup.Get("/materials/:id/net-requirements", mrpHandler.NetRequirements)
	mrpGroup.Get("/work-orders/:id/explosion", mrpHandler.ExplodeWorkOrder)

	// Firme y conversión: los aplican compras y producción, nunca el motor.
	plannedHandler := NewPlannedOrderHandler(deps.PlannedOrderUC)
	planned := mrpGroup.Group("/planned-orders", RequireRole(RoleAdmin, RolePlanner, RoleBuyer))
	planned.Post("/:id/firm", plannedHandler.Firm)
	planned.Post("/:id/convert", plannedHandler.Convert)
}
