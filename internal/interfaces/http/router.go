package http

import (
	stdhttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/print3d-api/internal/application/auth"
	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/application/usecase"
	"github.com/jhoicas/print3d-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session   *session.Session
	AuthUC    *auth.AuthUseCase
	PrintUC   *usecase.PrintUseCase
	QuoteUC   *usecase.QuoteUseCase
	Settings  *usecase.SettingsUseCase
	DataUC    *usecase.DataUseCase
	ReportUC  *usecase.ReportUseCase
	Metrics   stdhttp.Handler // opcional; expuesto en /metrics
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (register/login públicos)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret), authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), RequireSessionUser(deps.Session), authHandler.Me)

	// Usuarios (solo admin). /summary antes de /:username.
	users := api.Group("/users",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin),
		RequireDirectoryRole(deps.Session, entity.RoleAdmin),
	)
	userHandler := NewUserHandler(deps.AuthUC, deps.ReportUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/summary", userHandler.Summary)
	users.Put("/:username", userHandler.Update)
	users.Patch("/:id/suspension", userHandler.Suspend)

	// Rutas protegidas: token válido y del usuario con sesión abierta.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireSessionUser(deps.Session))

	NewCollectionHandler(usecase.NewCollectionUseCase(deps.Session, usecase.Printers)).Mount(protected)
	NewCollectionHandler(usecase.NewCollectionUseCase(deps.Session, usecase.Filaments)).Mount(protected)
	NewCollectionHandler(usecase.NewCollectionUseCase(deps.Session, usecase.Accessories)).Mount(protected)
	NewCollectionHandler(usecase.NewCollectionUseCase(deps.Session, usecase.Packaging)).Mount(protected)
	NewCollectionHandler(usecase.NewCollectionUseCase(deps.Session, usecase.Categories)).Mount(protected)

	printHandler := NewPrintHandler(deps.PrintUC, deps.QuoteUC)
	prints := protected.Group("/prints")
	prints.Post("/", printHandler.Register)
	prints.Get("/", printHandler.History)
	prints.Get("/:id", printHandler.GetByID)
	prints.Get("/:id/quote", printHandler.QuotePDF)
	protected.Post("/stock/consume", printHandler.ConsumeStock)

	settingsHandler := NewSettingsHandler(deps.Settings, deps.DataUC)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", settingsHandler.Update)
	protected.Get("/catalog", settingsHandler.Export)
	protected.Put("/catalog", settingsHandler.Import)
	protected.Delete("/catalog", settingsHandler.Reset)
}
