package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/print3d-api/internal/application/auth"
	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/application/usecase"
	"github.com/jhoicas/print3d-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/print3d-api/internal/infrastructure/pdf"
	"github.com/jhoicas/print3d-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/print3d-api/internal/interfaces/http"
	"github.com/jhoicas/print3d-api/pkg/config"
	"github.com/jhoicas/print3d-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	medium, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer func() {
		if err := medium.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()

	m := metrics.NewPersistenceMetrics()
	sess := session.New(medium.Store, cfg.Storage.Namespace, log, session.WithRecorder(m))
	if err := sess.Open(ctx); err != nil {
		log.Fatal().Err(err).Msg("abrir sesión")
	}
	defer sess.Close()

	authUC := auth.NewAuthUseCase(sess, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	printUC := usecase.NewPrintUseCase(sess, usecase.Pricing{
		EnergyKWh:     cfg.Pricing.EnergyPricePerKWh,
		MarginPercent: cfg.Pricing.MarginPercent,
	})
	// PDF: presupuesto con datos de la empresa y QR PIX
	quoteUC := usecase.NewQuoteUseCase(sess, infrapdf.NewMarotoQuoteGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log, m))

	// Swagger UI: http://localhost:<port>/docs (solo si el archivo existe)
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    "Print3D API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:   sess,
		AuthUC:    authUC,
		PrintUC:   printUC,
		QuoteUC:   quoteUC,
		Settings:  usecase.NewSettingsUseCase(sess),
		DataUC:    usecase.NewDataUseCase(sess, log),
		ReportUC:  usecase.NewReportUseCase(sess, medium.Store, cfg.Storage.Namespace, log),
		Metrics:   m.Handler(),
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
