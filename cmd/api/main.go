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
	"github.com/jhoicas/mrp-api/docs"
	"github.com/jhoicas/mrp-api/internal/application/auth"
	"github.com/jhoicas/mrp-api/internal/application/planning"
	"github.com/jhoicas/mrp-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/mrp-api/internal/infrastructure/pdf"
	"github.com/jhoicas/mrp-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/mrp-api/internal/interfaces/http"
	"github.com/jhoicas/mrp-api/pkg/config"
	"github.com/jhoicas/mrp-api/pkg/logger"
)

// @title        MRP API
// @version      1.0
// @description  Motor de planeación de requerimientos de materiales: explosión de BOM, neteo y órdenes planificadas.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Int("mrp_workers", cfg.MRP.Workers).
		Int("mrp_horizon_days", cfg.MRP.HorizonDays).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.MRP.Workers)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	materialRepo := postgres.NewMaterialRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	workOrderRepo := postgres.NewWorkOrderRepository(pool)
	supplyRepo := postgres.NewSupplyRepository(pool)
	plannedOrderRepo := postgres.NewPlannedOrderRepository(pool)
	runRepo := postgres.NewMRPRunRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	appMetrics := metrics.New("mrp")

	resolver := planning.NewBOMResolver(bomRepo, workOrderRepo, cfg.MRP.MaxBOMDepth)
	demandBuilder := planning.NewDemandBuilder(workOrderRepo, materialRepo, resolver)
	calculator := planning.NewNetRequirementsCalculator(inventoryRepo, supplyRepo, log.Zerolog())
	orchestrator := planning.NewOrchestrator(
		materialRepo, runRepo, txRunner,
		demandBuilder, calculator, planning.NewPlannedOrderGenerator(),
		appMetrics, log.Zerolog(),
	)

	// PDF: reporte de corrida con órdenes planificadas y materiales omitidos
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	queryUC := planning.NewQueryUseCase(
		runRepo, plannedOrderRepo, materialRepo, workOrderRepo,
		demandBuilder, calculator, resolver, pdfGenerator,
	)
	plannedOrderUC := planning.NewPlannedOrderUseCase(plannedOrderRepo)
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Una corrida responde en la misma petición: el WriteTimeout cubre el timeout de corrida.
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.MRP.RunTimeout() + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(appMetrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MRP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name, "db": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Orchestrator:   orchestrator,
		Query:          queryUC,
		PlannedOrderUC: plannedOrderUC,
		AuthUC:         authUC,
		RunDefaults: planning.RunOptions{
			HorizonDays: cfg.MRP.HorizonDays,
			Workers:     cfg.MRP.Workers,
			Timeout:     cfg.MRP.RunTimeout(),
		},
		MetricsHandler: appMetrics.Handler(),
		JWTSecret:      cfg.JWT.Secret,
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
