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

	appmfg "github.com/jhoicas/Perfumeria-api/internal/application/manufacturing"
	infraai "github.com/jhoicas/Perfumeria-api/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/Perfumeria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Perfumeria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Perfumeria-api/internal/interfaces/http"
	"github.com/jhoicas/Perfumeria-api/pkg/config"
	"github.com/jhoicas/Perfumeria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("enforce_stock_on_start", cfg.Manufacturing.EnforceStockOnStart).
		Str("retail_markup", cfg.Manufacturing.RetailMarkup.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orderRepo := postgres.NewManufacturingOrderRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	levelRepo := postgres.NewInventoryLevelRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	settings := appmfg.Settings{
		EnforceStockOnStart: cfg.Manufacturing.EnforceStockOnStart,
		RetailMarkup:        cfg.Manufacturing.RetailMarkup,
	}

	mfgLog := log.Component("manufacturing")
	orderUC := appmfg.NewOrderUseCase(orderRepo, productRepo, settings, mfgLog)
	planningUC := appmfg.NewPlanningUseCase(orderRepo, productRepo, levelRepo, settings)
	lifecycleUC := appmfg.NewLifecycleUseCase(txRunner, settings, mfgLog)
	catalogUC := appmfg.NewCatalogUseCase(productRepo, branchRepo, levelRepo)

	// PDF: hoja de lote para planta
	batchSheetUC := appmfg.NewBatchSheetUseCase(planningUC, branchRepo, infrapdf.NewMarotoBatchSheetGenerator())

	suggester, err := infraai.NewFormulaSuggester(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de IA")
	}
	suggestionUC := appmfg.NewSuggestionUseCase(suggester, productRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 20, // la sugerencia IA puede tardar hasta 10 s
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Perfumería API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Orders:     orderUC,
		Planning:   planningUC,
		Lifecycle:  lifecycleUC,
		BatchSheet: batchSheetUC,
		Catalog:    catalogUC,
		Suggestion: suggestionUC,
		JWTSecret:  cfg.JWT.Secret,
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
