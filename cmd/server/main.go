package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hotel-desk/internal/adapters/http/middleware"
	"hotel-desk/internal/adapters/http/routes"
	"hotel-desk/internal/adapters/persistence/models"
	"hotel-desk/internal/adapters/persistence/repositories"
	"hotel-desk/internal/config"
	"hotel-desk/internal/core/services"
	"hotel-desk/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	_ "hotel-desk/docs" // Swagger docs
)

// @title Hotel Desk API
// @version 1.0
// @description Front desk API for rooms, guests, reservations and staff accounts.

// @contact.name API Support
// @contact.email support@hotel.local

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	log, err := logger.New("HOTEL-DESK", os.Getenv("HOTEL_APP_MODE") != "prod")
	if err != nil {
		fmt.Println("Error constructing logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		if errors.Is(err, config.ErrHelpWanted) {
			fmt.Println(err)
			return
		}
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.Infow("startup", "config", cfg.String())

	// Connect to database
	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer config.CloseDatabase(db)

	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Infow("startup", "status", "database migration completed")

	if err := config.MigrateManagerRoles(db, log); err != nil {
		return fmt.Errorf("migrating manager roles: %w", err)
	}

	if err := config.NewSeeder(db, cfg.Seed, cfg.JWT.BcryptCost, log).Run(); err != nil {
		log.Warnw("startup", "status", "seeding failed", "err", err)
	}

	svc := services.NewRegistry(repositories.NewStore(db), cfg, log)

	if cfg.Cron.Enabled {
		cronService := services.NewCronService(svc.Dashboard, svc.Auth, log.Named("cron"))
		if err := cronService.Register(cfg.Cron.SnapshotSpec, cfg.Cron.PurgeSpec); err != nil {
			return fmt.Errorf("registering cron jobs: %w", err)
		}
		cronService.Start()
		defer cronService.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Hotel Desk API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, db, svc, cfg)

	go gracefulShutdown(app, log)

	log.Infow("startup", "status", "server starting", "port", cfg.Port, "mode", cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log *zap.SugaredLogger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Infow("shutdown", "status", "shutting down server", "signal", sig.String())
	if err := app.Shutdown(); err != nil {
		log.Errorw("shutdown", "ERROR", err)
	}
	log.Infow("shutdown", "status", "server stopped")
}
