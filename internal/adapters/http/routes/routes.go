package routes

import (
	"time"

	"hotel-desk/internal/adapters/http/handlers"
	"hotel-desk/internal/adapters/http/middleware"
	"hotel-desk/internal/config"
	"hotel-desk/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, svc *services.Registry, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg.AppMode)
	authHandler := handlers.NewAuthHandler(svc.Auth, svc.Managers, cfg)
	managerHandler := handlers.NewManagerHandler(svc.Managers)
	roomHandler := handlers.NewRoomHandler(svc.Rooms, svc.Reservations)
	reservationHandler := handlers.NewReservationHandler(svc.Reservations)
	guestHandler := handlers.NewGuestHandler(svc.Guests)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")
	api.Get("/health", healthHandler.HealthCheck)

	auth := middleware.AuthMiddleware(svc.Auth)

	setupAuthRoutes(api.Group("/auth"), authHandler, auth)

	// Everything below needs a logged in manager
	managerRoutes := api.Group("/managers", auth, middleware.ManagerOnly())
	setupManagerRoutes(managerRoutes, managerHandler)

	roomRoutes := api.Group("/rooms", auth, middleware.NoCacheHeaders())
	setupRoomRoutes(roomRoutes, roomHandler)

	reservationRoutes := api.Group("/reservations", auth, middleware.NoCacheHeaders())
	setupReservationRoutes(reservationRoutes, reservationHandler)

	guestRoutes := api.Group("/guests", auth, middleware.NoCacheHeaders())
	setupGuestRoutes(guestRoutes, guestHandler)

	dashboardRoutes := api.Group("/dashboard", auth, middleware.PrivateCacheHeaders(DashboardMaxAge))
	dashboardRoutes.Get("/stats", dashboardHandler.Stats)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, auth fiber.Handler) {
	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", auth, handler.Me)
	router.Post("/logout-all", auth, handler.LogoutAll)
}

// setupManagerRoutes configures staff account routes (MANAGER only)
func setupManagerRoutes(router fiber.Router, handler *handlers.ManagerHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Delete("/:id", handler.Delete)
}

// setupRoomRoutes configures room routes
func setupRoomRoutes(router fiber.Router, handler *handlers.RoomHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Add)
	router.Delete("/", handler.Remove)
	router.Get("/:id", handler.Get)
	router.Get("/:id/reservation", handler.CurrentReservation)
	router.Get("/:id/conflict", handler.CheckConflict)
	router.Put("/:id/status", handler.UpdateStatus)
	router.Post("/:id/checkout", handler.Checkout)
}

// setupReservationRoutes configures reservation routes
func setupReservationRoutes(router fiber.Router, handler *handlers.ReservationHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
}

// setupGuestRoutes configures guest routes
func setupGuestRoutes(router fiber.Router, handler *handlers.GuestHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/stats", handler.Stats)
	router.Get("/:id/reservations", handler.Reservations)
	router.Put("/:id", handler.Update)
}

// DashboardMaxAge is how long a browser may reuse dashboard statistics
const DashboardMaxAge = 30 * time.Second
