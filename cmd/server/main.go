package main

import (
	"fmt"
	"os"

	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/api"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/config"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/repository"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/service"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/handler"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/logger"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/middleware"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting booking API...",
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	db, err := database.Connect(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	// 5. Initialize Services
	authService := service.NewAuthService(userRepo, cfg, appLogger)
	catalogService := service.NewCatalogService(serviceRepo, appLogger)
	bookingService := service.NewBookingService(appointmentRepo, serviceRepo, appLogger)

	// 6. Initialize Handlers & Middleware
	authHandler := handler.NewAuthHandler(authService, appLogger)
	serviceHandler := handler.NewServiceHandler(catalogService, appLogger)
	appointmentHandler := handler.NewAppointmentHandler(bookingService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(authService, appLogger)

	// 7. Initialize Rate Limiter
	rateLimiter, err := middleware.NewRateLimiter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op rate limiter", "error", err)
		rateLimiter = middleware.NewNoOpRateLimiter(appLogger)
	}
	defer rateLimiter.Close()

	// 8. Setup Router
	r := api.SetupRouter(authHandler, serviceHandler, appointmentHandler, authMiddleware, rateLimiter, appLogger)

	// 9. Start HTTP Server
	addr := fmt.Sprintf(":%s", cfg.ApiServicePort)
	appLogger.Info("🌍 [Go] HTTP Server running on port...", "port", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
