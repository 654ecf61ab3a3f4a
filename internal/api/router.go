package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/handler"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	serviceHandler *handler.ServiceHandler,
	appointmentHandler *handler.AppointmentHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter middleware.RateLimiter,
	logger *slog.Logger,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.Use(middleware.RequestID())

	// Public routes
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes (public, throttled)
	authGroup := r.Group("/api/v1/auth")
	authGroup.Use(middleware.ThrottleAuth(rateLimiter, logger))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// Catalog: listing is public, mutations are admin-only
	r.GET("/api/v1/services", serviceHandler.List)

	admin := r.Group("/api/v1")
	admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	{
		admin.POST("/services", serviceHandler.Create)
		admin.DELETE("/services/:id", serviceHandler.Deactivate)
	}

	// Booking routes (authenticated)
	api := r.Group("/api/v1")
	api.Use(authMiddleware.RequireAuth())
	{
		api.POST("/appointments", appointmentHandler.Create)
		api.DELETE("/appointments/:id", appointmentHandler.Cancel)
		api.GET("/my-appointments", appointmentHandler.ListMine)
	}

	return r
}
