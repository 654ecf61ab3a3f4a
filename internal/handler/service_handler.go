package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/repository"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/service"
)

// ServiceHandler handles HTTP requests for the service catalog
type ServiceHandler struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewServiceHandler creates a new service catalog handler
func NewServiceHandler(catalog service.CatalogService, logger *slog.Logger) *ServiceHandler {
	return &ServiceHandler{
		catalog: catalog,
		logger:  logger,
	}
}

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	Price           float64 `json:"price" binding:"gte=0"`
}

// Create handles POST /services
func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid service request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. Name, duration_minutes (> 0) and price (>= 0) required."})
		return
	}

	created, err := h.catalog.CreateService(req.Name, req.Description, req.DurationMinutes, req.Price)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles GET /services; only active services are returned
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.catalog.ListActiveServices()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

// Deactivate handles DELETE /services/:id as a soft delete
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service id"})
		return
	}

	deactivated, err := h.catalog.DeactivateService(uint(id))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service deactivated successfully",
		"service": deactivated,
	})
}

// handleServiceError maps service errors to HTTP responses
func (h *ServiceHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidServiceInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name must be non-empty, duration > 0 and price >= 0"})
	case errors.Is(err, repository.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Service does not exist"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
