package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/repository"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/service"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/middleware"
)

// AppointmentHandler handles HTTP requests for booking
type AppointmentHandler struct {
	booking service.BookingService
	logger  *slog.Logger
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(booking service.BookingService, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		booking: booking,
		logger:  logger,
	}
}

type CreateAppointmentRequest struct {
	ServicesID uint   `json:"services_id" binding:"required"`
	Date       string `json:"appointments_date" binding:"required"`
	Time       string `json:"appointments_time" binding:"required"`
}

// Create handles POST /appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		h.logger.Error("❌ [Handler] User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("❌ [Handler] Invalid appointment request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. services_id, appointments_date and appointments_time required."})
		return
	}

	appointment, err := h.booking.ProposeAppointment(userID, req.ServicesID, req.Date, req.Time)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment booked successfully",
		"appointment": appointment,
	})
}

// ListMine handles GET /my-appointments
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		h.logger.Error("❌ [Handler] User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	views, err := h.booking.ListOwnAppointments(userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// Cancel handles DELETE /appointments/:id; callers can only cancel
// their own appointments
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		h.logger.Error("❌ [Handler] User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
		return
	}

	appointment, err := h.booking.CancelAppointment(uint(id), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Appointment cancelled successfully",
		"appointment": appointment,
	})
}

// callerID reads the authenticated user's id set by RequireAuth
func callerID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

// handleServiceError maps service errors to HTTP responses
func (h *AppointmentHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDateTime):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD and time must be HH:MM"})
	case errors.Is(err, service.ErrOutOfBusinessHours):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Appointments are only available Monday to Friday, 09:00 to 18:00"})
	case errors.Is(err, service.ErrInThePast):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot book a slot in the past"})
	case errors.Is(err, repository.ErrServiceNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Service not found"})
	case errors.Is(err, service.ErrSlotTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "This slot is already reserved"})
	case errors.Is(err, repository.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
	default:
		h.logger.Error("❌ [Handler] Internal server error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
