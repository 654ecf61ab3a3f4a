package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/api"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/config"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/models"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/repository"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/service"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/handler"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupApp wires the whole stack over an in-memory SQLite database,
// the same way cmd/server does over PostgreSQL.
func setupApp(t *testing.T) *gin.Engine {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Service{}, &models.Appointment{}))
	require.NoError(t, db.Exec(`CREATE UNIQUE INDEX idx_appointments_slot
		ON appointments (appointments_date, appointments_time)
		WHERE status <> 'CANCELLED'`).Error)

	cfg := &config.Config{
		JWTSecret:       "test_secret",
		TokenExpiration: 28800,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	authService := service.NewAuthService(userRepo, cfg, log)
	catalogService := service.NewCatalogService(serviceRepo, log)
	bookingService := service.NewBookingService(appointmentRepo, serviceRepo, log)

	// Seed an administrator; registration only hands out CLIENT
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(&models.User{
		Name:     "Admin",
		Email:    "admin@x.com",
		Password: string(hash),
		Role:     models.RoleAdmin,
	}))

	return api.SetupRouter(
		handler.NewAuthHandler(authService, log),
		handler.NewServiceHandler(catalogService, log),
		handler.NewAppointmentHandler(bookingService, log),
		middleware.NewAuthMiddleware(authService, log),
		middleware.NewNoOpRateLimiter(log),
		log,
	)
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewBuffer(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine, email, password string) string {
	w := doJSON(router, "POST", "/api/v1/auth/login", "", map[string]any{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// nextWeekday returns a date 7-13 days out falling on the given
// weekday, so booked slots are always in the future
func nextWeekday(day time.Weekday) string {
	now := time.Now()
	ahead := (int(day)-int(now.Weekday())+7)%7 + 7
	return now.AddDate(0, 0, ahead).Format("2006-01-02")
}

func TestBookingFlow(t *testing.T) {
	router := setupApp(t)

	// Register Ana
	w := doJSON(router, "POST", "/api/v1/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@x.com", "password": "anapassword",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "ana@x.com")
	assert.NotContains(t, w.Body.String(), "anapassword")

	// Same email again is refused
	w = doJSON(router, "POST", "/api/v1/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@x.com", "password": "anapassword",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")

	anaToken := login(t, router, "ana@x.com", "anapassword")
	adminToken := login(t, router, "admin@x.com", "adminpass123")

	// Admin creates the Corte service
	w = doJSON(router, "POST", "/api/v1/services", adminToken, map[string]any{
		"name": "Corte", "description": "Corte de pelo", "duration_minutes": 30, "price": 15.00,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	// The listing includes it
	w = doJSON(router, "GET", "/api/v1/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Corte")

	// Ana books a Tuesday at 10:00
	tuesday := nextWeekday(time.Tuesday)
	w = doJSON(router, "POST", "/api/v1/appointments", anaToken, map[string]any{
		"services_id": created.ID, "appointments_date": tuesday, "appointments_time": "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// The same slot again is taken, whoever asks
	w = doJSON(router, "POST", "/api/v1/appointments", adminToken, map[string]any{
		"services_id": created.ID, "appointments_date": tuesday, "appointments_time": "10:00",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already reserved")

	// Sundays are closed
	w = doJSON(router, "POST", "/api/v1/appointments", anaToken, map[string]any{
		"services_id": created.ID, "appointments_date": nextWeekday(time.Sunday), "appointments_time": "10:00",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Monday to Friday")

	// Ana sees her appointment, joined with the service
	w = doJSON(router, "GET", "/api/v1/my-appointments", anaToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []models.AppointmentView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, tuesday, views[0].Date)
	assert.Equal(t, "10:00", views[0].Time)
	assert.Equal(t, "Corte", views[0].ServiceName)
	assert.Equal(t, 15.00, views[0].ServicePrice)
	assert.Equal(t, models.StatusPending, views[0].Status)

	// Cancelling frees the slot for rebooking
	w = doJSON(router, "DELETE", fmt.Sprintf("/api/v1/appointments/%d", views[0].ID), anaToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "POST", "/api/v1/appointments", adminToken, map[string]any{
		"services_id": created.ID, "appointments_date": tuesday, "appointments_time": "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCatalogAuthorization(t *testing.T) {
	router := setupApp(t)

	w := doJSON(router, "POST", "/api/v1/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@x.com", "password": "anapassword",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	anaToken := login(t, router, "ana@x.com", "anapassword")

	// A CLIENT cannot create services
	w = doJSON(router, "POST", "/api/v1/services", anaToken, map[string]any{
		"name": "Corte", "duration_minutes": 30, "price": 15.00,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Nor deactivate them
	w = doJSON(router, "DELETE", "/api/v1/services/1", anaToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Deactivating a missing service is a 404 for the admin
	adminToken := login(t, router, "admin@x.com", "adminpass123")
	w = doJSON(router, "DELETE", "/api/v1/services/999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSoftDeleteLaw(t *testing.T) {
	router := setupApp(t)
	adminToken := login(t, router, "admin@x.com", "adminpass123")

	w := doJSON(router, "POST", "/api/v1/services", adminToken, map[string]any{
		"name": "Tintura", "duration_minutes": 60, "price": 40.00,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(router, "DELETE", fmt.Sprintf("/api/v1/services/%d", created.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deactivated")

	// Gone from the listing, but bookings against it still resolve the
	// row, so the id keeps working as a foreign reference
	w = doJSON(router, "GET", "/api/v1/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Tintura")
}
