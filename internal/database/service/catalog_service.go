package service

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/models"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/repository"
)

// CatalogService defines the interface for service catalog business logic
type CatalogService interface {
	CreateService(name, description string, durationMinutes int, price float64) (*models.Service, error)
	ListActiveServices() ([]models.Service, error)
	DeactivateService(id uint) (*models.Service, error)
}

type catalogService struct {
	serviceRepo repository.ServiceRepository
	logger      *slog.Logger
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(serviceRepo repository.ServiceRepository, logger *slog.Logger) CatalogService {
	return &catalogService{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// CreateService validates the input server-side; the endpoint does not
// trust client-side form checks.
func (s *catalogService) CreateService(name, description string, durationMinutes int, price float64) (*models.Service, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidServiceInput
	}
	if durationMinutes <= 0 || price < 0 {
		return nil, ErrInvalidServiceInput
	}

	service := &models.Service{
		Name:            name,
		Description:     description,
		DurationMinutes: durationMinutes,
		Price:           price,
		IsActive:        true,
	}

	if err := s.serviceRepo.Create(service); err != nil {
		s.logger.Error("❌ [CatalogService] Failed to create service", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [CatalogService] Service created", "service_id", service.ID, "name", service.Name)
	return service, nil
}

func (s *catalogService) ListActiveServices() ([]models.Service, error) {
	services, err := s.serviceRepo.ListActive()
	if err != nil {
		s.logger.Error("❌ [CatalogService] Failed to list services", "error", err)
		return nil, err
	}
	return services, nil
}

// DeactivateService soft-deletes: the row stays, is_active flips.
func (s *catalogService) DeactivateService(id uint) (*models.Service, error) {
	service, err := s.serviceRepo.Deactivate(id)
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			s.logger.Warn("⚠️ [CatalogService] Service does not exist", "service_id", id)
			return nil, err
		}
		s.logger.Error("❌ [CatalogService] Failed to deactivate service", "error", err, "service_id", id)
		return nil, err
	}

	s.logger.Info("✅ [CatalogService] Service deactivated", "service_id", service.ID)
	return service, nil
}

// Service errors
var (
	ErrInvalidServiceInput = errors.New("service name, duration and price are invalid")
)
