package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/models"
)

// ServiceRepository defines the interface for service catalog data operations
type ServiceRepository interface {
	Create(service *models.Service) error
	FindByID(id uint) (*models.Service, error)
	ListActive() ([]models.Service, error)
	Deactivate(id uint) (*models.Service, error)
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository instance
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

// FindByID returns the row whether it is active or not. Booking needs
// the inactive rows too so it can tell "never existed" apart from
// "deactivated" without a second query.
func (r *serviceRepository) FindByID(id uint) (*models.Service, error) {
	var service models.Service
	err := r.db.First(&service, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) ListActive() ([]models.Service, error) {
	var services []models.Service
	err := r.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

// Deactivate flips is_active to false and returns the updated row.
// The row is never physically deleted.
func (r *serviceRepository) Deactivate(id uint) (*models.Service, error) {
	var service models.Service
	err := r.db.First(&service, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if err := r.db.Model(&service).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// Repository errors
var (
	ErrServiceNotFound = errors.New("service not found")
)
