package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/models"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	Create(appointment *models.Appointment) error
	FindByID(id uint) (*models.Appointment, error)
	SlotTaken(date, timeOfDay string) (bool, error)
	ListViewsByUser(userID uint) ([]models.AppointmentView, error)
	Cancel(id, userID uint) (*models.Appointment, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository instance
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create inserts the appointment. The schema carries a partial unique
// index on (appointments_date, appointments_time) for non-cancelled
// rows, so an insert that loses a booking race surfaces as
// gorm.ErrDuplicatedKey; callers map that to a slot conflict.
func (r *appointmentRepository) Create(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

// SlotTaken reports whether a non-cancelled appointment already holds
// the exact (date, time) pair.
func (r *appointmentRepository) SlotTaken(date, timeOfDay string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Appointment{}).
		Where("appointments_date = ? AND appointments_time = ? AND status <> ?",
			date, timeOfDay, models.StatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListViewsByUser joins appointments with services and projects the
// denormalized listing view, most recent slot first.
func (r *appointmentRepository) ListViewsByUser(userID uint) ([]models.AppointmentView, error) {
	var views []models.AppointmentView
	err := r.db.Model(&models.Appointment{}).
		Select(`appointments.id,
			appointments.appointments_date AS date,
			appointments.appointments_time AS time,
			appointments.status,
			services.name AS service_name,
			services.price AS service_price`).
		Joins("JOIN services ON services.id = appointments.services_id").
		Where("appointments.users_id = ?", userID).
		Order("appointments.appointments_date DESC, appointments.appointments_time DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Cancel flips the caller's own appointment to CANCELLED, freeing the
// slot. A row that is absent, already cancelled, or owned by someone
// else reports not found; ownership is not leaked as a separate error.
func (r *appointmentRepository) Cancel(id, userID uint) (*models.Appointment, error) {
	result := r.db.Model(&models.Appointment{}).
		Where("id = ? AND users_id = ? AND status <> ?", id, userID, models.StatusCancelled).
		Update("status", models.StatusCancelled)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrAppointmentNotFound
	}
	return r.FindByID(id)
}

// Repository errors
var (
	ErrAppointmentNotFound = errors.New("appointment not found")
)
