package service

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/models"
	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/repository"
)

// Business hours: [09:00, 18:00) on weekdays. 17:45 books, 18:00 does not.
const (
	openingHour = 9
	closingHour = 18

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// BookingService defines the interface for appointment business logic.
// ProposeAppointment runs the validation sequence in a fixed order and
// short-circuits at the first failure, so rejections are deterministic:
// weekend, hour range, past instant, service existence, slot conflict.
// Any rejection performs zero writes.
type BookingService interface {
	ProposeAppointment(userID, serviceID uint, date, timeOfDay string) (*models.Appointment, error)
	ListOwnAppointments(userID uint) ([]models.AppointmentView, error)
	CancelAppointment(id, userID uint) (*models.Appointment, error)
}

type bookingService struct {
	appointmentRepo repository.AppointmentRepository
	serviceRepo     repository.ServiceRepository
	logger          *slog.Logger
	now             func() time.Time
}

// NewBookingService creates a new booking service instance
func NewBookingService(
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	logger *slog.Logger,
) BookingService {
	return &bookingService{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *bookingService) ProposeAppointment(userID, serviceID uint, date, timeOfDay string) (*models.Appointment, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDateTime
	}
	clock, err := time.Parse(timeLayout, timeOfDay)
	if err != nil {
		return nil, ErrInvalidDateTime
	}

	// 1. No weekends. UTC day-of-week, so the verdict does not drift
	// with the server's local timezone.
	weekday := day.UTC().Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		s.logger.Warn("⚠️ [BookingService] Weekend booking rejected", "date", date)
		return nil, ErrOutOfBusinessHours
	}

	// 2. Inside opening hours
	if clock.Hour() < openingHour || clock.Hour() >= closingHour {
		s.logger.Warn("⚠️ [BookingService] Outside business hours", "time", timeOfDay)
		return nil, ErrOutOfBusinessHours
	}

	// 3. Not in the past. The combined instant is read on the server's
	// clock; no grace window.
	instant := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
	if instant.Before(s.now()) {
		s.logger.Warn("⚠️ [BookingService] Past slot rejected", "date", date, "time", timeOfDay)
		return nil, ErrInThePast
	}

	// 4. The service must exist. Re-checked here, despite the foreign
	// key, to answer with a user-facing message instead of a raw
	// constraint violation.
	if _, err := s.serviceRepo.FindByID(serviceID); err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			s.logger.Warn("⚠️ [BookingService] Unknown service", "service_id", serviceID)
			return nil, repository.ErrServiceNotFound
		}
		s.logger.Error("❌ [BookingService] Database error", "error", err)
		return nil, err
	}

	// 5. The slot must be free
	taken, err := s.appointmentRepo.SlotTaken(date, timeOfDay)
	if err != nil {
		s.logger.Error("❌ [BookingService] Database error", "error", err)
		return nil, err
	}
	if taken {
		s.logger.Warn("⚠️ [BookingService] Slot already reserved", "date", date, "time", timeOfDay)
		return nil, ErrSlotTaken
	}

	// 6. Insert. The partial unique index on (date, time) is the
	// backstop for two requests racing past step 5 together; the loser
	// gets the same rejection it would have gotten from the check.
	appointment := &models.Appointment{
		UserID:    userID,
		ServiceID: serviceID,
		Date:      date,
		Time:      timeOfDay,
		Status:    models.StatusPending,
	}

	if err := s.appointmentRepo.Create(appointment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Warn("⚠️ [BookingService] Lost booking race", "date", date, "time", timeOfDay)
			return nil, ErrSlotTaken
		}
		s.logger.Error("❌ [BookingService] Failed to create appointment", "error", err)
		return nil, err
	}

	s.logger.Info("✅ [BookingService] Appointment booked",
		"appointment_id", appointment.ID,
		"user_id", userID,
		"date", date,
		"time", timeOfDay,
	)
	return appointment, nil
}

func (s *bookingService) ListOwnAppointments(userID uint) ([]models.AppointmentView, error) {
	views, err := s.appointmentRepo.ListViewsByUser(userID)
	if err != nil {
		s.logger.Error("❌ [BookingService] Failed to list appointments", "error", err, "user_id", userID)
		return nil, err
	}
	return views, nil
}

func (s *bookingService) CancelAppointment(id, userID uint) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.Cancel(id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			s.logger.Warn("⚠️ [BookingService] Cancel on missing appointment", "appointment_id", id, "user_id", userID)
			return nil, err
		}
		s.logger.Error("❌ [BookingService] Failed to cancel appointment", "error", err, "appointment_id", id)
		return nil, err
	}

	s.logger.Info("✅ [BookingService] Appointment cancelled", "appointment_id", id, "user_id", userID)
	return appointment, nil
}

// Service errors
var (
	ErrInvalidDateTime    = errors.New("date must be YYYY-MM-DD and time must be HH:MM")
	ErrOutOfBusinessHours = errors.New("appointments are only available Monday to Friday, 09:00 to 18:00")
	ErrInThePast          = errors.New("cannot book a slot in the past")
	ErrSlotTaken          = errors.New("this slot is already reserved")
)
