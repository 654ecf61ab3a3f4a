package service

import (
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/BenjaminTrigo/GestionDeTurnosApp/internal/database/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ==================== MOCK USER REPOSITORY ====================

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	if len(args) > 1 && args.Get(0) != nil {
		user.ID = args.Get(0).(uint)
	}
	return args.Error(len(args) - 1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// ==================== MOCK SERVICE REPOSITORY ====================

// MockServiceRepository implements repository.ServiceRepository for testing
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(service *models.Service) error {
	args := m.Called(service)
	if len(args) > 1 && args.Get(0) != nil {
		service.ID = args.Get(0).(uint)
	}
	return args.Error(len(args) - 1)
}

func (m *MockServiceRepository) FindByID(id uint) (*models.Service, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockServiceRepository) ListActive() ([]models.Service, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *MockServiceRepository) Deactivate(id uint) (*models.Service, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

// ==================== MOCK APPOINTMENT REPOSITORY ====================

// MockAppointmentRepository implements repository.AppointmentRepository for testing
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(appointment *models.Appointment) error {
	args := m.Called(appointment)
	if len(args) > 1 && args.Get(0) != nil {
		appointment.ID = args.Get(0).(uint)
	}
	return args.Error(len(args) - 1)
}

func (m *MockAppointmentRepository) FindByID(id uint) (*models.Appointment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) SlotTaken(date, timeOfDay string) (bool, error) {
	args := m.Called(date, timeOfDay)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) ListViewsByUser(userID uint) ([]models.AppointmentView, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppointmentView), args.Error(1)
}

func (m *MockAppointmentRepository) Cancel(id, userID uint) (*models.Appointment, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}
