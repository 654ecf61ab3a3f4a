package models

import (
	"time"
)

// AppointmentStatus is the closed set of appointment states.
// CANCELLED is the only transition after creation; a cancelled
// appointment frees its slot for rebooking.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment represents a reservation of a service at a specific
// date and time by a user. Date and Time travel as "2006-01-02" and
// "15:04" strings end to end; zero-padded text sorts chronologically.
type Appointment struct {
	ID        uint              `gorm:"primarykey" json:"id"`
	UserID    uint              `gorm:"column:users_id;not null" json:"users_id"`
	ServiceID uint              `gorm:"column:services_id;not null" json:"services_id"`
	Date      string            `gorm:"column:appointments_date;not null" json:"appointments_date"`
	Time      string            `gorm:"column:appointments_time;not null" json:"appointments_time"`
	Status    AppointmentStatus `gorm:"not null;default:PENDING" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Service Service `gorm:"foreignKey:ServiceID" json:"-"`
}

// TableName overrides the table name
func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentView is the denormalized projection returned by the
// my-appointments listing: appointment fields joined with the booked
// service's name and price.
type AppointmentView struct {
	ID           uint              `json:"id"`
	Date         string            `json:"date"`
	Time         string            `json:"time"`
	Status       AppointmentStatus `json:"status"`
	ServiceName  string            `json:"services_name"`
	ServicePrice float64           `json:"services_price"`
}
