package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid returns true for a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a booked interval of a salon on a date
type Appointment struct {
	ID              uuid.UUID
	SalonID         uuid.UUID
	UserID          *uuid.UUID // nil for guest bookings
	ServiceID       *uuid.UUID
	DealID          *uuid.UUID
	ServiceName     string
	BookingDate     types.Date
	StartTime       types.TimeString
	DurationMinutes int
	Price           float64
	Status          AppointmentStatus
	PaymentMethod   *PaymentMethod
	Notes           *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the appointment still occupies its interval
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// BelongsTo returns true if userID booked the appointment
func (a *Appointment) BelongsTo(userID uuid.UUID) bool {
	return a.UserID != nil && *a.UserID == userID
}

// SalonAppointmentsFilter фильтр для получения записей салона
type SalonAppointmentsFilter struct {
	SalonID         uuid.UUID          // Обязательный параметр
	StartDate       *types.Date        // Начало периода (опционально)
	EndDate         *types.Date        // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые записи
}

// IsSingleDay returns true when the filter selects exactly one date
func (f SalonAppointmentsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
