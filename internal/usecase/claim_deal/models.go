package claim_deal

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на получение сделки с записью
type Request struct {
	DealID        uuid.UUID
	UserID        *uuid.UUID            // nil для гостя
	PaymentMethod *domain.PaymentMethod // по умолчанию наличные
	Notes         *string
}

// Response модель ответа с записью по сделке
type Response struct {
	AppointmentID   uuid.UUID
	DealID          uuid.UUID
	SalonID         uuid.UUID
	UserID          *uuid.UUID
	ServiceName     string
	BookingDate     types.Date
	StartTime       types.TimeString
	DurationMinutes int
	OriginalPrice   float64
	Price           float64
	Status          domain.AppointmentStatus
	PaymentMethod   domain.PaymentMethod
	DroppedFields   []string
	CreatedAt       time.Time
}
