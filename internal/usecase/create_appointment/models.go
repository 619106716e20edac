package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID        *uuid.UUID            // ID пользователя (nil для гостя)
	SalonID       uuid.UUID             // ID салона
	ServiceID     uuid.UUID             // ID услуги
	Date          types.Date            // Дата записи
	StartTime     types.TimeString      // Время начала слота (например, "10:00")
	PaymentMethod *domain.PaymentMethod // Способ оплаты (по умолчанию наличные)
	Notes         *string               // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              uuid.UUID
	UserID          *uuid.UUID
	SalonID         uuid.UUID
	ServiceID       uuid.UUID
	BookingDate     types.Date
	StartTime       types.TimeString
	DurationMinutes int
	Status          domain.AppointmentStatus
	PaymentMethod   domain.PaymentMethod

	// Денормализованные данные услуги
	ServiceName string
	Price       float64
	Notes       *string

	// Колонки, которые хранилище не приняло
	DroppedFields []string

	CreatedAt time.Time
}
