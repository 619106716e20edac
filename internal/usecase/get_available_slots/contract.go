package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetBySalonWithFilter получает записи салона с учетом фильтра
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonAppointmentsFilter) ([]*domain.Appointment, error)
}

// SalonDirectory интерфейс справочника салонов и услуг
type SalonDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error)
	GetService(ctx context.Context, salonID, serviceID uuid.UUID) (*domain.Service, error)
}

// SettingsProvider возвращает действующие настройки бронирования салона
type SettingsProvider interface {
	Resolve(ctx context.Context, salonID uuid.UUID) (*domain.BookingSettings, error)
}

// Metrics интерфейс для учета окон по умолчанию
type Metrics interface {
	ObserveHoursDefaulted()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
