package claim_deal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/resilient"
)

// DealRepository интерфейс репозитория сделок
type DealRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error)
	ClaimIfActive(ctx context.Context, id uuid.UUID, userID *uuid.UUID, at time.Time) error
	Release(ctx context.Context, id uuid.UUID) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetBySalonWithFilter(ctx context.Context, filter domain.SalonAppointmentsFilter) ([]*domain.Appointment, error)
}

// SalonDirectory интерфейс справочника салонов
type SalonDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error)
}

// AppointmentWriter интерфейс вставки записи через устойчивый адаптер
type AppointmentWriter interface {
	InsertAppointment(ctx context.Context, payload resilient.Payload) (*resilient.Record, error)
}

// Locker интерфейс блокировки слота на время записи
type Locker interface {
	Acquire(ctx context.Context, key string) (lock.ReleaseFunc, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс учета исходов записи
type Metrics interface {
	ObserveBooking(kind, outcome string)
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
