package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	Get(ctx context.Context, salonID uuid.UUID) (*domain.BookingSettings, error)
	Upsert(ctx context.Context, settings *domain.BookingSettings) (*domain.BookingSettings, error)
}

// SalonDirectory интерфейс справочника салонов
type SalonDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
