package deals

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// DealRepository интерфейс репозитория сделок
type DealRepository interface {
	ListActive(ctx context.Context, salonID uuid.UUID, from *types.Date) ([]*domain.Deal, error)
}

// SalonDirectory интерфейс справочника салонов
type SalonDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Salon, error)
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
