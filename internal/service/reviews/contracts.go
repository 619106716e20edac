package reviews

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/resilient"
)

// ReviewWriter интерфейс вставки отзыва через устойчивый адаптер
type ReviewWriter interface {
	InsertReview(ctx context.Context, payload resilient.Payload) (*resilient.Record, error)
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
