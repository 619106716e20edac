package list_deals

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/deals/models"
)

type DealService interface {
	ListActive(ctx context.Context, salonID uuid.UUID) (*models.DealListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
