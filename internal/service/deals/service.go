package deals

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/deals/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Service сервис для просмотра сделок салона
type Service struct {
	dealRepo     DealRepository
	directory    SalonDirectory
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сделок
func NewService(dealRepo DealRepository, directory SalonDirectory, logger Logger) *Service {
	return &Service{
		dealRepo:     dealRepo,
		directory:    directory,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// ListActive возвращает сделки салона, которые еще можно забрать, начиная с сегодняшнего дня
func (s *Service) ListActive(ctx context.Context, salonID uuid.UUID) (*models.DealListResponse, error) {
	s.logger.Info("ListActive: fetching active deals for salon=%s", salonID)

	if _, err := s.directory.GetByID(ctx, salonID); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("ListActive: salon id=%s not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("ListActive: failed to get salon id=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListActive - failed to get salon: %v", ErrInternal, err)
	}

	today := types.NewDate(s.timeProvider.Now())
	deals, err := s.dealRepo.ListActive(ctx, salonID, &today)
	if err != nil {
		s.logger.Error("ListActive: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListActive: found %d active deals for salon=%s", len(deals), salonID)
	return models.FromDomainDealList(deals), nil
}
