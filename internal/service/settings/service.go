package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	settingsRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/settings/models"
)

// Service сервис для работы с настройками бронирования салона
type Service struct {
	settingsRepo SettingsRepository
	directory    SalonDirectory
	defaults     domain.BookingSettings
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек.
// defaults применяются к салонам без сохраненных настроек
func NewService(
	settingsRepo SettingsRepository,
	directory SalonDirectory,
	defaults domain.BookingSettings,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		directory:    directory,
		defaults:     defaults,
		logger:       logger,
	}
}

// Resolve возвращает действующие настройки салона: сохраненные или значения по умолчанию
func (s *Service) Resolve(ctx context.Context, salonID uuid.UUID) (*domain.BookingSettings, error) {
	settings, err := s.settingsRepo.Get(ctx, salonID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("Resolve: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	defaults := s.defaults
	defaults.SalonID = salonID
	return &defaults, nil
}

// Get получает настройки салона
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, salonID uuid.UUID) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for salon=%s", salonID)

	if _, err := s.getSalon(ctx, salonID); err != nil {
		return nil, err
	}

	settings, err := s.Resolve(ctx, salonID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSettings(settings), nil
}

// Update обновляет настройки салона
// Доступно только владельцу салона
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, salonID uuid.UUID, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for salon=%s by user=%s", salonID, req.UserID)

	// 1. Получаем салон для проверки прав доступа
	salon, err := s.getSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем права доступа (только владелец салона)
	if !salon.IsOwner(req.UserID) {
		s.logger.Warn("Update: user=%s is not the owner of salon=%s", req.UserID, salonID)
		return nil, ErrAccessDenied
	}

	// 3. Применяем обновления к действующим настройкам
	current, err := s.Resolve(ctx, salonID)
	if err != nil {
		return nil, err
	}
	updated := *current
	req.ApplyTo(&updated)

	// 4. Валидируем обновленные данные
	if err := validateSettings(&updated); err != nil {
		s.logger.Warn("Update: validation failed for salon=%s: %v", salonID, err)
		return nil, err
	}

	// 5. Сохраняем настройки
	saved, err := s.settingsRepo.Upsert(ctx, &updated)
	if err != nil {
		s.logger.Error("Update: repository error for salon=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for salon=%s", salonID)
	return models.FromDomainSettings(saved), nil
}

func (s *Service) getSalon(ctx context.Context, salonID uuid.UUID) (*domain.Salon, error) {
	salon, err := s.directory.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("settings: salon id=%s not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("settings: failed to get salon id=%s: %v", salonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}
	return salon, nil
}

// validateSettings валидирует параметры настроек
func validateSettings(s *domain.BookingSettings) error {
	if s.SlotStepMinutes < domain.MinSlotStepMinutes || s.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}

	if s.AdvanceBookingDays < 0 || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d",
			ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}

	if s.MinBookingNoticeMinutes < 0 || s.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between 0 and %d",
			ErrInvalidInput, domain.MaxBookingNoticeMinutes)
	}

	return nil
}
