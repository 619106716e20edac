package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	directory       SalonDirectory
	settings        SettingsProvider
	policy          availability.Policy
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// metrics может быть nil
func NewUseCase(
	appointmentRepo AppointmentRepository,
	directory SalonDirectory,
	settings SettingsProvider,
	policy availability.Policy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		directory:       directory,
		settings:        settings,
		policy:          policy,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%v, salon=%s, service=%s, date=%s",
		req.UserID, req.SalonID, req.ServiceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	salon, err := uc.directory.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon id=%s not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon id=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.directory.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found in salon id=%s", req.ServiceID, req.SalonID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем настройки бронирования салона
	settings, err := uc.settings.Resolve(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve settings: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	// 6. Валидация даты с учетом настроек
	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		Date:            req.Date,
		SalonID:         req.SalonID,
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		StepMinutes:     settings.SlotStepMinutes,
		Slots:           []types.TimeString{},
	}

	// 7. Получаем рабочее окно на дату
	window, resolution, err := uc.policy.WindowFor(salon.OpeningHours, req.Date.Time)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: salon id=%s has invalid hours on %s: %v", req.SalonID, req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeValue, err)
	}

	switch resolution {
	case availability.ResolvedClosed:
		uc.logger.Info("GetAvailableSlots: salon id=%s is closed on %s", req.SalonID, req.Date)
		resp.Closed = true
		return resp, nil
	case availability.ResolvedDefault:
		uc.logger.Info("GetAvailableSlots: salon id=%s has no hours for %s, using default window %s-%s",
			req.SalonID, availability.WeekdayOf(req.Date.Time), window.Start, window.End)
		resp.HoursDefaulted = true
		if uc.metrics != nil {
			uc.metrics.ObserveHoursDefaulted()
		}
	}
	resp.OpenTime = &window.Start
	resp.CloseTime = &window.End

	// 8. Генерируем сетку слотов и убираем слишком близкие к текущему времени
	candidates := availability.GenerateSlots(*window, settings.SlotStepMinutes)
	candidates = filterByNotice(candidates, req.Date, now, settings.MinBookingNoticeMinutes)
	if len(candidates) == 0 {
		return resp, nil
	}

	// 9. Получаем активные записи салона на дату
	filter := domain.SalonAppointmentsFilter{
		SalonID:   req.SalonID,
		StartDate: &req.Date,
		EndDate:   &req.Date,
	}

	appointments, err := uc.appointmentRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 10. Оставляем слоты, в которые помещается услуга
	slots, err := uc.policy.AvailableSlots(candidates, service.DurationMinutes, appointments, window.End)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidTimeValue) {
			uc.logger.Error("GetAvailableSlots: malformed appointment data for salon id=%s: %v", req.SalonID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimeValue, err)
		}
		return nil, fmt.Errorf("%w: failed to filter slots: %v", ErrInternal, err)
	}
	resp.Slots = slots

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for salon=%s, service=%s, date=%s",
		len(slots), len(candidates), req.SalonID, req.ServiceID, req.Date)

	return resp, nil
}
