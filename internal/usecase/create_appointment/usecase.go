package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/resilient"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/dberrors"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const metricsKind = "direct"

// UseCase use case для создания записи на услугу
type UseCase struct {
	appointmentRepo AppointmentRepository
	directory       SalonDirectory
	settings        SettingsProvider
	writer          AppointmentWriter
	locker          Locker
	txManager       TransactionManager
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
	writer AppointmentWriter,
	locker Locker,
	txManager TransactionManager,
	policy availability.Policy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		directory:       directory,
		settings:        settings,
		writer:          writer,
		locker:          locker,
		txManager:       txManager,
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

// Execute выполняет use case создания записи.
// Слот резервируется блокировкой салон+дата, затем перепроверяется и записывается в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.observe(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%v, salon=%s, service=%s, date=%s, time=%s",
		req.UserID, req.SalonID, req.ServiceID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}
	paymentMethod := paymentMethodOf(req)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон и проверяем способ оплаты
	salon, err := uc.directory.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateAppointment: salon id=%s not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get salon id=%s: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	if !salon.AcceptsPayment(paymentMethod) {
		uc.logger.Warn("CreateAppointment: salon id=%s does not accept %s payment", req.SalonID, paymentMethod)
		return nil, ErrPaymentMethodNotAccepted
	}

	// 4. Получаем услугу
	service, err := uc.directory.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found in salon id=%s", req.ServiceID, req.SalonID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем настройки и валидируем дату и время
	settings, err := uc.settings.Resolve(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to resolve settings: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve settings: %v", ErrInternal, err)
	}

	if err := validateDate(req.Date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	if err := validateBookingTime(req.Date, req.StartTime, now, settings.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: booking time validation failed: %v", err)
		return nil, err
	}

	// 6. Получаем рабочее окно на дату
	window, resolution, err := uc.policy.WindowFor(salon.OpeningHours, req.Date.Time)
	if err != nil {
		uc.logger.Warn("CreateAppointment: salon id=%s has invalid hours on %s: %v", req.SalonID, req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeValue, err)
	}
	switch resolution {
	case availability.ResolvedClosed:
		uc.logger.Warn("CreateAppointment: salon id=%s is closed on %s", req.SalonID, req.Date)
		return nil, ErrSalonClosed
	case availability.ResolvedDefault:
		uc.logger.Info("CreateAppointment: salon id=%s has no hours for %s, using default window %s-%s",
			req.SalonID, availability.WeekdayOf(req.Date.Time), window.Start, window.End)
	}

	// 7. Резервируем слот салона на дату
	release, err := uc.locker.Acquire(ctx, lock.SlotKey(req.SalonID, req.Date.String()))
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			uc.logger.Warn("CreateAppointment: lock wait expired for salon=%s, date=%s", req.SalonID, req.Date)
			return nil, ErrBusy
		}
		uc.logger.Error("CreateAppointment: failed to acquire slot lock: %v", err)
		return nil, fmt.Errorf("%w: failed to acquire slot lock: %v", ErrInternal, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("CreateAppointment: failed to release slot lock: %v", err)
		}
	}()

	var record *resilient.Record
	var startTime types.TimeString

	// 8. Выполняем перепроверку и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем активные записи салона на дату с блокировкой (FOR UPDATE)
		filter := domain.SalonAppointmentsFilter{
			SalonID:   req.SalonID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		}

		appointments, err := uc.appointmentRepo.GetBySalonWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		// 8.2. Проверяем, что слот все еще свободен
		if err := uc.policy.CheckSlot(*window, settings.SlotStepMinutes, service.DurationMinutes, appointments, req.StartTime); err != nil {
			switch {
			case errors.Is(err, availability.ErrSlotTaken):
				uc.logger.Warn("CreateAppointment: slot %s on %s is no longer available", req.StartTime, req.Date)
				return ErrSlotNoLongerAvailable
			case errors.Is(err, availability.ErrNotOnGrid):
				uc.logger.Warn("CreateAppointment: slot %s is not on the grid: %v", req.StartTime, err)
				return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
			case errors.Is(err, availability.ErrInvalidTimeValue):
				uc.logger.Error("CreateAppointment: malformed time data for salon id=%s: %v", req.SalonID, err)
				return fmt.Errorf("%w: %v", ErrInvalidTimeValue, err)
			}
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		// 8.3. Сохраняем запись с денормализацией данных услуги
		minutes, _ := req.StartTime.Minutes()
		startTime, _ = types.FromMinutes(minutes)

		payload := resilient.Payload{
			"salon_id":         req.SalonID,
			"service_id":       service.ID,
			"service_name":     service.Name,
			"booking_date":     req.Date,
			"start_time":       startTime,
			"duration_minutes": service.DurationMinutes,
			"price":            service.Price,
			"status":           string(statusFor(paymentMethod)),
			"payment_method":   string(paymentMethod),
		}
		if req.UserID != nil {
			payload["user_id"] = *req.UserID
		}
		if req.Notes != nil {
			payload["notes"] = *req.Notes
		}

		record, err = uc.writer.InsertAppointment(txCtx, payload)
		if err != nil {
			if dberrors.IsExclusion(err) {
				uc.logger.Warn("CreateAppointment: storage rejected overlapping slot %s on %s", startTime, req.Date)
				return ErrSlotNoLongerAvailable
			}
			uc.logger.Error("CreateAppointment: failed to insert appointment: %v", err)
			return fmt.Errorf("%w: failed to insert appointment: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if len(record.Dropped) > 0 {
		uc.logger.Warn("CreateAppointment: appointment id=%s saved without fields %v", record.ID, record.Dropped)
	}
	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", record.ID)

	return &Response{
		ID:              record.ID,
		UserID:          req.UserID,
		SalonID:         req.SalonID,
		ServiceID:       service.ID,
		BookingDate:     req.Date,
		StartTime:       startTime,
		DurationMinutes: service.DurationMinutes,
		Status:          statusFor(paymentMethod),
		PaymentMethod:   paymentMethod,
		ServiceName:     service.Name,
		Price:           service.Price,
		Notes:           req.Notes,
		DroppedFields:   record.Dropped,
		CreatedAt:       record.CreatedAt,
	}, nil
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}

	outcome := "created"
	switch {
	case err == nil:
	case errors.Is(err, ErrSlotNoLongerAvailable), errors.Is(err, ErrBusy):
		outcome = "slot_taken"
	case errors.Is(err, ErrInternal):
		outcome = "failed"
	default:
		outcome = "rejected"
	}
	uc.metrics.ObserveBooking(metricsKind, outcome)
}
