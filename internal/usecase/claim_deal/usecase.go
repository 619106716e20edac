package claim_deal

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/resilient"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/dberrors"
	dealRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/deal"
	salonRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const metricsKind = "deal"

// UseCase use case для получения сделки с одновременной записью на её время
type UseCase struct {
	dealRepo        DealRepository
	appointmentRepo AppointmentRepository
	directory       SalonDirectory
	writer          AppointmentWriter
	locker          Locker
	txManager       TransactionManager
	policy          availability.Policy
	releaseOnFail   bool
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// releaseOnFail возвращает сделку в active, если запись после захвата не удалась.
// metrics может быть nil
func NewUseCase(
	dealRepo DealRepository,
	appointmentRepo AppointmentRepository,
	directory SalonDirectory,
	writer AppointmentWriter,
	locker Locker,
	txManager TransactionManager,
	policy availability.Policy,
	releaseOnFail bool,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		dealRepo:        dealRepo,
		appointmentRepo: appointmentRepo,
		directory:       directory,
		writer:          writer,
		locker:          locker,
		txManager:       txManager,
		policy:          policy,
		releaseOnFail:   releaseOnFail,
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

// Execute выполняет use case: захватывает сделку условным обновлением и создает запись по ней.
// Сделку получает ровно один клиент, проигравшие получают ErrDealUnavailable
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.observe(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ClaimDeal: user=%v, deal=%s", req.UserID, req.DealID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ClaimDeal: validation failed: %v", err)
		return nil, err
	}
	paymentMethod := paymentMethodOf(req)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем сделку и проверяем, что её еще можно забрать
	deal, err := uc.dealRepo.GetByID(ctx, req.DealID)
	if err != nil {
		if errors.Is(err, dealRepo.ErrDealNotFound) {
			uc.logger.Warn("ClaimDeal: deal id=%s not found", req.DealID)
			return nil, ErrDealNotFound
		}
		uc.logger.Error("ClaimDeal: failed to get deal id=%s: %v", req.DealID, err)
		return nil, fmt.Errorf("%w: failed to get deal: %v", ErrInternal, err)
	}

	if !deal.IsActive() {
		uc.logger.Warn("ClaimDeal: deal id=%s is %s", deal.ID, deal.Status)
		return nil, ErrDealUnavailable
	}

	if deal.DealDate.Before(types.NewDate(now)) {
		uc.logger.Warn("ClaimDeal: deal id=%s is in the past (%s)", deal.ID, deal.DealDate)
		return nil, ErrDealUnavailable
	}

	startMinutes, err := deal.StartTime.Minutes()
	if err != nil {
		uc.logger.Error("ClaimDeal: deal id=%s has malformed start time %q", deal.ID, deal.StartTime)
		return nil, fmt.Errorf("%w: deal start time %q", ErrInvalidTimeValue, deal.StartTime)
	}
	startTime, err := types.FromMinutes(startMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: deal start time %q", ErrInvalidTimeValue, deal.StartTime)
	}

	if deal.DurationMinutes <= 0 || startMinutes+deal.DurationMinutes > types.MinutesPerDay {
		uc.logger.Error("ClaimDeal: deal id=%s at %s for %d minutes does not fit into the day", deal.ID, deal.StartTime, deal.DurationMinutes)
		return nil, fmt.Errorf("%w: deal at %s for %d minutes", ErrInvalidTimeValue, deal.StartTime, deal.DurationMinutes)
	}

	if deal.DealDate.Equal(types.NewDate(now)) && startMinutes <= now.Hour()*60+now.Minute() {
		uc.logger.Warn("ClaimDeal: deal id=%s already started today at %s", deal.ID, deal.StartTime)
		return nil, ErrDealUnavailable
	}

	// 4. Проверяем способ оплаты в салоне сделки
	salon, err := uc.directory.GetByID(ctx, deal.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("ClaimDeal: salon id=%s of deal id=%s not found", deal.SalonID, deal.ID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("ClaimDeal: failed to get salon id=%s: %v", deal.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	if !salon.AcceptsPayment(paymentMethod) {
		uc.logger.Warn("ClaimDeal: salon id=%s does not accept %s payment", salon.ID, paymentMethod)
		return nil, ErrPaymentMethodNotAccepted
	}

	// 5. Резервируем слот салона на дату сделки
	release, err := uc.locker.Acquire(ctx, lock.SlotKey(deal.SalonID, deal.DealDate.String()))
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			uc.logger.Warn("ClaimDeal: lock wait expired for salon=%s, date=%s", deal.SalonID, deal.DealDate)
			return nil, ErrBusy
		}
		uc.logger.Error("ClaimDeal: failed to acquire slot lock: %v", err)
		return nil, fmt.Errorf("%w: failed to acquire slot lock: %v", ErrInternal, err)
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("ClaimDeal: failed to release slot lock: %v", err)
		}
	}()

	// 6. Забираем сделку условным обновлением
	if err := uc.dealRepo.ClaimIfActive(ctx, deal.ID, req.UserID, now); err != nil {
		if errors.Is(err, dealRepo.ErrDealNotActive) {
			uc.logger.Warn("ClaimDeal: deal id=%s was claimed by someone else", deal.ID)
			return nil, ErrDealUnavailable
		}
		uc.logger.Error("ClaimDeal: failed to claim deal id=%s: %v", deal.ID, err)
		return nil, fmt.Errorf("%w: failed to claim deal: %v", ErrInternal, err)
	}

	// 7. Создаем запись на время сделки в сериализуемой транзакции
	record, err := uc.book(ctx, req, deal, startTime, paymentMethod)
	if err != nil {
		uc.compensate(ctx, deal, err)
		return nil, err
	}

	if len(record.Dropped) > 0 {
		uc.logger.Warn("ClaimDeal: appointment id=%s saved without fields %v", record.ID, record.Dropped)
	}
	uc.logger.Info("ClaimDeal: deal id=%s claimed, appointment id=%s created", deal.ID, record.ID)

	return &Response{
		AppointmentID:   record.ID,
		DealID:          deal.ID,
		SalonID:         deal.SalonID,
		UserID:          req.UserID,
		ServiceName:     deal.ServiceName,
		BookingDate:     deal.DealDate,
		StartTime:       startTime,
		DurationMinutes: deal.DurationMinutes,
		OriginalPrice:   deal.OriginalPrice,
		Price:           deal.DiscountPrice,
		Status:          statusFor(paymentMethod),
		PaymentMethod:   paymentMethod,
		DroppedFields:   record.Dropped,
		CreatedAt:       record.CreatedAt,
	}, nil
}

// book перепроверяет интервал сделки и вставляет запись
func (uc *UseCase) book(
	ctx context.Context,
	req *Request,
	deal *domain.Deal,
	startTime types.TimeString,
	paymentMethod domain.PaymentMethod,
) (*resilient.Record, error) {
	var record *resilient.Record

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		filter := domain.SalonAppointmentsFilter{
			SalonID:   deal.SalonID,
			StartDate: &deal.DealDate,
			EndDate:   &deal.DealDate,
		}

		appointments, err := uc.appointmentRepo.GetBySalonWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("ClaimDeal: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		if err := uc.policy.CheckInterval(startTime, deal.DurationMinutes, appointments); err != nil {
			switch {
			case errors.Is(err, availability.ErrSlotTaken):
				uc.logger.Warn("ClaimDeal: deal id=%s overlaps an existing appointment", deal.ID)
				return ErrSlotNoLongerAvailable
			case errors.Is(err, availability.ErrInvalidTimeValue):
				uc.logger.Error("ClaimDeal: malformed time data for deal id=%s: %v", deal.ID, err)
				return fmt.Errorf("%w: %v", ErrInvalidTimeValue, err)
			}
			return fmt.Errorf("%w: failed to check interval: %v", ErrInternal, err)
		}

		payload := resilient.Payload{
			"salon_id":         deal.SalonID,
			"deal_id":          deal.ID,
			"service_name":     deal.ServiceName,
			"booking_date":     deal.DealDate,
			"start_time":       startTime,
			"duration_minutes": deal.DurationMinutes,
			"price":            deal.DiscountPrice,
			"status":           string(statusFor(paymentMethod)),
			"payment_method":   string(paymentMethod),
		}
		if deal.ServiceID != nil {
			payload["service_id"] = *deal.ServiceID
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
				uc.logger.Warn("ClaimDeal: storage rejected overlapping appointment for deal id=%s", deal.ID)
				return ErrSlotNoLongerAvailable
			}
			uc.logger.Error("ClaimDeal: failed to insert appointment: %v", err)
			return fmt.Errorf("%w: failed to insert appointment: %w", ErrInternal, err)
		}

		return nil
	})

	return record, err
}

// compensate возвращает сделку в active после неудачной записи, если это разрешено настройкой
func (uc *UseCase) compensate(ctx context.Context, deal *domain.Deal, cause error) {
	if !uc.releaseOnFail {
		uc.logger.Error("ClaimDeal: deal id=%s stays claimed without an appointment, manual reconciliation required: %v",
			deal.ID, cause)
		return
	}

	if err := uc.dealRepo.Release(context.WithoutCancel(ctx), deal.ID); err != nil {
		uc.logger.Error("ClaimDeal: failed to release deal id=%s after booking failure (%v): %v", deal.ID, cause, err)
		return
	}
	uc.logger.Error("ClaimDeal: booking failed, deal id=%s released back to active: %v", deal.ID, cause)
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}

	outcome := "created"
	switch {
	case err == nil:
	case errors.Is(err, ErrDealUnavailable):
		outcome = "deal_unavailable"
	case errors.Is(err, ErrSlotNoLongerAvailable), errors.Is(err, ErrBusy):
		outcome = "slot_taken"
	case errors.Is(err, ErrInternal):
		outcome = "failed"
	default:
		outcome = "rejected"
	}
	uc.metrics.ObserveBooking(metricsKind, outcome)
}
