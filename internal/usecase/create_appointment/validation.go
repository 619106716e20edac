package create_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID == uuid.Nil {
		return fmt.Errorf("%w: salonID is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.UserID != nil && *req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userID must not be empty", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.PaymentMethod != nil && !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, *req.PaymentMethod)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// paymentMethodOf возвращает выбранный способ оплаты, по умолчанию наличные
func paymentMethodOf(req *Request) domain.PaymentMethod {
	if req.PaymentMethod == nil {
		return domain.PaymentCash
	}
	return *req.PaymentMethod
}

// statusFor возвращает начальный статус записи: онлайн-оплата ждет подтверждения платежа
func statusFor(method domain.PaymentMethod) domain.AppointmentStatus {
	if method == domain.PaymentOnline {
		return domain.StatusPending
	}
	return domain.StatusConfirmed
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(bookingDate types.Date, now time.Time, advanceBookingDays int) error {
	today := types.NewDate(now)

	// Проверяем, что дата не в прошлом
	if bookingDate.Before(today) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	if bookingDate.After(today.AddDays(advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет, что запись не нарушает minBookingNoticeMinutes
func validateBookingTime(
	bookingDate types.Date,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	// Если дата записи не сегодня, проверка не нужна
	if !bookingDate.Equal(types.NewDate(now)) {
		return nil
	}

	start, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	// Проверяем, что время начала не раньше минимального
	if start < now.Hour()*60+now.Minute()+minBookingNoticeMinutes {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}
