package create_appointment

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_appointment: salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrPaymentMethodNotAccepted возвращается, когда салон не принимает выбранный способ оплаты
	ErrPaymentMethodNotAccepted = errors.New("create_appointment: payment method is not accepted by the salon")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrSalonClosed возвращается, когда салон закрыт в указанную дату
	ErrSalonClosed = errors.New("create_appointment: salon is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не лежит на сетке слотов рабочего дня
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrInvalidTimeValue возвращается при некорректных часах работы или времени записей
	ErrInvalidTimeValue = errors.New("create_appointment: invalid time value")

	// ErrTooLateToBook возвращается, когда запись нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrSlotNoLongerAvailable возвращается, когда слот заняли между выбором и записью
	ErrSlotNoLongerAvailable = errors.New("create_appointment: slot is no longer available")

	// ErrBusy возвращается, когда не удалось дождаться блокировки слота
	ErrBusy = errors.New("create_appointment: slot is being booked by someone else, try again")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
