package claim_deal

import "errors"

var (
	// ErrDealNotFound возвращается, когда сделка не найдена
	ErrDealNotFound = errors.New("claim_deal: deal not found")

	// ErrDealUnavailable возвращается, когда сделку уже забрали, она истекла или прошла
	ErrDealUnavailable = errors.New("claim_deal: deal is no longer available")

	// ErrSalonNotFound возвращается, когда салон сделки не найден
	ErrSalonNotFound = errors.New("claim_deal: salon not found")

	// ErrPaymentMethodNotAccepted возвращается, когда салон не принимает выбранный способ оплаты
	ErrPaymentMethodNotAccepted = errors.New("claim_deal: payment method is not accepted by the salon")

	// ErrSlotNoLongerAvailable возвращается, когда время сделки пересекается с существующей записью
	ErrSlotNoLongerAvailable = errors.New("claim_deal: slot is no longer available")

	// ErrInvalidTimeValue возвращается при некорректном времени сделки или записей
	ErrInvalidTimeValue = errors.New("claim_deal: invalid time value")

	// ErrBusy возвращается, когда не удалось дождаться блокировки слота
	ErrBusy = errors.New("claim_deal: slot is being booked by someone else, try again")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("claim_deal: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("claim_deal: internal error")
)
