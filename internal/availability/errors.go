package availability

import "errors"

var (
	// ErrInvalidTimeValue возвращается при некорректном значении времени (формат или порядок)
	ErrInvalidTimeValue = errors.New("availability: invalid time value")

	// ErrNotOnGrid возвращается, когда запрошенное время не совпадает ни с одним слотом сетки
	ErrNotOnGrid = errors.New("availability: time is not on the slot grid")

	// ErrSlotTaken возвращается, когда слот пересекается с существующей записью или выходит за закрытие
	ErrSlotTaken = errors.New("availability: slot is not available")
)
