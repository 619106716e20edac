package availability

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Overlaps проверяет пересечение полуоткрытых интервалов [a0, a1) и [b0, b1).
// Граничащие интервалы (a1 == b0) не пересекаются.
func Overlaps(a0, a1, b0, b1 int) bool {
	return a0 < b1 && b0 < a1
}

type interval struct {
	start int
	end   int
}

// busyIntervals переводит активные записи в интервалы в минутах.
// Записи с некорректным временем или длительностью пропускаются либо дают ошибку, в зависимости от политики.
func (p Policy) busyIntervals(appointments []*domain.Appointment) ([]interval, error) {
	busy := make([]interval, 0, len(appointments))

	for _, appt := range appointments {
		if appt == nil || !appt.IsActive() {
			continue
		}

		start, err := appt.StartTime.Minutes()
		if err != nil || appt.DurationMinutes <= 0 {
			if p.SkipMalformedAppointments {
				continue
			}
			return nil, fmt.Errorf("%w: appointment %s has time %q and duration %d",
				ErrInvalidTimeValue, appt.ID, appt.StartTime, appt.DurationMinutes)
		}

		busy = append(busy, interval{start: start, end: start + appt.DurationMinutes})
	}

	return busy, nil
}

func isFree(start, end int, busy []interval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.start, b.end) {
			return false
		}
	}
	return true
}

// AvailableSlots оставляет из candidates только слоты, в которые помещается услуга длительностью durationMinutes:
// услуга заканчивается не позже closeTime и не пересекается с активными записями.
// Порядок кандидатов сохраняется, некорректные кандидаты отбрасываются.
func (p Policy) AvailableSlots(
	candidates []types.TimeString,
	durationMinutes int,
	appointments []*domain.Appointment,
	closeTime types.TimeString,
) ([]types.TimeString, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidTimeValue, durationMinutes)
	}

	closeMinutes, err := closeTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: close time %q", ErrInvalidTimeValue, closeTime)
	}

	busy, err := p.busyIntervals(appointments)
	if err != nil {
		return nil, err
	}

	result := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		start, err := slot.Minutes()
		if err != nil {
			continue
		}

		end := start + durationMinutes
		if end > closeMinutes {
			continue
		}

		if isFree(start, end, busy) {
			result = append(result, slot)
		}
	}

	return result, nil
}

// CheckSlot повторно проверяет один запрошенный слот перед записью.
// Возвращает ErrInvalidTimeValue для некорректного времени, ErrNotOnGrid для времени вне сетки
// и ErrSlotTaken, если слот отфильтрован.
func (p Policy) CheckSlot(
	window Window,
	stepMinutes int,
	durationMinutes int,
	appointments []*domain.Appointment,
	target types.TimeString,
) error {
	targetMinutes, err := target.Minutes()
	if err != nil {
		return fmt.Errorf("%w: requested time %q", ErrInvalidTimeValue, target)
	}

	onGrid := false
	for _, candidate := range GenerateSlots(window, stepMinutes) {
		if m, _ := candidate.Minutes(); m == targetMinutes {
			onGrid = true
			break
		}
	}
	if !onGrid {
		return fmt.Errorf("%w: %s", ErrNotOnGrid, target)
	}

	normalized, err := types.FromMinutes(targetMinutes)
	if err != nil {
		return fmt.Errorf("%w: requested time %q", ErrInvalidTimeValue, target)
	}

	available, err := p.AvailableSlots([]types.TimeString{normalized}, durationMinutes, appointments, window.End)
	if err != nil {
		return err
	}
	if len(available) == 0 {
		return fmt.Errorf("%w: %s", ErrSlotTaken, normalized)
	}

	return nil
}

// CheckInterval проверяет, что интервал [start, start+duration) не пересекается с активными записями.
// Используется для сделок, время которых задано салоном и не обязано лежать на сетке
// или в часах работы. Интервал не может выходить за полночь.
func (p Policy) CheckInterval(start types.TimeString, durationMinutes int, appointments []*domain.Appointment) error {
	startMinutes, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: requested time %q", ErrInvalidTimeValue, start)
	}
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidTimeValue, durationMinutes)
	}
	if startMinutes+durationMinutes > types.MinutesPerDay {
		return fmt.Errorf("%w: %s plus %d minutes runs past midnight", ErrInvalidTimeValue, start, durationMinutes)
	}

	busy, err := p.busyIntervals(appointments)
	if err != nil {
		return err
	}

	if !isFree(startMinutes, startMinutes+durationMinutes, busy) {
		return fmt.Errorf("%w: %s", ErrSlotTaken, start)
	}
	return nil
}
