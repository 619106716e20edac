package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Window рабочее окно салона на конкретную дату, [Start, End)
type Window struct {
	Start types.TimeString
	End   types.TimeString
}

// Bounds возвращает границы окна в минутах от полуночи
func (w Window) Bounds() (int, int, error) {
	start, err := w.Start.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: window start %q", ErrInvalidTimeValue, w.Start)
	}
	end, err := w.End.Minutes()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: window end %q", ErrInvalidTimeValue, w.End)
	}
	if start >= end {
		return 0, 0, fmt.Errorf("%w: window start %s is not before end %s", ErrInvalidTimeValue, w.Start, w.End)
	}
	return start, end, nil
}

// Resolution показывает, откуда взято окно на дату
type Resolution int

const (
	// ResolvedConfigured окно задано в расписании салона
	ResolvedConfigured Resolution = iota
	// ResolvedDefault расписание на этот день не задано, применено окно по умолчанию
	ResolvedDefault
	// ResolvedClosed салон закрыт
	ResolvedClosed
)

func (r Resolution) String() string {
	switch r {
	case ResolvedConfigured:
		return "configured"
	case ResolvedDefault:
		return "default"
	case ResolvedClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Policy набор правил fail-open для расписания и чужих данных
type Policy struct {
	// FailOpenHours: день без записи в расписании считается открытым с DefaultWindow.
	// Если false, такой день считается закрытым.
	FailOpenHours bool
	DefaultWindow Window
	// SkipMalformedAppointments: записи с некорректным временем не блокируют слоты.
	// Если false, фильтр возвращает ErrInvalidTimeValue.
	SkipMalformedAppointments bool
}

// DefaultPolicy fail-open политика с окном 09:00-18:00
func DefaultPolicy() Policy {
	return Policy{
		FailOpenHours:             true,
		DefaultWindow:             Window{Start: "09:00", End: "18:00"},
		SkipMalformedAppointments: true,
	}
}

// WeekdayOf возвращает ключ расписания для даты.
// time.Weekday нумерует дни с воскресенья (0), ключи расписания именованные.
func WeekdayOf(date time.Time) domain.Weekday {
	switch date.Weekday() {
	case time.Monday:
		return domain.Monday
	case time.Tuesday:
		return domain.Tuesday
	case time.Wednesday:
		return domain.Wednesday
	case time.Thursday:
		return domain.Thursday
	case time.Friday:
		return domain.Friday
	case time.Saturday:
		return domain.Saturday
	default:
		return domain.Sunday
	}
}

// WindowFor возвращает рабочее окно салона на дату.
// Для закрытого дня возвращается nil окно и ResolvedClosed.
func (p Policy) WindowFor(hours domain.OpeningHours, date time.Time) (*Window, Resolution, error) {
	day, ok := hours[WeekdayOf(date)]
	if !ok {
		if !p.FailOpenHours {
			return nil, ResolvedClosed, nil
		}
		window := p.DefaultWindow
		if _, _, err := window.Bounds(); err != nil {
			return nil, ResolvedDefault, err
		}
		return &window, ResolvedDefault, nil
	}

	if day.Closed {
		return nil, ResolvedClosed, nil
	}

	window := Window{Start: day.Start, End: day.End}
	if _, _, err := window.Bounds(); err != nil {
		return nil, ResolvedConfigured, err
	}
	return &window, ResolvedConfigured, nil
}

// IsOpen отвечает, работает ли салон в указанную дату.
// Некорректно настроенный день считается закрытым.
func (p Policy) IsOpen(hours domain.OpeningHours, date time.Time) bool {
	window, _, err := p.WindowFor(hours, date)
	return err == nil && window != nil
}
