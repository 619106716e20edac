package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the length of a day in minutes.
const MinutesPerDay = 24 * 60

const clockLayout = "15:04"

// ErrInvalidTimeString is returned when a value is not a valid "HH:MM" or "HH:MM:SS" time of day.
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString is a wall-clock time of day stored as "HH:MM".
// "24:00" is accepted as the end of a day.
//
// Values read from storage are kept as-is even when malformed, so callers can decide
// whether bad third-party data should fail open or closed. Use Validate or Minutes to check.
type TimeString string

// NewTimeString returns the time of day of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(clockLayout))
}

// NewTimeStringFromString parses "HH:MM" or "HH:MM:SS" and returns the normalized "HH:MM" form.
// Seconds are truncated.
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(s)
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes)
}

// FromMinutes builds a TimeString from minutes since midnight (0..1440).
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes is outside of a day", ErrInvalidTimeString, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Minutes returns minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	return parseMinutes(string(t))
}

// Validate checks the format of the value.
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// AddMinutes returns t shifted by n minutes. The result must stay within the same day.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes + n)
}

// IsBefore reports whether t is strictly earlier than other. Malformed values never compare.
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other. Malformed values never compare.
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as "HH:MM:SS" and are normalized,
// anything unparsable is kept raw.
func (t *TimeString) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("types.TimeString: cannot scan %T", src)
	}

	if normalized, err := NewTimeStringFromString(raw); err == nil {
		*t = normalized
		return nil
	}
	*t = TimeString(raw)
	return nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	return string(t), nil
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hours, err := parseClockPart(parts[0], 1, 2)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minutes, err := parseClockPart(parts[1], 2, 2)
	if err != nil || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if len(parts) == 3 {
		seconds, err := parseClockPart(parts[2], 2, 2)
		if err != nil || seconds > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
		if hours == 24 && seconds != 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}

	total := hours*60 + minutes
	if hours > 24 || total > MinutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return total, nil
}

func parseClockPart(part string, minLen, maxLen int) (int, error) {
	if len(part) < minLen || len(part) > maxLen {
		return 0, ErrInvalidTimeString
	}
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, ErrInvalidTimeString
		}
	}
	return strconv.Atoi(part)
}
