package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Weekday is the key of a salon's weekly schedule
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

// Weekdays lists schedule keys starting from Monday
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid returns true for one of the seven schedule keys
func (w Weekday) IsValid() bool {
	for _, d := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// DayWindow is the operating window of one weekday.
// Start and End are ignored when Closed is true.
type DayWindow struct {
	Closed bool             `json:"closed"`
	Start  types.TimeString `json:"start,omitempty"`
	End    types.TimeString `json:"end,omitempty"`
}

// OpeningHours maps a weekday to its window. A missing key means "not configured".
type OpeningHours map[Weekday]DayWindow

// Scan implements sql.Scanner for the JSON column salons.opening_hours
func (h *OpeningHours) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*h = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("domain.OpeningHours: cannot scan %T", src)
	}

	if len(raw) == 0 {
		*h = nil
		return nil
	}

	hours := make(OpeningHours)
	if err := json.Unmarshal(raw, &hours); err != nil {
		return fmt.Errorf("domain.OpeningHours: %w", err)
	}
	*h = hours
	return nil
}

// Value implements driver.Valuer
func (h OpeningHours) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	raw, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// PaymentMethod is the payment option chosen at booking time
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// IsValid returns true for a known payment method
func (p PaymentMethod) IsValid() bool {
	return p == PaymentCash || p == PaymentOnline
}

// PaymentMethods is the list of methods a salon accepts, stored as JSON
type PaymentMethods []PaymentMethod

// Scan implements sql.Scanner
func (p *PaymentMethods) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("domain.PaymentMethods: cannot scan %T", src)
	}

	if len(raw) == 0 {
		*p = nil
		return nil
	}

	var methods []PaymentMethod
	if err := json.Unmarshal(raw, &methods); err != nil {
		return fmt.Errorf("domain.PaymentMethods: %w", err)
	}
	*p = methods
	return nil
}

// Value implements driver.Valuer
func (p PaymentMethods) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	raw, err := json.Marshal([]PaymentMethod(p))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Salon represents a tenant of the platform
type Salon struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	OpeningHours   OpeningHours
	PaymentMethods PaymentMethods
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AcceptsPayment returns true if the salon takes the given method.
// A salon without a configured list accepts cash only.
func (s *Salon) AcceptsPayment(method PaymentMethod) bool {
	if len(s.PaymentMethods) == 0 {
		return method == PaymentCash
	}
	for _, m := range s.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// IsOwner returns true if userID owns the salon
func (s *Salon) IsOwner(userID uuid.UUID) bool {
	return userID != uuid.Nil && s.OwnerID == userID
}

// Service is a bookable offering of a salon
type Service struct {
	ID              uuid.UUID
	SalonID         uuid.UUID
	Name            string
	Category        *string
	DurationMinutes int
	Price           float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
