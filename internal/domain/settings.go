package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingSettings represents the per-salon booking configuration
type BookingSettings struct {
	SalonID                 uuid.UUID
	SlotStepMinutes         int
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *BookingSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}
