package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// DealStatus represents the lifecycle state of a deal
type DealStatus string

const (
	DealActive  DealStatus = "active"
	DealClaimed DealStatus = "claimed"
	DealExpired DealStatus = "expired"
)

// Deal is a single discounted slot that exactly one customer can claim
type Deal struct {
	ID              uuid.UUID
	SalonID         uuid.UUID
	ServiceID       *uuid.UUID
	ServiceName     string
	OriginalPrice   float64
	DiscountPrice   float64
	DealDate        types.Date
	StartTime       types.TimeString
	DurationMinutes int
	Status          DealStatus
	StaffID         *uuid.UUID
	ClaimedBy       *uuid.UUID
	ClaimedAt       *time.Time
	CreatedAt       time.Time
}

// IsActive returns true if the deal can still be claimed
func (d *Deal) IsActive() bool {
	return d.Status == DealActive
}

// DiscountPercent returns the discount relative to the original price (0-100)
func (d *Deal) DiscountPercent() float64 {
	if d.OriginalPrice <= 0 {
		return 0
	}
	return (d.OriginalPrice - d.DiscountPrice) / d.OriginalPrice * 100
}
