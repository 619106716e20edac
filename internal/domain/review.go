package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer's rating of a salon
type Review struct {
	ID            uuid.UUID
	SalonID       *uuid.UUID // nil when stored through the anonymous fallback
	UserID        *uuid.UUID
	AppointmentID *uuid.UUID
	Rating        int
	Comment       *string
	CreatedAt     time.Time
}

// IsAnonymous returns true if the review carries no author
func (r *Review) IsAnonymous() bool {
	return r.UserID == nil
}
