package models

import (
	"time"

	"github.com/google/uuid"
)

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	UserID        *uuid.UUID `json:"-"` // nil для гостя
	SalonID       uuid.UUID  `json:"-"`
	AppointmentID *uuid.UUID `json:"appointmentId,omitempty"`
	Rating        int        `json:"rating"`
	Comment       *string    `json:"comment,omitempty"`
}

// ReviewResponse ответ с данными сохраненного отзыва
type ReviewResponse struct {
	ID            uuid.UUID  `json:"id"`
	SalonID       uuid.UUID  `json:"salonId"`
	AppointmentID *uuid.UUID `json:"appointmentId,omitempty"`
	Rating        int        `json:"rating"`
	Comment       *string    `json:"comment,omitempty"`
	Anonymous     bool       `json:"anonymous"` // отзыв сохранен без автора
	CreatedAt     time.Time  `json:"createdAt"`
}
