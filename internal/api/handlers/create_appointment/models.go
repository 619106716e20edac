package create_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	SalonID       uuid.UUID `json:"salonId"`
	ServiceID     uuid.UUID `json:"serviceId"`
	BookingDate   string    `json:"bookingDate"` // "2026-03-02"
	StartTime     string    `json:"startTime"`   // "10:00"
	PaymentMethod *string   `json:"paymentMethod,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	UserID          *uuid.UUID `json:"userId,omitempty"`
	SalonID         uuid.UUID  `json:"salonId"`
	ServiceID       uuid.UUID  `json:"serviceId"`
	BookingDate     string     `json:"bookingDate"`
	StartTime       string     `json:"startTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"paymentMethod"`
	ServiceName     string     `json:"serviceName"`
	Price           float64    `json:"price"`
	Notes           *string    `json:"notes,omitempty"`
	DroppedFields   []string   `json:"droppedFields,omitempty"`
	CreatedAt       string     `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID *uuid.UUID) (*createAppointment.Request, error) {
	// Парсим дату
	bookingDate, err := types.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	var paymentMethod *domain.PaymentMethod
	if r.PaymentMethod != nil {
		method := domain.PaymentMethod(*r.PaymentMethod)
		if !method.IsValid() {
			return nil, fmt.Errorf("unknown payment method %q", *r.PaymentMethod)
		}
		paymentMethod = &method
	}

	return &createAppointment.Request{
		UserID:        userID,
		SalonID:       r.SalonID,
		ServiceID:     r.ServiceID,
		Date:          bookingDate,
		StartTime:     startTime,
		PaymentMethod: paymentMethod,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		SalonID:         resp.SalonID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.String(),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
		PaymentMethod:   string(resp.PaymentMethod),
		ServiceName:     resp.ServiceName,
		Price:           resp.Price,
		Notes:           resp.Notes,
		DroppedFields:   resp.DroppedFields,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
