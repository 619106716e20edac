package claim_deal

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	claimDeal "github.com/m04kA/SMC-SalonBookingService/internal/usecase/claim_deal"
)

// ClaimDealRequest HTTP request model.
// Тело запроса опционально
type ClaimDealRequest struct {
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// ClaimDealResponse HTTP response model
type ClaimDealResponse struct {
	AppointmentID   uuid.UUID  `json:"appointmentId"`
	DealID          uuid.UUID  `json:"dealId"`
	SalonID         uuid.UUID  `json:"salonId"`
	UserID          *uuid.UUID `json:"userId,omitempty"`
	ServiceName     string     `json:"serviceName"`
	BookingDate     string     `json:"bookingDate"`
	StartTime       string     `json:"startTime"`
	DurationMinutes int        `json:"durationMinutes"`
	OriginalPrice   float64    `json:"originalPrice"`
	Price           float64    `json:"price"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"paymentMethod"`
	DroppedFields   []string   `json:"droppedFields,omitempty"`
	CreatedAt       string     `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ClaimDealRequest) ToUseCaseRequest(dealID uuid.UUID, userID *uuid.UUID) (*claimDeal.Request, error) {
	var paymentMethod *domain.PaymentMethod
	if r.PaymentMethod != nil {
		method := domain.PaymentMethod(*r.PaymentMethod)
		if !method.IsValid() {
			return nil, fmt.Errorf("unknown payment method %q", *r.PaymentMethod)
		}
		paymentMethod = &method
	}

	return &claimDeal.Request{
		DealID:        dealID,
		UserID:        userID,
		PaymentMethod: paymentMethod,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *claimDeal.Response) *ClaimDealResponse {
	return &ClaimDealResponse{
		AppointmentID:   resp.AppointmentID,
		DealID:          resp.DealID,
		SalonID:         resp.SalonID,
		UserID:          resp.UserID,
		ServiceName:     resp.ServiceName,
		BookingDate:     resp.BookingDate.String(),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		OriginalPrice:   resp.OriginalPrice,
		Price:           resp.Price,
		Status:          string(resp.Status),
		PaymentMethod:   string(resp.PaymentMethod),
		DroppedFields:   resp.DroppedFields,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
