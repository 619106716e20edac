package claim_deal

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.DealID == uuid.Nil {
		return fmt.Errorf("%w: dealID is required", ErrInvalidInput)
	}

	if req.UserID != nil && *req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userID must not be empty", ErrInvalidInput)
	}

	if req.PaymentMethod != nil && !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, *req.PaymentMethod)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

func paymentMethodOf(req *Request) domain.PaymentMethod {
	if req.PaymentMethod == nil {
		return domain.PaymentCash
	}
	return *req.PaymentMethod
}

func statusFor(method domain.PaymentMethod) domain.AppointmentStatus {
	if method == domain.PaymentOnline {
		return domain.StatusPending
	}
	return domain.StatusConfirmed
}
