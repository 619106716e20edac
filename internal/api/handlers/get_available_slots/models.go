package get_available_slots

import (
	"github.com/google/uuid"

	getAvailableSlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string    `json:"date"`
	SalonID         uuid.UUID `json:"salonId"`
	ServiceID       uuid.UUID `json:"serviceId"`
	DurationMinutes int       `json:"durationMinutes"`
	StepMinutes     int       `json:"stepMinutes"`
	Closed          bool      `json:"closed"`
	HoursDefaulted  bool      `json:"hoursDefaulted,omitempty"`
	OpenTime        *string   `json:"openTime,omitempty"`
	CloseTime       *string   `json:"closeTime,omitempty"`
	Slots           []string  `json:"slots"` // ["09:00", "09:30", ...]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.String(),
		SalonID:         resp.SalonID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		StepMinutes:     resp.StepMinutes,
		Closed:          resp.Closed,
		HoursDefaulted:  resp.HoursDefaulted,
		OpenTime:        timeStringPtr(resp.OpenTime),
		CloseTime:       timeStringPtr(resp.CloseTime),
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(salonID, serviceID uuid.UUID, dateStr string, userID *uuid.UUID) (*getAvailableSlots.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		UserID:    userID,
		SalonID:   salonID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}

func timeStringPtr(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
