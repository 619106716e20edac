package get_salon_appointments

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// ToServiceRequest создает запрос сервиса из query параметров
func ToServiceRequest(salonID, userID uuid.UUID, startDateStr, endDateStr, statusStr, includeInactiveStr string) (*models.GetSalonAppointmentsRequest, error) {
	req := &models.GetSalonAppointmentsRequest{
		UserID:  userID,
		SalonID: salonID,
	}

	// Парсим начало периода если указано
	if startDateStr != "" {
		date, err := types.ParseDate(startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
	}

	// Парсим конец периода если указан
	if endDateStr != "" {
		date, err := types.ParseDate(endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &date
	}

	// Статус если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
