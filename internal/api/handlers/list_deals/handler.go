package list_deals

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/deals"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgSalonNotFound  = "салон не найден"
)

type Handler struct {
	service DealService
	logger  Logger
}

func NewHandler(service DealService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/deals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := uuid.Parse(mux.Vars(r)["salonId"])
	if err != nil {
		h.logger.Warn("GET /salons/{id}/deals - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	result, err := h.service.ListActive(r.Context(), salonID)
	if err != nil {
		if errors.Is(err, deals.ErrSalonNotFound) {
			h.logger.Warn("GET /salons/{id}/deals - Salon not found: salon_id=%s", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)
			return
		}

		h.logger.Error("GET /salons/{id}/deals - Failed to list deals: salon_id=%s, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/deals - Deals retrieved successfully: salon_id=%s, count=%d",
		salonID, len(result.Deals))
	handlers.RespondJSON(w, http.StatusOK, result)
}
