package create_review

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/reviews"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/reviews/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "оценка должна быть от 1 до 5, комментарий не длиннее 2000 символов"
	msgSalonNotFound      = "салон не найден"
	msgPermissionDenied   = "нет прав на создание отзыва"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonId}/reviews
// Отзыв можно оставить и без X-User-ID, тогда он сохраняется анонимно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := uuid.Parse(mux.Vars(r)["salonId"])
	if err != nil {
		h.logger.Warn("POST /salons/{id}/reviews - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		req.UserID = &userID
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/reviews - Invalid data: salon_id=%s, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, reviews.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/reviews - Salon not found: salon_id=%s", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, reviews.ErrPermissionDenied):
			h.logger.Warn("POST /salons/{id}/reviews - Storage policy rejected review: salon_id=%s", salonID)
			handlers.RespondForbidden(w, msgPermissionDenied)

		default:
			h.logger.Error("POST /salons/{id}/reviews - Failed to create review: salon_id=%s, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/reviews - Review created successfully: review_id=%s, salon_id=%s, anonymous=%t",
		result.ID, salonID, result.Anonymous)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
