package claim_deal

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	claimDeal "github.com/m04kA/SMC-SalonBookingService/internal/usecase/claim_deal"
)

const (
	msgInvalidDealID         = "некорректный ID сделки"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidPaymentMethod  = "некорректный способ оплаты"
	msgInvalidInput          = "некорректные данные запроса"
	msgDealNotFound          = "сделка не найдена"
	msgDealUnavailable       = "сделка уже недоступна"
	msgSalonNotFound         = "салон не найден"
	msgPaymentNotAccepted    = "салон не принимает выбранный способ оплаты"
	msgSlotNoLongerAvailable = "время сделки пересекается с другой записью"
	msgInvalidTimeValue      = "некорректное время сделки"
	msgBusy                  = "слот сейчас бронируется другим клиентом, повторите попытку"
)

type Handler struct {
	useCase ClaimDealUseCase
	logger  Logger
}

func NewHandler(useCase ClaimDealUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/deals/{dealId}/claim
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем dealId из URL
	dealID, err := uuid.Parse(mux.Vars(r)["dealId"])
	if err != nil {
		h.logger.Warn("POST /deals/{id}/claim - Invalid deal ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDealID)
		return
	}

	// Тело опционально: без него сделка забирается с оплатой наличными
	var req ClaimDealRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /deals/{id}/claim - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.GetUserID(r.Context()); ok {
		userID = &id
	}

	useCaseReq, err := req.ToUseCaseRequest(dealID, userID)
	if err != nil {
		h.logger.Warn("POST /deals/{id}/claim - Invalid payment method: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentMethod)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, claimDeal.ErrDealNotFound):
			h.logger.Warn("POST /deals/{id}/claim - Deal not found: deal_id=%s", dealID)
			handlers.RespondNotFound(w, msgDealNotFound)

		case errors.Is(err, claimDeal.ErrDealUnavailable):
			h.logger.Warn("POST /deals/{id}/claim - Deal unavailable: deal_id=%s", dealID)
			handlers.RespondConflict(w, msgDealUnavailable)

		case errors.Is(err, claimDeal.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /deals/{id}/claim - Deal time overlaps an appointment: deal_id=%s", dealID)
			handlers.RespondConflict(w, msgSlotNoLongerAvailable)

		case errors.Is(err, claimDeal.ErrBusy):
			h.logger.Warn("POST /deals/{id}/claim - Slot lock busy: deal_id=%s", dealID)
			handlers.RespondConflict(w, msgBusy)

		case errors.Is(err, claimDeal.ErrSalonNotFound):
			h.logger.Warn("POST /deals/{id}/claim - Salon not found: deal_id=%s", dealID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, claimDeal.ErrPaymentMethodNotAccepted):
			h.logger.Warn("POST /deals/{id}/claim - Payment method not accepted: deal_id=%s", dealID)
			handlers.RespondBadRequest(w, msgPaymentNotAccepted)

		case errors.Is(err, claimDeal.ErrInvalidTimeValue):
			h.logger.Warn("POST /deals/{id}/claim - Invalid time value: deal_id=%s, error=%v", dealID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeValue)

		case errors.Is(err, claimDeal.ErrInvalidInput):
			h.logger.Warn("POST /deals/{id}/claim - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /deals/{id}/claim - Failed to claim deal: deal_id=%s, error=%v", dealID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /deals/{id}/claim - Deal claimed successfully: deal_id=%s, appointment_id=%s",
		dealID, result.AppointmentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
