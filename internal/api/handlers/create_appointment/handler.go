package create_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidData           = "некорректный формат даты, времени или способа оплаты"
	msgInvalidInput          = "некорректные данные записи"
	msgSalonNotFound         = "салон не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgPaymentNotAccepted    = "салон не принимает выбранный способ оплаты"
	msgInvalidDate           = "нельзя записаться на прошедшую дату"
	msgDateTooFar            = "дата слишком далеко в будущем"
	msgSalonClosed           = "салон закрыт в выбранную дату"
	msgInvalidTimeSlot       = "выбранное время не совпадает со слотом или выходит за часы работы"
	msgInvalidTimeValue      = "некорректные данные расписания или времени"
	msgTooLateToBook         = "слишком поздно для записи на это время"
	msgSlotNoLongerAvailable = "выбранное время уже занято"
	msgBusy                  = "слот сейчас бронируется другим клиентом, повторите попытку"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
// Гостевая запись разрешена: без X-User-ID запись создается без пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.GetUserID(r.Context()); ok {
		userID = &id
	}

	// Конвертируем в модель use case
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid data format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /appointments - Slot taken: salon_id=%s, date=%s, time=%s",
				req.SalonID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNoLongerAvailable)

		case errors.Is(err, createAppointment.ErrBusy):
			h.logger.Warn("POST /appointments - Slot lock busy: salon_id=%s, date=%s", req.SalonID, req.BookingDate)
			handlers.RespondConflict(w, msgBusy)

		case errors.Is(err, createAppointment.ErrSalonNotFound):
			h.logger.Warn("POST /appointments - Salon not found: salon_id=%s", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: salon_id=%s, service_id=%s", req.SalonID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrPaymentMethodNotAccepted):
			h.logger.Warn("POST /appointments - Payment method not accepted: salon_id=%s", req.SalonID)
			handlers.RespondBadRequest(w, msgPaymentNotAccepted)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Date in the past: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrSalonClosed):
			h.logger.Warn("POST /appointments - Salon closed: salon_id=%s, date=%s", req.SalonID, req.BookingDate)
			handlers.RespondBadRequest(w, msgSalonClosed)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: salon_id=%s, time=%s", req.SalonID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrInvalidTimeValue):
			h.logger.Warn("POST /appointments - Invalid time value: salon_id=%s, error=%v", req.SalonID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeValue)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: date=%s, time=%s", req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: salon_id=%s, error=%v", req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, salon_id=%s, guest=%t",
		result.ID, result.SalonID, userID == nil)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
