package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID    *uuid.UUID // ID пользователя (для логирования, не влияет на результат)
	SalonID   uuid.UUID  // ID салона
	ServiceID uuid.UUID  // ID услуги
	Date      types.Date // Дата для получения слотов
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            types.Date
	SalonID         uuid.UUID
	ServiceID       uuid.UUID
	DurationMinutes int  // Длительность услуги
	StepMinutes     int  // Шаг сетки слотов
	Closed          bool // Салон закрыт в эту дату
	HoursDefaulted  bool // Расписание на день не задано, применено окно по умолчанию
	OpenTime        *types.TimeString
	CloseTime       *types.TimeString
	Slots           []types.TimeString // Время начала свободных слотов по возрастанию
}
