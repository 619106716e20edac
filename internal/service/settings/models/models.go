package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек бронирования.
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	UserID                  uuid.UUID `json:"-"`
	SlotStepMinutes         *int      `json:"slotStepMinutes,omitempty"`
	AdvanceBookingDays      *int      `json:"advanceBookingDays,omitempty"`
	MinBookingNoticeMinutes *int      `json:"minBookingNoticeMinutes,omitempty"`
}

// ApplyTo применяет переданные поля к настройкам
func (r *UpdateSettingsRequest) ApplyTo(s *domain.BookingSettings) {
	if r.SlotStepMinutes != nil {
		s.SlotStepMinutes = *r.SlotStepMinutes
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		s.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
}

// SettingsResponse ответ с настройками бронирования салона
type SettingsResponse struct {
	SalonID                 uuid.UUID  `json:"salonId"`
	SlotStepMinutes         int        `json:"slotStepMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	IsDefault               bool       `json:"isDefault"` // true, если салон не сохранял свои настройки
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BookingSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	resp := &SettingsResponse{
		SalonID:                 s.SalonID,
		SlotStepMinutes:         s.SlotStepMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		IsDefault:               s.UpdatedAt.IsZero(),
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
