package models

import (
	"math"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// DealResponse ответ с данными сделки
type DealResponse struct {
	ID              uuid.UUID  `json:"id"`
	SalonID         uuid.UUID  `json:"salonId"`
	ServiceID       *uuid.UUID `json:"serviceId,omitempty"`
	ServiceName     string     `json:"serviceName"`
	OriginalPrice   float64    `json:"originalPrice"`
	DiscountPrice   float64    `json:"discountPrice"`
	DiscountPercent int        `json:"discountPercent"`
	Date            string     `json:"date"`      // "2026-03-02"
	StartTime       string     `json:"startTime"` // "10:15"
	DurationMinutes int        `json:"durationMinutes"`
}

// DealListResponse ответ со списком сделок
type DealListResponse struct {
	Deals []DealResponse `json:"deals"`
}

// FromDomainDeal конвертирует domain модель в DTO
func FromDomainDeal(d *domain.Deal) DealResponse {
	return DealResponse{
		ID:              d.ID,
		SalonID:         d.SalonID,
		ServiceID:       d.ServiceID,
		ServiceName:     d.ServiceName,
		OriginalPrice:   d.OriginalPrice,
		DiscountPrice:   d.DiscountPrice,
		DiscountPercent: int(math.Round(d.DiscountPercent())),
		Date:            d.DealDate.String(),
		StartTime:       d.StartTime.String(),
		DurationMinutes: d.DurationMinutes,
	}
}

// FromDomainDealList конвертирует список domain моделей в DTO
func FromDomainDealList(deals []*domain.Deal) *DealListResponse {
	resp := &DealListResponse{Deals: make([]DealResponse, 0, len(deals))}
	for _, deal := range deals {
		resp.Deals = append(resp.Deals, FromDomainDeal(deal))
	}
	return resp
}
