package models

import (
	"github.com/tenzan/jikan-pro-ws/internal/domain"
)

// Request модели

// CreateEventTypeRequest запрос на создание типа события
type CreateEventTypeRequest struct {
	BusinessID           int64   `json:"-"`
	StaffID              *int64  `json:"staffId,omitempty"`
	Title                string  `json:"title"`
	Slug                 string  `json:"slug"`
	Description          *string `json:"description,omitempty"`
	DurationMinutes      int     `json:"durationMinutes"`
	BufferBeforeMinutes  int     `json:"bufferBeforeMinutes"`
	BufferAfterMinutes   int     `json:"bufferAfterMinutes"`
	MinimumNoticeMinutes int     `json:"minimumNoticeMinutes"`
	RequiresConfirmation bool    `json:"requiresConfirmation"`
	Color                string  `json:"color,omitempty"`
	Location             *string `json:"location,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateEventTypeRequest) ToDomain() *domain.EventType {
	return &domain.EventType{
		BusinessID:           r.BusinessID,
		StaffID:              r.StaffID,
		Title:                r.Title,
		Slug:                 r.Slug,
		Description:          r.Description,
		DurationMinutes:      r.DurationMinutes,
		BufferBeforeMinutes:  r.BufferBeforeMinutes,
		BufferAfterMinutes:   r.BufferAfterMinutes,
		MinimumNoticeMinutes: r.MinimumNoticeMinutes,
		RequiresConfirmation: r.RequiresConfirmation,
		IsActive:             true,
		Color:                r.Color,
		Location:             r.Location,
	}
}

// Response модели

// EventTypeResponse ответ с данными типа события
type EventTypeResponse struct {
	ID                   int64   `json:"id"`
	BusinessID           int64   `json:"businessId"`
	StaffID              *int64  `json:"staffId,omitempty"`
	Title                string  `json:"title"`
	Slug                 string  `json:"slug"`
	Description          *string `json:"description,omitempty"`
	DurationMinutes      int     `json:"durationMinutes"`
	BufferBeforeMinutes  int     `json:"bufferBeforeMinutes"`
	BufferAfterMinutes   int     `json:"bufferAfterMinutes"`
	MinimumNoticeMinutes int     `json:"minimumNoticeMinutes"`
	RequiresConfirmation bool    `json:"requiresConfirmation"`
	IsActive             bool    `json:"isActive"`
	Color                string  `json:"color,omitempty"`
	Location             *string `json:"location,omitempty"`
}

// EventTypeListResponse ответ со списком типов событий
type EventTypeListResponse struct {
	EventTypes []EventTypeResponse `json:"eventTypes"`
}

// Методы конвертации

// FromDomainEventType конвертирует domain модель в DTO
func FromDomainEventType(e *domain.EventType) *EventTypeResponse {
	if e == nil {
		return nil
	}
	return &EventTypeResponse{
		ID:                   e.ID,
		BusinessID:           e.BusinessID,
		StaffID:              e.StaffID,
		Title:                e.Title,
		Slug:                 e.Slug,
		Description:          e.Description,
		DurationMinutes:      e.DurationMinutes,
		BufferBeforeMinutes:  e.BufferBeforeMinutes,
		BufferAfterMinutes:   e.BufferAfterMinutes,
		MinimumNoticeMinutes: e.MinimumNoticeMinutes,
		RequiresConfirmation: e.RequiresConfirmation,
		IsActive:             e.IsActive,
		Color:                e.Color,
		Location:             e.Location,
	}
}

// FromDomainEventTypeList конвертирует список domain моделей в DTO
func FromDomainEventTypeList(eventTypes []*domain.EventType) *EventTypeListResponse {
	out := make([]EventTypeResponse, 0, len(eventTypes))
	for _, e := range eventTypes {
		out = append(out, *FromDomainEventType(e))
	}
	return &EventTypeListResponse{EventTypes: out}
}
