package models

import (
	"github.com/tenzan/jikan-pro-ws/internal/domain"
	"github.com/tenzan/jikan-pro-ws/pkg/types"
)

// Request модели

// RuleInput правило рабочих часов на один день недели
type RuleInput struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье .. 6 = суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
	IsEnabled bool   `json:"isEnabled"`
}

// PutScheduleRequest запрос на замену недельного расписания.
// StaffID = nil задаёт дефолтное расписание бизнеса, которое
// действует для сотрудников без персонального правила на день.
type PutScheduleRequest struct {
	BusinessID int64       `json:"-"`
	StaffID    *int64      `json:"staffId,omitempty"`
	Rules      []RuleInput `json:"rules"`
}

// ToDomainRule конвертирует input в domain модель
func (r *RuleInput) ToDomainRule(businessID int64, staffID *int64) *domain.WorkingHoursRule {
	return &domain.WorkingHoursRule{
		BusinessID: businessID,
		StaffID:    staffID,
		DayOfWeek:  r.DayOfWeek,
		StartTime:  types.TimeString(r.StartTime),
		EndTime:    types.TimeString(r.EndTime),
		IsEnabled:  r.IsEnabled,
	}
}

// Response модели

// RuleResponse правило рабочих часов в ответе
type RuleResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsEnabled bool   `json:"isEnabled"`
}

// ScheduleResponse недельное расписание владельца (бизнеса или сотрудника)
type ScheduleResponse struct {
	BusinessID int64          `json:"businessId"`
	StaffID    *int64         `json:"staffId,omitempty"`
	Rules      []RuleResponse `json:"rules"`
}

// FromDomainRules конвертирует список правил в DTO
func FromDomainRules(businessID int64, staffID *int64, rules []*domain.WorkingHoursRule) *ScheduleResponse {
	out := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, RuleResponse{
			ID:        r.ID,
			DayOfWeek: r.DayOfWeek,
			StartTime: r.StartTime.String(),
			EndTime:   r.EndTime.String(),
			IsEnabled: r.IsEnabled,
		})
	}
	return &ScheduleResponse{
		BusinessID: businessID,
		StaffID:    staffID,
		Rules:      out,
	}
}
