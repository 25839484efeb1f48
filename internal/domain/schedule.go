package domain

import (
	"time"

	"github.com/tenzan/jikan-pro-ws/pkg/types"
)

// WorkingHoursRule represents the open window for one weekday.
// A rule belongs either to a specific staff member (StaffID set) or is the
// business-wide default (StaffID nil). Staff rules take precedence over the
// business default for the same weekday.
type WorkingHoursRule struct {
	ID         int64
	BusinessID int64
	StaffID    *int64
	DayOfWeek  int // 0 = Sunday ... 6 = Saturday, как в time.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
	IsEnabled  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the rule invariants: valid times and StartTime < EndTime
// when the rule is enabled
func (r *WorkingHoursRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	if !r.IsEnabled {
		return nil
	}
	if err := r.StartTime.Validate(); err != nil {
		return err
	}
	if err := r.EndTime.Validate(); err != nil {
		return err
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return ErrInvalidWorkingWindow
	}
	return nil
}

// WeeklySchedule полное недельное расписание (до 7 правил)
type WeeklySchedule struct {
	BusinessID int64
	StaffID    *int64
	Rules      []*WorkingHoursRule
}

// RuleForDay returns the rule for the given weekday, or nil if absent
func (s *WeeklySchedule) RuleForDay(day time.Weekday) *WorkingHoursRule {
	for _, rule := range s.Rules {
		if rule.DayOfWeek == int(day) {
			return rule
		}
	}
	return nil
}
