package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tenzan/jikan-pro-ws/pkg/types"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range ValidStatuses {
		assert.True(t, s.IsValid())
	}
	assert.False(t, AppointmentStatus("NO_SHOW").IsValid())
	assert.False(t, AppointmentStatus("").IsValid())
}

func TestAppointmentBlocksSlot(t *testing.T) {
	// Отменённая запись не занимает слот, все остальные статусы занимают,
	// включая завершённые
	for _, tt := range []struct {
		status AppointmentStatus
		blocks bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCompleted, true},
		{StatusCancelled, false},
	} {
		appt := Appointment{Status: tt.status}
		assert.Equal(t, tt.blocks, appt.BlocksSlot(), "status %s", tt.status)
	}
}

func TestEventTypeInitialStatus(t *testing.T) {
	withConfirmation := EventType{RequiresConfirmation: true}
	assert.Equal(t, StatusPending, withConfirmation.InitialStatus())

	instant := EventType{RequiresConfirmation: false}
	assert.Equal(t, StatusConfirmed, instant.InitialStatus())
}

func TestWorkingHoursRuleValidate(t *testing.T) {
	valid := WorkingHoursRule{
		DayOfWeek: 1,
		StartTime: types.TimeString("09:00"),
		EndTime:   types.TimeString("17:00"),
		IsEnabled: true,
	}
	assert.NoError(t, valid.Validate())

	inverted := valid
	inverted.StartTime = types.TimeString("17:00")
	inverted.EndTime = types.TimeString("09:00")
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidWorkingWindow)

	equal := valid
	equal.EndTime = equal.StartTime
	assert.ErrorIs(t, equal.Validate(), ErrInvalidWorkingWindow)

	// Выключенное правило не проверяет времена
	disabled := inverted
	disabled.IsEnabled = false
	assert.NoError(t, disabled.Validate())

	badDay := valid
	badDay.DayOfWeek = 7
	assert.ErrorIs(t, badDay.Validate(), ErrInvalidDayOfWeek)
}
