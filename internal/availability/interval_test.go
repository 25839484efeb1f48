package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	"github.com/tenzan/jikan-pro-ws/pkg/types"
)

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "полное пересечение",
			a:    Interval{Start: 600, End: 660},
			b:    Interval{Start: 610, End: 650},
			want: true,
		},
		{
			name: "частичное пересечение слева",
			a:    Interval{Start: 600, End: 660},
			b:    Interval{Start: 570, End: 630},
			want: true,
		},
		{
			name: "частичное пересечение справа",
			a:    Interval{Start: 600, End: 660},
			b:    Interval{Start: 630, End: 690},
			want: true,
		},
		{
			name: "касание концов не считается пересечением",
			a:    Interval{Start: 600, End: 630},
			b:    Interval{Start: 630, End: 660},
			want: false,
		},
		{
			name: "касание в обратном порядке",
			a:    Interval{Start: 630, End: 660},
			b:    Interval{Start: 600, End: 630},
			want: false,
		},
		{
			name: "непересекающиеся интервалы",
			a:    Interval{Start: 540, End: 570},
			b:    Interval{Start: 600, End: 630},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestBuffered(t *testing.T) {
	// 10:00, 30 минут, буферы 5/10 -> [09:55, 10:40)
	got := Buffered(600, 30, 5, 10)
	assert.Equal(t, Interval{Start: 595, End: 640}, got)

	// Без буферов интервал совпадает с фактическим
	got = Buffered(600, 30, 0, 0)
	assert.Equal(t, Interval{Start: 600, End: 630}, got)
}

func TestConflicts(t *testing.T) {
	busy := []Interval{{Start: 600, End: 630}} // 10:00-10:30

	// Буферизованный конец кандидата ровно равен буферизованному началу
	// занятого интервала - не конфликт (полуоткрытые интервалы)
	assert.False(t, Conflicts(570, 30, 0, 0, busy)) // 09:30-10:00
	assert.False(t, Conflicts(630, 30, 0, 0, busy)) // 10:30-11:00
	assert.True(t, Conflicts(600, 30, 0, 0, busy))  // 10:00-10:30
	assert.True(t, Conflicts(615, 30, 0, 0, busy))  // 10:15-10:45

	// С буферами 5/5 касание превращается в конфликт с обеих сторон
	assert.True(t, Conflicts(570, 30, 5, 5, busy))
	assert.True(t, Conflicts(630, 30, 5, 5, busy))
	assert.False(t, Conflicts(540, 30, 5, 5, busy)) // 09:00, буфер [08:55,09:35)
}

func TestBusyFromAppointments(t *testing.T) {
	appointments := []*domain.Appointment{
		{StartTime: types.TimeString("10:00"), DurationMinutes: 30, Status: domain.StatusConfirmed},
		{StartTime: types.TimeString("11:00"), DurationMinutes: 60, Status: domain.StatusCancelled},
		{StartTime: types.TimeString("14:00"), DurationMinutes: 30, Status: domain.StatusCompleted},
		{StartTime: types.TimeString("15:00"), DurationMinutes: 30, Status: domain.StatusPending},
	}

	busy := BusyFromAppointments(appointments)

	// Отменённая запись не блокирует, завершённая и ожидающая - блокируют
	assert.Equal(t, []Interval{
		{Start: 600, End: 630},
		{Start: 840, End: 870},
		{Start: 900, End: 930},
	}, busy)
}
