package availability

import (
	"github.com/tenzan/jikan-pro-ws/internal/domain"
)

// Interval is a half-open [Start, End) time range within a day,
// expressed in minutes since midnight. Buffered intervals may extend
// slightly past midnight on either side; overlap math stays valid.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints do NOT count: [10:00,10:30) and [10:30,11:00)
// do not overlap.
func (a Interval) Overlaps(b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Buffered returns the comparison interval for an appointment or candidate
// slot: the actual interval widened by the configured buffers on each side.
// Buffered intervals are used only for overlap checks and are never shown
// to the booker.
func Buffered(start, durationMinutes, bufferBefore, bufferAfter int) Interval {
	return Interval{
		Start: start - bufferBefore,
		End:   start + durationMinutes + bufferAfter,
	}
}

// BusyFromAppointments converts a day's appointments into busy intervals.
// Cancelled appointments never block; everything else does, including
// completed ones. Appointments with an unparseable start time are skipped.
func BusyFromAppointments(appointments []*domain.Appointment) []Interval {
	busy := make([]Interval, 0, len(appointments))
	for _, appt := range appointments {
		if !appt.BlocksSlot() {
			continue
		}
		start, err := appt.StartTime.Minutes()
		if err != nil {
			continue
		}
		busy = append(busy, Interval{Start: start, End: start + appt.DurationMinutes})
	}
	return busy
}

// Conflicts reports whether a proposed appointment at start (minutes since
// midnight) would collide with any busy interval. Both sides are buffered:
// the candidate with the request's buffers and each busy interval with the
// same buffer configuration.
func Conflicts(start, durationMinutes, bufferBefore, bufferAfter int, busy []Interval) bool {
	candidate := Buffered(start, durationMinutes, bufferBefore, bufferAfter)
	for _, b := range busy {
		buffered := Interval{Start: b.Start - bufferBefore, End: b.End + bufferAfter}
		if candidate.Overlaps(buffered) {
			return true
		}
	}
	return false
}
