package availability

import (
	"fmt"
	"time"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	"github.com/tenzan/jikan-pro-ws/pkg/types"
)

// SlotRequest параметры генерации слотов на один день
type SlotRequest struct {
	Rule *domain.WorkingHoursRule // правило рабочих часов на этот день недели, nil = выходной
	Date time.Time                // запрашиваемая дата (без времени)
	Now  time.Time                // текущее время (инжектится для тестируемости)

	DurationMinutes      int
	BufferBeforeMinutes  int
	BufferAfterMinutes   int
	MinimumNoticeMinutes int
	GranularityMinutes   int // 0 = domain.DefaultSlotGranularityMinutes

	Busy []Interval // занятые интервалы (уже без отменённых записей)
}

// GenerateSlots генерирует отсортированный список доступных времён начала.
// Слоты идут фиксированной сеткой от открытия с шагом granularity независимо
// от длительности услуги. Кандидат попадает в результат, если:
//   - его буферизованный интервал помещается до закрытия,
//   - его начало строго позже now + minimumNotice,
//   - его буферизованный интервал не пересекается ни с одним занятым.
//
// Отсутствующее или выключенное правило рабочих часов и даты в прошлом
// дают пустой список, это не ошибка.
func GenerateSlots(req SlotRequest) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0)

	if req.Rule == nil || !req.Rule.IsEnabled {
		return slots, nil
	}

	if isDateInPast(req.Date, req.Now) {
		return slots, nil
	}

	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidParams)
	}

	granularity := req.GranularityMinutes
	if granularity == 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}
	if granularity < 0 {
		return nil, fmt.Errorf("%w: granularity must be positive", ErrInvalidParams)
	}

	openMin, err := req.Rule.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: working hours start: %v", ErrInvalidParams, err)
	}
	closeMin, err := req.Rule.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: working hours end: %v", ErrInvalidParams, err)
	}

	// Слот, чей буферизованный конец выходит за закрытие, недопустим
	latestStart := closeMin - req.DurationMinutes - req.BufferAfterMinutes

	// Раньше этого момента бронировать нельзя (строго позже)
	earliestAllowed := req.Now.Add(time.Duration(req.MinimumNoticeMinutes) * time.Minute)

	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())

	for cursor := openMin; cursor <= latestStart; cursor += granularity {
		slotStart := dayStart.Add(time.Duration(cursor) * time.Minute)
		if !slotStart.After(earliestAllowed) {
			continue
		}

		if Conflicts(cursor, req.DurationMinutes, req.BufferBeforeMinutes, req.BufferAfterMinutes, req.Busy) {
			continue
		}

		ts, err := types.NewTimeStringFromMinutes(cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: slot time: %v", ErrInvalidParams, err)
		}
		slots = append(slots, ts)
	}

	// Результат отсортирован по построению, сортировка не нужна
	return slots, nil
}

// CheckProposed проверяет, что предложенное бронирование не конфликтует
// с занятыми интервалами. Используется create_appointment под той же
// буферной политикой, что и генерация слотов.
func CheckProposed(start types.TimeString, durationMinutes, bufferBefore, bufferAfter int, busy []Interval) (bool, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return false, fmt.Errorf("%w: start time: %v", ErrInvalidParams, err)
	}
	return !Conflicts(startMin, durationMinutes, bufferBefore, bufferAfter, busy), nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
