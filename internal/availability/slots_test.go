package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	"github.com/tenzan/jikan-pro-ws/pkg/types"
)

func workdayRule(start, end string) *domain.WorkingHoursRule {
	return &domain.WorkingHoursRule{
		DayOfWeek: 1,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		IsEnabled: true,
	}
}

// Понедельник в будущем, чтобы фильтр minimum notice не влиял на тесты,
// где он не задан явно
var (
	testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
)

func timeStrings(values ...string) []types.TimeString {
	out := make([]types.TimeString, len(values))
	for i, v := range values {
		out[i] = types.TimeString(v)
	}
	return out
}

func TestGenerateSlotsFullDay(t *testing.T) {
	// 09:00-17:00, 30 минут, без буферов и занятых интервалов:
	// 16 слотов от 09:00 до 16:30
	slots, err := GenerateSlots(SlotRequest{
		Rule:            workdayRule("09:00", "17:00"),
		Date:            testDate,
		Now:             testNow,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	require.Len(t, slots, 16)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("09:30"), slots[1])
	assert.Equal(t, types.TimeString("16:30"), slots[15])
}

func TestGenerateSlotsExcludesBookedSlot(t *testing.T) {
	// Занят 10:00-10:30. Соседние 09:30 и 10:30 остаются:
	// касание концов не является пересечением
	slots, err := GenerateSlots(SlotRequest{
		Rule:            workdayRule("09:00", "17:00"),
		Date:            testDate,
		Now:             testNow,
		DurationMinutes: 30,
		Busy:            []Interval{{Start: 600, End: 630}},
	})
	require.NoError(t, err)

	assert.NotContains(t, slots, types.TimeString("10:00"))
	assert.Contains(t, slots, types.TimeString("09:30"))
	assert.Contains(t, slots, types.TimeString("10:30"))
	assert.Len(t, slots, 15)
}

func TestGenerateSlotsBuffersWidenConflicts(t *testing.T) {
	// Буферы 5/5 и занятый 10:00-10:30: кандидат 09:30 имеет буферизованное
	// окно [09:25,10:05) и выбывает, 09:00 с окном [08:55,09:35) остаётся
	slots, err := GenerateSlots(SlotRequest{
		Rule:                workdayRule("09:00", "17:00"),
		Date:                testDate,
		Now:                 testNow,
		DurationMinutes:     30,
		BufferBeforeMinutes: 5,
		BufferAfterMinutes:  5,
		Busy:                []Interval{{Start: 600, End: 630}},
	})
	require.NoError(t, err)

	assert.Contains(t, slots, types.TimeString("09:00"))
	assert.NotContains(t, slots, types.TimeString("09:30"))
	assert.NotContains(t, slots, types.TimeString("10:00"))
	assert.NotContains(t, slots, types.TimeString("10:30"))
	assert.Contains(t, slots, types.TimeString("11:00"))
}

func TestGenerateSlotsBufferAfterShortensDay(t *testing.T) {
	// Буфер после 15 минут: последний слот 16:30 уже не помещается
	// (16:30 + 30 + 15 > 17:00)
	slots, err := GenerateSlots(SlotRequest{
		Rule:               workdayRule("09:00", "17:00"),
		Date:               testDate,
		Now:                testNow,
		DurationMinutes:    30,
		BufferAfterMinutes: 15,
	})
	require.NoError(t, err)

	assert.NotContains(t, slots, types.TimeString("16:30"))
	assert.Equal(t, types.TimeString("16:00"), slots[len(slots)-1])
}

func TestGenerateSlotsMinimumNotice(t *testing.T) {
	// Сегодняшний день, сейчас 09:15, notice 60 минут: порог 10:15,
	// первый доступный слот 10:30
	now := time.Date(2026, 9, 14, 9, 15, 0, 0, time.UTC)

	slots, err := GenerateSlots(SlotRequest{
		Rule:                 workdayRule("09:00", "17:00"),
		Date:                 testDate,
		Now:                  now,
		DurationMinutes:      30,
		MinimumNoticeMinutes: 60,
	})
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, types.TimeString("10:30"), slots[0])
}

func TestGenerateSlotsMinimumNoticeSpansDays(t *testing.T) {
	// Notice 48 часов полностью закрывает завтрашний день
	now := time.Date(2026, 9, 13, 12, 0, 0, 0, time.UTC)

	slots, err := GenerateSlots(SlotRequest{
		Rule:                 workdayRule("09:00", "17:00"),
		Date:                 testDate,
		Now:                  now,
		DurationMinutes:      30,
		MinimumNoticeMinutes: 48 * 60,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsDisabledOrMissingRule(t *testing.T) {
	disabled := workdayRule("09:00", "17:00")
	disabled.IsEnabled = false

	for _, rule := range []*domain.WorkingHoursRule{nil, disabled} {
		slots, err := GenerateSlots(SlotRequest{
			Rule:            rule,
			Date:            testDate,
			Now:             testNow,
			DurationMinutes: 30,
			Busy:            []Interval{{Start: 600, End: 630}},
		})
		require.NoError(t, err)
		assert.Empty(t, slots)
	}
}

func TestGenerateSlotsPastDate(t *testing.T) {
	slots, err := GenerateSlots(SlotRequest{
		Rule:            workdayRule("09:00", "17:00"),
		Date:            testDate,
		Now:             testDate.AddDate(0, 0, 1),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	req := SlotRequest{
		Rule:                 workdayRule("09:00", "17:00"),
		Date:                 testDate,
		Now:                  testNow,
		DurationMinutes:      45,
		BufferBeforeMinutes:  5,
		BufferAfterMinutes:   10,
		MinimumNoticeMinutes: 120,
		Busy:                 []Interval{{Start: 600, End: 660}, {Start: 780, End: 840}},
	}

	first, err := GenerateSlots(req)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := GenerateSlots(req)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGenerateSlotsNoOverlapInvariant(t *testing.T) {
	// Ни один выданный слот не пересекается (с буферами) ни с одним занятым
	// интервалом, и результат строго возрастает
	busy := []Interval{
		{Start: 570, End: 615},
		{Start: 720, End: 750},
		{Start: 900, End: 990},
	}

	slots, err := GenerateSlots(SlotRequest{
		Rule:                workdayRule("08:00", "18:00"),
		Date:                testDate,
		Now:                 testNow,
		DurationMinutes:     30,
		BufferBeforeMinutes: 10,
		BufferAfterMinutes:  10,
		Busy:                busy,
	})
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	prev := -1
	for _, slot := range slots {
		start, err := slot.Minutes()
		require.NoError(t, err)
		assert.Greater(t, start, prev)
		prev = start

		assert.False(t, Conflicts(start, 30, 10, 10, busy),
			"slot %s overlaps a busy interval", slot)
	}
}

func TestGenerateSlotsCustomGranularity(t *testing.T) {
	slots, err := GenerateSlots(SlotRequest{
		Rule:               workdayRule("09:00", "11:00"),
		Date:               testDate,
		Now:                testNow,
		DurationMinutes:    30,
		GranularityMinutes: 15,
	})
	require.NoError(t, err)

	assert.Equal(t, timeStrings("09:00", "09:15", "09:30", "09:45", "10:00", "10:15", "10:30"), slots)
}

func TestCheckProposed(t *testing.T) {
	busy := []Interval{{Start: 600, End: 630}}

	ok, err := CheckProposed(types.TimeString("10:30"), 30, 0, 0, busy)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckProposed(types.TimeString("10:15"), 30, 0, 0, busy)
	require.NoError(t, err)
	assert.False(t, ok)

	// Идемпотентность: повторная проверка того же интервала на том же
	// снимке занятости даёт тот же вердикт
	for i := 0; i < 5; i++ {
		again, err := CheckProposed(types.TimeString("10:15"), 30, 0, 0, busy)
		require.NoError(t, err)
		assert.False(t, again)
	}

	_, err = CheckProposed(types.TimeString("bad"), 30, 0, 0, busy)
	assert.ErrorIs(t, err, ErrInvalidParams)
}
