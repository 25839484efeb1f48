package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	catalogRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/catalog"
	staffRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/staff"
	whRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/workinghours"
	"github.com/tenzan/jikan-pro-ws/pkg/ptr"
	"github.com/tenzan/jikan-pro-ws/pkg/types"
)

// --- Фейки репозиториев ---

type fakeStaffRepo struct {
	staff    map[int64]*domain.Staff
	business map[int64]*domain.Business
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	return s, nil
}

func (f *fakeStaffRepo) GetBusinessByID(_ context.Context, id int64) (*domain.Business, error) {
	b, ok := f.business[id]
	if !ok {
		return nil, staffRepo.ErrBusinessNotFound
	}
	return b, nil
}

type fakeCatalogRepo struct {
	services   map[int64]*domain.Service
	eventTypes map[int64]*domain.EventType
}

func (f *fakeCatalogRepo) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeCatalogRepo) GetEventTypeByID(_ context.Context, id int64) (*domain.EventType, error) {
	e, ok := f.eventTypes[id]
	if !ok {
		return nil, catalogRepo.ErrEventTypeNotFound
	}
	return e, nil
}

type fakeWorkingHoursRepo struct {
	rules map[int]*domain.WorkingHoursRule // по дню недели
}

func (f *fakeWorkingHoursRepo) GetForStaffDay(_ context.Context, _, _ int64, dayOfWeek int) (*domain.WorkingHoursRule, error) {
	r, ok := f.rules[dayOfWeek]
	if !ok {
		return nil, whRepo.ErrRuleNotFound
	}
	return r, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) FindActiveByStaffAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Фикстуры ---

// 2026-09-14 - понедельник (day 1)
var (
	fixtureDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	fixtureNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
)

func newFixture() (*fakeStaffRepo, *fakeCatalogRepo, *fakeWorkingHoursRepo, *fakeAppointmentRepo) {
	staff := &fakeStaffRepo{
		staff:    map[int64]*domain.Staff{7: {ID: 7, BusinessID: 1, Name: "Анна"}},
		business: map[int64]*domain.Business{1: {ID: 1, Name: "Салон"}},
	}
	catalog := &fakeCatalogRepo{
		services: map[int64]*domain.Service{
			10: {ID: 10, BusinessID: 1, Name: "Стрижка", DurationMinutes: 30},
		},
		eventTypes: map[int64]*domain.EventType{
			20: {
				ID: 20, BusinessID: 1, Title: "Консультация", Slug: "intro-call",
				DurationMinutes: 60, BufferBeforeMinutes: 5, BufferAfterMinutes: 5,
				MinimumNoticeMinutes: 120, IsActive: true,
			},
		},
	}
	wh := &fakeWorkingHoursRepo{
		rules: map[int]*domain.WorkingHoursRule{
			1: {
				BusinessID: 1, DayOfWeek: 1,
				StartTime: types.TimeString("09:00"), EndTime: types.TimeString("12:00"),
				IsEnabled: true,
			},
		},
	}
	return staff, catalog, wh, &fakeAppointmentRepo{}
}

func newUseCase(staff *fakeStaffRepo, catalog *fakeCatalogRepo, wh *fakeWorkingHoursRepo, appts *fakeAppointmentRepo) *UseCase {
	uc := NewUseCase(staff, catalog, wh, appts, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: fixtureNow}
	return uc
}

// --- Тесты ---

func TestExecuteServiceSlots(t *testing.T) {
	// 09:00-12:00, услуга 30 минут без буферов: 6 слотов
	uc := newUseCase(newFixture())

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:   7,
		Date:      fixtureDate,
		ServiceID: ptr.Ptr(int64(10)),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.StaffID)
	assert.Equal(t, int64(1), resp.BusinessID)
	assert.Equal(t,
		[]types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		resp.AvailableSlots)
}

func TestExecuteExcludesBookedSlot(t *testing.T) {
	staff, catalog, wh, appts := newFixture()
	appts.appointments = []*domain.Appointment{
		{
			StaffID: 7, Date: fixtureDate,
			StartTime: types.TimeString("10:00"), DurationMinutes: 30,
			Status: domain.StatusConfirmed,
		},
	}
	uc := newUseCase(staff, catalog, wh, appts)

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:   7,
		Date:      fixtureDate,
		ServiceID: ptr.Ptr(int64(10)),
	})
	require.NoError(t, err)

	assert.NotContains(t, resp.AvailableSlots, types.TimeString("10:00"))
	assert.Contains(t, resp.AvailableSlots, types.TimeString("09:30"))
	assert.Contains(t, resp.AvailableSlots, types.TimeString("10:30"))
}

func TestExecuteEventTypeBuffers(t *testing.T) {
	// Тип события 60 минут с буферами 5/5: 11:00 уже не проходит
	// (11:00 + 60 + 5 > 12:00), последний допустимый старт - 10:30
	uc := newUseCase(newFixture())

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:     7,
		Date:        fixtureDate,
		EventTypeID: ptr.Ptr(int64(20)),
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]types.TimeString{"09:00", "09:30", "10:00", "10:30"},
		resp.AvailableSlots)
}

func TestExecuteDayWithoutRuleIsEmpty(t *testing.T) {
	// 2026-09-15 - вторник, правила нет: успех с пустым списком
	uc := newUseCase(newFixture())

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:   7,
		Date:      fixtureDate.AddDate(0, 0, 1),
		ServiceID: ptr.Ptr(int64(10)),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.AvailableSlots)
}

func TestExecutePastDateIsEmpty(t *testing.T) {
	uc := newUseCase(newFixture())

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:   7,
		Date:      time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		ServiceID: ptr.Ptr(int64(10)),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.AvailableSlots)
}

func TestExecuteStaffNotFound(t *testing.T) {
	uc := newUseCase(newFixture())

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:   999,
		Date:      fixtureDate,
		ServiceID: ptr.Ptr(int64(10)),
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecuteCrossTenantServiceHidden(t *testing.T) {
	// Услуга чужого бизнеса неотличима от несуществующей
	staff, catalog, wh, appts := newFixture()
	catalog.services[11] = &domain.Service{ID: 11, BusinessID: 2, DurationMinutes: 30}
	uc := newUseCase(staff, catalog, wh, appts)

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:   7,
		Date:      fixtureDate,
		ServiceID: ptr.Ptr(int64(11)),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteInactiveEventTypeHidden(t *testing.T) {
	staff, catalog, wh, appts := newFixture()
	catalog.eventTypes[20].IsActive = false
	uc := newUseCase(staff, catalog, wh, appts)

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:     7,
		Date:        fixtureDate,
		EventTypeID: ptr.Ptr(int64(20)),
	})
	assert.ErrorIs(t, err, ErrEventTypeNotFound)
}

func TestExecuteRejectsAmbiguousSource(t *testing.T) {
	uc := newUseCase(newFixture())

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:     7,
		Date:        fixtureDate,
		ServiceID:   ptr.Ptr(int64(10)),
		EventTypeID: ptr.Ptr(int64(20)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{StaffID: 7, Date: fixtureDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
