package create_appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	catalogRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/catalog"
	staffRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/staff"
	whRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/workinghours"
	"github.com/tenzan/jikan-pro-ws/internal/integrations/mailer"
	"github.com/tenzan/jikan-pro-ws/pkg/ptr"
	"github.com/tenzan/jikan-pro-ws/pkg/txmanager"
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
	rules map[int]*domain.WorkingHoursRule
}

func (f *fakeWorkingHoursRepo) GetForStaffDay(_ context.Context, _, _ int64, dayOfWeek int) (*domain.WorkingHoursRule, error) {
	r, ok := f.rules[dayOfWeek]
	if !ok {
		return nil, whRepo.ErrRuleNotFound
	}
	return r, nil
}

// fakeAppointmentRepo хранит созданные записи в памяти: повторная проверка
// занятости внутри следующей "транзакции" видит результат предыдущей
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) FindActiveByStaffAndDate(_ context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Appointment
	for _, a := range f.appointments {
		if a.StaffID == staffID && a.Date.Equal(date) && a.Status != domain.StatusCancelled {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	created := *appt
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.appointments = append(f.appointments, &created)
	return &created, nil
}

type fakeCustomerRepo struct {
	nextID    int64
	byEmail   map[string]*domain.Customer
	upsertLog []string
}

func (f *fakeCustomerRepo) UpsertByEmail(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	if f.byEmail == nil {
		f.byEmail = map[string]*domain.Customer{}
	}
	f.upsertLog = append(f.upsertLog, c.Email)
	if existing, ok := f.byEmail[c.Email]; ok {
		existing.Name = c.Name
		if c.Phone != nil {
			existing.Phone = c.Phone
		}
		return existing, nil
	}
	f.nextID++
	stored := *c
	stored.ID = f.nextID
	f.byEmail[c.Email] = &stored
	return &stored, nil
}

// fakeTxManager выполняет функцию без реальной транзакции: сериализуемость
// моделируется последовательным запуском конкурентов в тестах
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// failingTxManager возвращает заданную ошибку, не вызывая fn
type failingTxManager struct {
	err error
}

func (f failingTxManager) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return f.err
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []*mailer.Notification
}

func (f *fakeNotifier) SendAsync(n *mailer.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
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

// 2026-09-14 - понедельник
var (
	fixtureDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	fixtureNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
)

type fixture struct {
	staff    *fakeStaffRepo
	catalog  *fakeCatalogRepo
	wh       *fakeWorkingHoursRepo
	appts    *fakeAppointmentRepo
	customer *fakeCustomerRepo
	notifier *fakeNotifier
	uc       *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		staff: &fakeStaffRepo{
			staff: map[int64]*domain.Staff{7: {ID: 7, BusinessID: 1, Name: "Анна"}},
			business: map[int64]*domain.Business{
				1: {ID: 1, Name: "Салон", BufferBeforeMinutes: 0, BufferAfterMinutes: 0},
			},
		},
		catalog: &fakeCatalogRepo{
			services: map[int64]*domain.Service{
				10: {ID: 10, BusinessID: 1, Name: "Стрижка", DurationMinutes: 30},
			},
			eventTypes: map[int64]*domain.EventType{
				20: {
					ID: 20, BusinessID: 1, Title: "Консультация", Slug: "intro-call",
					DurationMinutes: 60, MinimumNoticeMinutes: 120,
					RequiresConfirmation: true, IsActive: true,
				},
			},
		},
		wh: &fakeWorkingHoursRepo{
			rules: map[int]*domain.WorkingHoursRule{
				1: {
					BusinessID: 1, DayOfWeek: 1,
					StartTime: types.TimeString("09:00"), EndTime: types.TimeString("17:00"),
					IsEnabled: true,
				},
			},
		},
		appts:    &fakeAppointmentRepo{},
		customer: &fakeCustomerRepo{},
		notifier: &fakeNotifier{},
	}
	f.uc = NewUseCase(f.staff, f.catalog, f.wh, f.appts, f.customer, fakeTxManager{}, f.notifier, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: fixtureNow}
	return f
}

func serviceRequest(start string) *Request {
	return &Request{
		StaffID:   7,
		Date:      fixtureDate,
		StartTime: types.TimeString(start),
		ServiceID: ptr.Ptr(int64(10)),
		Customer:  CustomerInput{Name: "Иван Петров", Email: "ivan@example.com"},
	}
}

// --- Тесты ---

func TestExecuteCreatesConfirmedAppointment(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusConfirmed, resp.Appointment.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.Appointment.StartTime)
	assert.Equal(t, 30, resp.Appointment.DurationMinutes)
	assert.Equal(t, int64(1), resp.Appointment.BusinessID)
	assert.NotNil(t, resp.Service)
	assert.Nil(t, resp.EventType)
	assert.Equal(t, "ivan@example.com", resp.Customer.Email)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, mailer.KindCreated, f.notifier.sent[0].Kind)
	assert.Equal(t, resp.Appointment.ID, f.notifier.sent[0].AppointmentID)
}

func TestExecuteEventTypeRequiresConfirmation(t *testing.T) {
	f := newFixture()
	req := serviceRequest("10:00")
	req.ServiceID = nil
	req.EventTypeID = ptr.Ptr(int64(20))

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Appointment.Status)
	assert.Equal(t, 60, resp.Appointment.DurationMinutes)
	assert.Nil(t, resp.Service)
	assert.NotNil(t, resp.EventType)
}

func TestExecuteRejectsTakenSlot(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	// Второй запрос на тот же слот: ровно один победитель
	_, err = f.uc.Execute(context.Background(), serviceRequest("10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.Len(t, f.appts.appointments, 1)
	assert.Len(t, f.notifier.sent, 1)
}

func TestExecuteSerializationRetriesExhaustedIsConflict(t *testing.T) {
	// Проигравший гонку за слот после всех повторов получает тот же
	// конфликт, что и при обычной занятости, а не внутреннюю ошибку
	f := newFixture()
	f.uc.txManager = failingTxManager{
		err: fmt.Errorf("%w: could not serialize access", txmanager.ErrSerializationFailure),
	}

	_, err := f.uc.Execute(context.Background(), serviceRequest("10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.NotErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.notifier.sent)
}

func TestExecuteRejectsOverlapNotJustExactMatch(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	// 60-минутный тип события с 09:30 перекрывает запись 10:00-10:30
	req := serviceRequest("09:30")
	req.ServiceID = nil
	req.EventTypeID = ptr.Ptr(int64(20))
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteAllowsBackToBack(t *testing.T) {
	// Без буферов слоты встык не конфликтуют (полуоткрытые интервалы)
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	req := serviceRequest("10:30")
	req.Customer.Email = "maria@example.com"
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecuteCancelledDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.appts.appointments = []*domain.Appointment{
		{
			ID: 100, StaffID: 7, Date: fixtureDate,
			StartTime: types.TimeString("10:00"), DurationMinutes: 30,
			Status: domain.StatusCancelled,
		},
	}
	f.appts.nextID = 100

	_, err := f.uc.Execute(context.Background(), serviceRequest("10:00"))
	assert.NoError(t, err)
}

func TestExecuteOutsideWorkingHours(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), serviceRequest("08:30"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	// 16:45 + 30 минут выходит за закрытие 17:00
	_, err = f.uc.Execute(context.Background(), serviceRequest("16:45"))
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecuteDayOffRejected(t *testing.T) {
	f := newFixture()
	req := serviceRequest("10:00")
	req.Date = fixtureDate.AddDate(0, 0, 1) // вторник, правила нет

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecutePastDateRejected(t *testing.T) {
	f := newFixture()
	req := serviceRequest("10:00")
	req.Date = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteMinimumNotice(t *testing.T) {
	// Тип события с notice 120 минут, запись на сегодня
	f := newFixture()
	f.uc.timeProvider = &fixedTimeProvider{
		now: time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC),
	}

	req := serviceRequest("10:00")
	req.ServiceID = nil
	req.EventTypeID = ptr.Ptr(int64(20))
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// 11:30 строго позже 09:00 + 120 минут - проходит
	req.StartTime = types.TimeString("11:30")
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecuteUpsertsCustomerByEmail(t *testing.T) {
	f := newFixture()

	resp1, err := f.uc.Execute(context.Background(), serviceRequest("10:00"))
	require.NoError(t, err)

	req := serviceRequest("11:00")
	req.Customer.Name = "Иван П."
	req.Customer.Phone = ptr.Ptr("+79001234567")
	resp2, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Один и тот же клиент, имя и телефон обновлены
	assert.Equal(t, resp1.Customer.ID, resp2.Customer.ID)
	assert.Equal(t, "Иван П.", resp2.Customer.Name)
	require.NotNil(t, resp2.Customer.Phone)
	assert.Equal(t, "+79001234567", *resp2.Customer.Phone)
}

func TestExecuteValidation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"нет имени клиента", func(r *Request) { r.Customer.Name = "  " }},
		{"нет email клиента", func(r *Request) { r.Customer.Email = "" }},
		{"некорректный email", func(r *Request) { r.Customer.Email = "not-an-email" }},
		{"оба источника длительности", func(r *Request) { r.EventTypeID = ptr.Ptr(int64(20)) }},
		{"ни одного источника", func(r *Request) { r.ServiceID = nil }},
		{"нет времени начала", func(r *Request) { r.StartTime = "" }},
		{"кривое время начала", func(r *Request) { r.StartTime = "25:99" }},
		{"нулевой staffID", func(r *Request) { r.StaffID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := serviceRequest("10:00")
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecuteStaffNotFound(t *testing.T) {
	f := newFixture()
	req := serviceRequest("10:00")
	req.StaffID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecuteCrossTenantEventTypeHidden(t *testing.T) {
	f := newFixture()
	f.catalog.eventTypes[21] = &domain.EventType{
		ID: 21, BusinessID: 2, DurationMinutes: 30, IsActive: true,
	}
	req := serviceRequest("10:00")
	req.ServiceID = nil
	req.EventTypeID = ptr.Ptr(int64(21))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrEventTypeNotFound)
}
