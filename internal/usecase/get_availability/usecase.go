package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/tenzan/jikan-pro-ws/internal/availability"
	"github.com/tenzan/jikan-pro-ws/internal/domain"
	staffRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/staff"
	whRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/workinghours"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	staffRepo        StaffRepository
	catalogRepo      CatalogRepository
	workingHoursRepo WorkingHoursRepository
	appointmentRepo  AppointmentRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	staffRepository StaffRepository,
	catalogRepository CatalogRepository,
	workingHoursRepository WorkingHoursRepository,
	appointmentRepository AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		staffRepo:        staffRepository,
		catalogRepo:      catalogRepository,
		workingHoursRepo: workingHoursRepository,
		appointmentRepo:  appointmentRepository,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// "Нет доступности" - это успех с пустым списком, а не ошибка:
// пустой ответ отличает валидный запрос без свободных окон
// от некорректного запроса.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: staff=%d, date=%s, service=%v, eventType=%v",
		req.StaffID, req.Date.Format(domain.DateFormat), req.ServiceID, req.EventTypeID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем сотрудника и его бизнес
	staffMember, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailability: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailability: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	business, err := uc.staffRepo.GetBusinessByID(ctx, staffMember.BusinessID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get business id=%d: %v", staffMember.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 4. Разрешаем источник длительности (услуга или тип события)
	params, err := resolveBookingParams(ctx, uc.catalogRepo, business, req.ServiceID, req.EventTypeID)
	if err != nil {
		uc.logger.Warn("GetAvailability: failed to resolve duration source: %v", err)
		return nil, err
	}

	// 5. Получаем правило рабочих часов на день недели.
	// Отсутствующее правило - не ошибка: день без расписания даёт ноль слотов.
	rule, err := uc.workingHoursRepo.GetForStaffDay(ctx, business.ID, staffMember.ID, int(req.Date.Weekday()))
	if err != nil && !errors.Is(err, whRepo.ErrRuleNotFound) {
		uc.logger.Error("GetAvailability: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	// 6. Снимок занятости: не-отменённые записи сотрудника на эту дату
	appointments, err := uc.appointmentRepo.FindActiveByStaffAndDate(ctx, staffMember.ID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 7. Генерируем слоты
	slots, err := availability.GenerateSlots(availability.SlotRequest{
		Rule:                 rule,
		Date:                 req.Date,
		Now:                  now,
		DurationMinutes:      params.DurationMinutes,
		BufferBeforeMinutes:  params.BufferBeforeMinutes,
		BufferAfterMinutes:   params.BufferAfterMinutes,
		MinimumNoticeMinutes: params.MinimumNoticeMinutes,
		Busy:                 availability.BusyFromAppointments(appointments),
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: %d slots for staff=%d, date=%s",
		len(slots), req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:           req.Date,
		StaffID:        staffMember.ID,
		BusinessID:     business.ID,
		AvailableSlots: slots,
	}, nil
}
