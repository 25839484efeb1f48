package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tenzan/jikan-pro-ws/internal/availability"
	"github.com/tenzan/jikan-pro-ws/internal/domain"
	"github.com/tenzan/jikan-pro-ws/internal/integrations/mailer"
	staffRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/staff"
	whRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/workinghours"
	"github.com/tenzan/jikan-pro-ws/pkg/txmanager"
)

// UseCase use case для создания записи на приём
type UseCase struct {
	staffRepo        StaffRepository
	catalogRepo      CatalogRepository
	workingHoursRepo WorkingHoursRepository
	appointmentRepo  AppointmentRepository
	customerRepo     CustomerRepository
	txManager        TransactionManager
	notifier         Notifier
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	staffRepository StaffRepository,
	catalogRepository CatalogRepository,
	workingHoursRepository WorkingHoursRepository,
	appointmentRepository AppointmentRepository,
	customerRepository CustomerRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		staffRepo:        staffRepository,
		catalogRepo:      catalogRepository,
		workingHoursRepo: workingHoursRepository,
		appointmentRepo:  appointmentRepository,
		customerRepo:     customerRepository,
		txManager:        txManager,
		notifier:         notifier,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания записи.
//
// Проверка доступности и вставка выполняются в одной SERIALIZABLE
// транзакции с блокировкой занятых записей (SELECT ... FOR UPDATE):
// из двух конкурентных запросов на один слот ровно один получает
// запись, второй - ErrSlotNotAvailable. Конфликт сериализации
// прозрачно ретраится менеджером транзакций.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: staff=%d, date=%s, start=%s",
		req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем сотрудника и его бизнес
	staffMember, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	business, err := uc.staffRepo.GetBusinessByID(ctx, staffMember.BusinessID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get business id=%d: %v", staffMember.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Разрешаем источник длительности (услуга или тип события)
	params, service, eventType, err := resolveBookingParams(ctx, uc.catalogRepo, business, req.ServiceID, req.EventTypeID)
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to resolve duration source: %v", err)
		return nil, err
	}

	// 4. Получаем правило рабочих часов на день недели
	rule, err := uc.workingHoursRepo.GetForStaffDay(ctx, business.ID, staffMember.ID, int(req.Date.Weekday()))
	if err != nil && !errors.Is(err, whRepo.ErrRuleNotFound) {
		uc.logger.Error("CreateAppointment: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	// 5. Дата, рабочие часы, minimum notice
	if err := validateProposedTime(rule, req, params, now); err != nil {
		uc.logger.Warn("CreateAppointment: proposed time rejected: %v", err)
		return nil, err
	}

	// 6. Транзакция: снимок занятости под блокировкой, проверка
	// пересечений с буферами, upsert клиента и вставка записи
	var created *domain.Appointment
	var customer *domain.Customer

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointments, err := uc.appointmentRepo.FindActiveByStaffAndDate(txCtx, staffMember.ID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		busy := availability.BusyFromAppointments(appointments)
		free, err := availability.CheckProposed(req.StartTime,
			params.DurationMinutes, params.BufferBeforeMinutes, params.BufferAfterMinutes, busy)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if !free {
			return ErrSlotNotAvailable
		}

		customer, err = uc.customerRepo.UpsertByEmail(txCtx, &domain.Customer{
			BusinessID: business.ID,
			Name:       strings.TrimSpace(req.Customer.Name),
			Email:      strings.ToLower(strings.TrimSpace(req.Customer.Email)),
			Phone:      req.Customer.Phone,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to upsert customer: %v", ErrInternal, err)
		}

		created, err = uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			BusinessID:      business.ID,
			StaffID:         staffMember.ID,
			ServiceID:       req.ServiceID,
			EventTypeID:     req.EventTypeID,
			CustomerID:      customer.ID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: params.DurationMinutes,
			Status:          params.InitialStatus,
			Notes:           req.Notes,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateAppointment: slot %s %s taken for staff=%d",
				req.Date.Format(domain.DateFormat), req.StartTime, staffMember.ID)
			return nil, ErrSlotNotAvailable
		}
		// Исчерпаны повторы сериализуемой транзакции: конкурентная запись
		// выиграла слот, для клиента это тот же конфликт
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateAppointment: serialization retries exhausted for staff=%d, slot %s %s: %v",
				staffMember.ID, req.Date.Format(domain.DateFormat), req.StartTime, err)
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) || errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: created id=%d, status=%s", created.ID, created.Status)

	// 7. Уведомление - fire-and-forget, ошибки не влияют на результат
	uc.notifier.SendAsync(&mailer.Notification{
		Kind:          mailer.KindCreated,
		AppointmentID: created.ID,
		BusinessID:    created.BusinessID,
		CustomerEmail: customer.Email,
		CustomerName:  customer.Name,
		Date:          created.Date.Format(domain.DateFormat),
		StartTime:     created.StartTime.String(),
		Status:        string(created.Status),
	})

	return &Response{
		Appointment: created,
		Staff:       staffMember,
		Customer:    customer,
		Service:     service,
		EventType:   eventType,
	}, nil
}
