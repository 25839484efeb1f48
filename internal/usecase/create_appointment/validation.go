package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	catalogRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/catalog"
)

// validateRequest валидирует входные данные запроса.
// Отклоняем на первом некорректном поле - до движка доступности
// доходит только типизированный, проверенный запрос.
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// Ровно один источник длительности: услуга или тип события
	if (req.ServiceID == nil) == (req.EventTypeID == nil) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrAmbiguousDurationSource)
	}

	name := strings.TrimSpace(req.Customer.Name)
	if name == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(req.Customer.Email)
	if email == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return fmt.Errorf("%w: invalid customer email", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// resolveBookingParams определяет длительность, буферы, minimum notice
// и начальный статус по источнику длительности. Возвращает также сам
// источник для ответа. Для услуги буферы берутся из дефолтов бизнеса,
// тип события несет собственные настройки.
//
// Источник, принадлежащий другому бизнесу, неотличим от несуществующего:
// кросс-тенантные данные наружу не утекают.
func resolveBookingParams(
	ctx context.Context,
	catalog CatalogRepository,
	business *domain.Business,
	serviceID, eventTypeID *int64,
) (*domain.BookingParams, *domain.Service, *domain.EventType, error) {
	if serviceID != nil {
		service, err := catalog.GetServiceByID(ctx, *serviceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				return nil, nil, nil, ErrServiceNotFound
			}
			return nil, nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if service.BusinessID != business.ID {
			return nil, nil, nil, ErrServiceNotFound
		}

		return &domain.BookingParams{
			DurationMinutes:      service.DurationMinutes,
			BufferBeforeMinutes:  business.BufferBeforeMinutes,
			BufferAfterMinutes:   business.BufferAfterMinutes,
			MinimumNoticeMinutes: domain.DefaultMinimumNoticeMinutes,
			InitialStatus:        domain.StatusConfirmed,
		}, service, nil, nil
	}

	eventType, err := catalog.GetEventTypeByID(ctx, *eventTypeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrEventTypeNotFound) {
			return nil, nil, nil, ErrEventTypeNotFound
		}
		return nil, nil, nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
	}
	if eventType.BusinessID != business.ID || !eventType.IsActive {
		return nil, nil, nil, ErrEventTypeNotFound
	}

	return &domain.BookingParams{
		DurationMinutes:      eventType.DurationMinutes,
		BufferBeforeMinutes:  eventType.BufferBeforeMinutes,
		BufferAfterMinutes:   eventType.BufferAfterMinutes,
		MinimumNoticeMinutes: eventType.MinimumNoticeMinutes,
		InitialStatus:        eventType.InitialStatus(),
	}, nil, eventType, nil
}

// validateProposedTime проверяет дату, рабочие часы и minimum notice
// для предложенного времени начала
func validateProposedTime(
	rule *domain.WorkingHoursRule,
	req *Request,
	params *domain.BookingParams,
	now time.Time,
) error {
	// Дата в прошлом
	dateOnly := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	// Сотрудник не работает в этот день
	if rule == nil || !rule.IsEnabled {
		return ErrOutsideWorkingHours
	}

	startMin, err := req.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	openMin, err := rule.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: working hours start: %v", ErrInternal, err)
	}
	closeMin, err := rule.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: working hours end: %v", ErrInternal, err)
	}

	// Запись вместе с буфером после должна закончиться до закрытия
	if startMin < openMin || startMin+params.DurationMinutes+params.BufferAfterMinutes > closeMin {
		return ErrOutsideWorkingHours
	}

	// Minimum notice: начало должно быть строго позже now + notice
	slotStart, err := req.StartTime.At(req.Date)
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	earliestAllowed := now.Add(time.Duration(params.MinimumNoticeMinutes) * time.Minute)
	if !slotStart.After(earliestAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance",
			ErrTooLateToBook, params.MinimumNoticeMinutes)
	}

	return nil
}
