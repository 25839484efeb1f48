package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	catalogRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/catalog"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Ровно один источник длительности: услуга или тип события
	if (req.ServiceID == nil) == (req.EventTypeID == nil) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrAmbiguousDurationSource)
	}

	return nil
}

// resolveBookingParams определяет длительность, буферы и minimum notice
// по источнику длительности. Для услуги буферы берутся из дефолтов бизнеса,
// тип события несет собственные настройки.
//
// Источник, принадлежащий другому бизнесу, неотличим от несуществующего:
// кросс-тенантные данные наружу не утекают.
func resolveBookingParams(
	ctx context.Context,
	catalog CatalogRepository,
	business *domain.Business,
	serviceID, eventTypeID *int64,
) (*domain.BookingParams, error) {
	if serviceID != nil {
		service, err := catalog.GetServiceByID(ctx, *serviceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				return nil, ErrServiceNotFound
			}
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if service.BusinessID != business.ID {
			return nil, ErrServiceNotFound
		}

		return &domain.BookingParams{
			DurationMinutes:      service.DurationMinutes,
			BufferBeforeMinutes:  business.BufferBeforeMinutes,
			BufferAfterMinutes:   business.BufferAfterMinutes,
			MinimumNoticeMinutes: domain.DefaultMinimumNoticeMinutes,
			InitialStatus:        domain.StatusConfirmed,
		}, nil
	}

	eventType, err := catalog.GetEventTypeByID(ctx, *eventTypeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrEventTypeNotFound) {
			return nil, ErrEventTypeNotFound
		}
		return nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
	}
	if eventType.BusinessID != business.ID || !eventType.IsActive {
		return nil, ErrEventTypeNotFound
	}

	return &domain.BookingParams{
		DurationMinutes:      eventType.DurationMinutes,
		BufferBeforeMinutes:  eventType.BufferBeforeMinutes,
		BufferAfterMinutes:   eventType.BufferAfterMinutes,
		MinimumNoticeMinutes: eventType.MinimumNoticeMinutes,
		InitialStatus:        eventType.InitialStatus(),
	}, nil
}
