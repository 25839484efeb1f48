package eventtypes

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	catalogRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/catalog"
	staffRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/staff"
	"github.com/tenzan/jikan-pro-ws/internal/service/eventtypes/models"
)

// slug в стиле URL: строчные латинские буквы, цифры, дефисы
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Service сервис для управления типами событий
type Service struct {
	catalogRepo CatalogRepository
	staffRepo   StaffRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса типов событий
func NewService(
	catalogRepo CatalogRepository,
	staffRepo StaffRepository,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		staffRepo:   staffRepo,
		logger:      logger,
	}
}

// Create создает новый тип события.
// Slug уникален в пределах бизнеса.
func (s *Service) Create(ctx context.Context, req *models.CreateEventTypeRequest) (*models.EventTypeResponse, error) {
	s.logger.Info("Create: creating event type slug=%s for business=%d", req.Slug, req.BusinessID)

	if err := s.validateCreate(ctx, req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateEventType(ctx, req.ToDomain())
	if err != nil {
		if errors.Is(err, catalogRepo.ErrSlugTaken) {
			s.logger.Warn("Create: slug=%s already taken in business=%d", req.Slug, req.BusinessID)
			return nil, ErrSlugTaken
		}
		s.logger.Error("Create: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: event type id=%d created for business=%d", created.ID, req.BusinessID)
	return models.FromDomainEventType(created), nil
}

// ListPublic возвращает активные типы событий бизнеса.
// Публичная операция: неактивные типы не видны.
func (s *Service) ListPublic(ctx context.Context, businessID int64) (*models.EventTypeListResponse, error) {
	s.logger.Info("ListPublic: fetching event types for business=%d", businessID)

	if _, err := s.staffRepo.GetBusinessByID(ctx, businessID); err != nil {
		if errors.Is(err, staffRepo.ErrBusinessNotFound) {
			s.logger.Warn("ListPublic: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("ListPublic: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	eventTypes, err := s.catalogRepo.ListEventTypesByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("ListPublic: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListPublic - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEventTypeList(eventTypes), nil
}

// validateCreate проверяет поля запроса на создание
func (s *Service) validateCreate(ctx context.Context, req *models.CreateEventTypeRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(title) > domain.MaxNameLength {
		return fmt.Errorf("%w: title is too long", ErrInvalidInput)
	}

	if !slugPattern.MatchString(req.Slug) {
		return fmt.Errorf("%w: slug must contain only lowercase letters, digits and hyphens", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.BufferBeforeMinutes < 0 || req.BufferBeforeMinutes > domain.MaxBufferMinutes ||
		req.BufferAfterMinutes < 0 || req.BufferAfterMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffers must be between 0 and %d minutes", ErrInvalidInput, domain.MaxBufferMinutes)
	}

	if req.MinimumNoticeMinutes < 0 || req.MinimumNoticeMinutes > domain.MaxMinimumNoticeMinutes {
		return fmt.Errorf("%w: minimumNoticeMinutes must be between 0 and %d",
			ErrInvalidInput, domain.MaxMinimumNoticeMinutes)
	}

	// Тип события, привязанный к сотруднику, должен ссылаться
	// на сотрудника своего бизнеса
	if req.StaffID != nil {
		staffMember, err := s.staffRepo.GetByID(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				return ErrStaffNotFound
			}
			return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if staffMember.BusinessID != req.BusinessID {
			return ErrStaffNotFound
		}
	}

	return nil
}
