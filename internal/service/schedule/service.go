package schedule

import (
	"context"
	"errors"
	"fmt"

	staffRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/staff"
	"github.com/tenzan/jikan-pro-ws/internal/service/schedule/models"
)

// Service сервис для управления недельным расписанием
type Service struct {
	workingHoursRepo WorkingHoursRepository
	staffRepo        StaffRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	workingHoursRepo WorkingHoursRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		workingHoursRepo: workingHoursRepo,
		staffRepo:        staffRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Get возвращает недельное расписание бизнеса или сотрудника.
// StaffID = nil - дефолтное расписание бизнеса.
func (s *Service) Get(ctx context.Context, businessID int64, staffID *int64) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule for business=%d, staff=%v", businessID, staffID)

	if err := s.checkStaffOwnership(ctx, businessID, staffID); err != nil {
		return nil, err
	}

	rules, err := s.workingHoursRepo.ListByOwner(ctx, businessID, staffID)
	if err != nil {
		s.logger.Error("Get: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(businessID, staffID, rules), nil
}

// Put заменяет недельное расписание набором правил из запроса.
// Правила применяются атомарно: либо всё расписание, либо ничего.
// День недели может встретиться в запросе не более одного раза.
func (s *Service) Put(ctx context.Context, req *models.PutScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Put: replacing schedule for business=%d, staff=%v, rules=%d",
		req.BusinessID, req.StaffID, len(req.Rules))

	if len(req.Rules) == 0 {
		return nil, fmt.Errorf("%w: rules are required", ErrInvalidInput)
	}

	if err := s.checkStaffOwnership(ctx, req.BusinessID, req.StaffID); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(req.Rules))
	for _, input := range req.Rules {
		if seen[input.DayOfWeek] {
			s.logger.Warn("Put: duplicate dayOfWeek=%d for business=%d", input.DayOfWeek, req.BusinessID)
			return nil, fmt.Errorf("%w: duplicate dayOfWeek %d", ErrInvalidInput, input.DayOfWeek)
		}
		seen[input.DayOfWeek] = true

		rule := input.ToDomainRule(req.BusinessID, req.StaffID)
		if err := rule.Validate(); err != nil {
			s.logger.Warn("Put: invalid rule for dayOfWeek=%d: %v", input.DayOfWeek, err)
			return nil, fmt.Errorf("%w: dayOfWeek %d: %v", ErrInvalidInput, input.DayOfWeek, err)
		}
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, input := range req.Rules {
			rule := input.ToDomainRule(req.BusinessID, req.StaffID)
			if _, err := s.workingHoursRepo.Upsert(txCtx, rule); err != nil {
				return fmt.Errorf("dayOfWeek %d: %w", input.DayOfWeek, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Put: failed to replace schedule for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Put - repository error: %v", ErrInternal, err)
	}

	rules, err := s.workingHoursRepo.ListByOwner(ctx, req.BusinessID, req.StaffID)
	if err != nil {
		s.logger.Error("Put: failed to reload schedule for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Put - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Put: schedule replaced for business=%d, staff=%v", req.BusinessID, req.StaffID)
	return models.FromDomainRules(req.BusinessID, req.StaffID, rules), nil
}

// checkStaffOwnership проверяет, что сотрудник принадлежит бизнесу
func (s *Service) checkStaffOwnership(ctx context.Context, businessID int64, staffID *int64) error {
	if staffID == nil {
		return nil
	}

	staffMember, err := s.staffRepo.GetByID(ctx, *staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("staff id=%d not found", *staffID)
			return ErrStaffNotFound
		}
		s.logger.Error("failed to get staff id=%d: %v", *staffID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if staffMember.BusinessID != businessID {
		s.logger.Warn("staff id=%d belongs to another business", *staffID)
		return ErrAccessDenied
	}

	return nil
}
