package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	apptRepo "github.com/tenzan/jikan-pro-ws/internal/infra/storage/appointment"
	"github.com/tenzan/jikan-pro-ws/internal/integrations/mailer"
	"github.com/tenzan/jikan-pro-ws/internal/service/appointments/models"
)

// Service сервис для управления записями на приём
type Service struct {
	appointmentRepo AppointmentRepository
	customerRepo    CustomerRepository
	notifier        Notifier
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	customerRepo CustomerRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Запись чужого бизнеса отдаётся как access denied, не как not found:
// защищённые маршруты аутентифицированы, скрывать существование незачем.
func (s *Service) GetByID(ctx context.Context, id int64, businessID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for business=%d", id, businessID)

	appointment, err := s.getOwned(ctx, id, businessID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// List получает записи бизнеса с гибкой фильтрацией.
// Поддерживает фильтрацию по сотруднику, периоду, статусу и включение
// отменённых записей.
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for business=%d, staff=%v, status=%v",
		req.BusinessID, req.StaffID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		s.logger.Warn("List: endDate before startDate for business=%d", req.BusinessID)
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments for business=%d", len(appointments), req.BusinessID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Update изменяет статус и/или заметки записи.
// Переходы статусов ограничены машиной состояний:
// PENDING -> CONFIRMED | CANCELLED, CONFIRMED -> COMPLETED | CANCELLED.
// При смене статуса клиенту уходит уведомление.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: updating appointment id=%d for business=%d", id, req.BusinessID)

	if req.Status == nil && req.Notes == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	appointment, err := s.getOwned(ctx, id, req.BusinessID)
	if err != nil {
		return nil, err
	}

	previousStatus := appointment.Status

	if req.Status != nil {
		newStatus, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status=%s for appointment id=%d", *req.Status, id)
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}

		if !appointment.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("Update: transition %s -> %s rejected for appointment id=%d",
				appointment.Status, newStatus, id)
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, newStatus)
		}

		var reason *string
		if newStatus == domain.StatusCancelled {
			reason = req.CancellationReason
		}

		if err := s.appointmentRepo.UpdateStatus(ctx, id, newStatus, reason); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return nil, ErrAppointmentNotFound
			}
			s.logger.Error("Update: failed to update status for appointment id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if len(notes) > domain.MaxNotesLength {
			return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		if err := s.appointmentRepo.UpdateNotes(ctx, id, notes); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return nil, ErrAppointmentNotFound
			}
			s.logger.Error("Update: failed to update notes for appointment id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	updated, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Status != nil && updated.Status != previousStatus {
		s.notifyStatusChange(ctx, updated, previousStatus)
	}

	s.logger.Info("Update: appointment id=%d updated, status=%s", id, updated.Status)
	return models.FromDomainAppointment(updated), nil
}

// getOwned получает запись и проверяет принадлежность бизнесу
func (s *Service) getOwned(ctx context.Context, id int64, businessID int64) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if appointment.BusinessID != businessID {
		s.logger.Warn("access denied for business=%d to appointment id=%d", businessID, id)
		return nil, ErrAccessDenied
	}

	return appointment, nil
}

// notifyStatusChange отправляет уведомление о смене статуса.
// Ошибки уведомления не влияют на результат операции.
func (s *Service) notifyStatusChange(ctx context.Context, a *domain.Appointment, previous domain.AppointmentStatus) {
	customer, err := s.customerRepo.GetByID(ctx, a.CustomerID)
	if err != nil {
		s.logger.Warn("notifyStatusChange: failed to get customer id=%d: %v", a.CustomerID, err)
		return
	}

	prev := string(previous)
	s.notifier.SendAsync(&mailer.Notification{
		Kind:           mailer.KindStatusChanged,
		AppointmentID:  a.ID,
		BusinessID:     a.BusinessID,
		CustomerEmail:  customer.Email,
		CustomerName:   customer.Name,
		Date:           a.Date.Format(domain.DateFormat),
		StartTime:      a.StartTime.String(),
		Status:         string(a.Status),
		PreviousStatus: &prev,
	})
}
