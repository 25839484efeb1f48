package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	"github.com/tenzan/jikan-pro-ws/pkg/psqlbuilder"
	"github.com/tenzan/jikan-pro-ws/pkg/txmanager"
)

const pqUniqueViolation = "23505"

var eventTypeColumns = []string{
	"id",
	"business_id",
	"staff_id",
	"title",
	"slug",
	"description",
	"duration_minutes",
	"buffer_before_minutes",
	"buffer_after_minutes",
	"minimum_notice_minutes",
	"requires_confirmation",
	"is_active",
	"color",
	"location",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога бронируемых предложений:
// услуг и типов событий
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"duration_minutes",
		"price",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.BusinessID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	return &service, nil
}

// GetEventTypeByID получает тип события по ID
func (r *Repository) GetEventTypeByID(ctx context.Context, id int64) (*domain.EventType, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventTypeColumns...).
		From("event_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetEventTypeByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	eventType, err := scanEventType(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrEventTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEventTypeByID - scan event type: %v", ErrScanRow, err)
	}

	return eventType, nil
}

// ListEventTypesByBusiness получает активные типы событий бизнеса
// для публичной страницы бронирования
func (r *Repository) ListEventTypesByBusiness(ctx context.Context, businessID int64) ([]*domain.EventType, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventTypeColumns...).
		From("event_types").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListEventTypesByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEventTypesByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	eventTypes := make([]*domain.EventType, 0)
	for rows.Next() {
		eventType, err := scanEventType(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListEventTypesByBusiness - scan row: %v", ErrScanRow, err)
		}
		eventTypes = append(eventTypes, eventType)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEventTypesByBusiness - rows error: %v", ErrScanRow, err)
	}

	return eventTypes, nil
}

// CreateEventType создает новый тип события.
// Уникальность slug в рамках бизнеса обеспечивается constraint'ом БД.
func (r *Repository) CreateEventType(ctx context.Context, eventType *domain.EventType) (*domain.EventType, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("event_types").
		Columns(
			"business_id",
			"staff_id",
			"title",
			"slug",
			"description",
			"duration_minutes",
			"buffer_before_minutes",
			"buffer_after_minutes",
			"minimum_notice_minutes",
			"requires_confirmation",
			"is_active",
			"color",
			"location",
		).
		Values(
			eventType.BusinessID,
			eventType.StaffID,
			eventType.Title,
			eventType.Slug,
			eventType.Description,
			eventType.DurationMinutes,
			eventType.BufferBeforeMinutes,
			eventType.BufferAfterMinutes,
			eventType.MinimumNoticeMinutes,
			eventType.RequiresConfirmation,
			eventType.IsActive,
			eventType.Color,
			eventType.Location,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateEventType - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&eventType.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: CreateEventType - execute insert: %v", ErrExecQuery, err)
	}

	eventType.CreatedAt = createdAt.Time
	eventType.UpdatedAt = updatedAt.Time

	return eventType, nil
}

func scanEventType(scan func(dest ...interface{}) error) (*domain.EventType, error) {
	var eventType domain.EventType
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&eventType.ID,
		&eventType.BusinessID,
		&eventType.StaffID,
		&eventType.Title,
		&eventType.Slug,
		&eventType.Description,
		&eventType.DurationMinutes,
		&eventType.BufferBeforeMinutes,
		&eventType.BufferAfterMinutes,
		&eventType.MinimumNoticeMinutes,
		&eventType.RequiresConfirmation,
		&eventType.IsActive,
		&eventType.Color,
		&eventType.Location,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	eventType.CreatedAt = createdAt.Time
	eventType.UpdatedAt = updatedAt.Time

	return &eventType, nil
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == pqUniqueViolation
	}
	return false
}
