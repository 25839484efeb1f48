package workinghours

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	"github.com/tenzan/jikan-pro-ws/pkg/psqlbuilder"
	"github.com/tenzan/jikan-pro-ws/pkg/txmanager"
)

var ruleColumns = []string{
	"id",
	"business_id",
	"staff_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_enabled",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами рабочих часов
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForStaffDay получает правило на день недели для сотрудника.
// Персональное правило сотрудника имеет приоритет над правилом бизнеса
// (staff_id IS NULL). Если правила нет ни у сотрудника, ни у бизнеса,
// возвращает ErrRuleNotFound - для движка доступности это означает ноль
// слотов, а не ошибку.
func (r *Repository) GetForStaffDay(ctx context.Context, businessID, staffID int64, dayOfWeek int) (*domain.WorkingHoursRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("working_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		Where(squirrel.Or{
			squirrel.Eq{"staff_id": staffID},
			squirrel.Eq{"staff_id": nil},
		}).
		OrderBy("staff_id ASC NULLS LAST").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForStaffDay - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	rule, err := scanRule(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetForStaffDay - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// ListByOwner получает все правила бизнеса или конкретного сотрудника
func (r *Repository) ListByOwner(ctx context.Context, businessID int64, staffID *int64) ([]*domain.WorkingHoursRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("working_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("day_of_week ASC")

	if staffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *staffID})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": nil})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.WorkingHoursRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// Upsert создает или обновляет правило для (business, staff, day_of_week)
func (r *Repository) Upsert(ctx context.Context, rule *domain.WorkingHoursRule) (*domain.WorkingHoursRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_hours").
		Columns(
			"business_id",
			"staff_id",
			"day_of_week",
			"start_time",
			"end_time",
			"is_enabled",
		).
		Values(
			rule.BusinessID,
			rule.StaffID,
			rule.DayOfWeek,
			rule.StartTime,
			rule.EndTime,
			rule.IsEnabled,
		).
		Suffix(`ON CONFLICT (business_id, COALESCE(staff_id, 0), day_of_week)
			DO UPDATE SET start_time = EXCLUDED.start_time,
			              end_time = EXCLUDED.end_time,
			              is_enabled = EXCLUDED.is_enabled,
			              updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

func scanRule(scan func(dest ...interface{}) error) (*domain.WorkingHoursRule, error) {
	var rule domain.WorkingHoursRule
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&rule.ID,
		&rule.BusinessID,
		&rule.StaffID,
		&rule.DayOfWeek,
		&rule.StartTime,
		&rule.EndTime,
		&rule.IsEnabled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}
