package staff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	"github.com/tenzan/jikan-pro-ws/pkg/psqlbuilder"
	"github.com/tenzan/jikan-pro-ws/pkg/txmanager"
)

// Repository репозиторий для чтения сотрудников и бизнесов.
// Полноценный CRUD тенантов живет в отдельном админском сервисе,
// здесь только то, что нужно движку доступности.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сотрудника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"email",
	).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BusinessID,
		&s.Name,
		&s.Email,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan staff: %v", ErrScanRow, err)
	}

	return &s, nil
}

// GetBusinessByID получает бизнес по ID (с дефолтными буферами)
func (r *Repository) GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"timezone",
		"buffer_before_minutes",
		"buffer_after_minutes",
		"created_at",
		"updated_at",
	).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Business
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.Name,
		&b.Timezone,
		&b.BufferBeforeMinutes,
		&b.BufferAfterMinutes,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusinessByID - scan business: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
