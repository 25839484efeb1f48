package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	"github.com/tenzan/jikan-pro-ws/pkg/psqlbuilder"
	"github.com/tenzan/jikan-pro-ws/pkg/txmanager"
)

// Repository репозиторий для работы с клиентами
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// UpsertByEmail создает клиента или обновляет имя/телефон существующего.
// Email уникален в рамках бизнеса. Вызывается в той же транзакции,
// что и создание записи на приём.
func (r *Repository) UpsertByEmail(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns(
			"business_id",
			"name",
			"email",
			"phone",
		).
		Values(
			c.BusinessID,
			c.Name,
			c.Email,
			c.Phone,
		).
		Suffix(`ON CONFLICT (business_id, email)
			DO UPDATE SET name = EXCLUDED.name,
			              phone = COALESCE(EXCLUDED.phone, customers.phone),
			              updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertByEmail - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertByEmail - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"email",
		"phone",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.BusinessID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
