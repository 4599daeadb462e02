package venue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfManager/pkg/psqlbuilder"
)

var venueColumns = []string{
	"id",
	"owner_id",
	"name",
	"location",
	"open_time",
	"close_time",
	"slot_duration_minutes",
	"base_price",
	"price_1h",
	"price_2h",
	"price_3h",
	"weekday_price",
	"weekend_price",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает площадку
func (r *Repository) Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venues").
		Columns(
			"owner_id",
			"name",
			"location",
			"open_time",
			"close_time",
			"slot_duration_minutes",
			"base_price",
			"price_1h",
			"price_2h",
			"price_3h",
			"weekday_price",
			"weekend_price",
			"is_active",
		).
		Values(
			venue.OwnerID,
			venue.Name,
			venue.Location,
			venue.OpenTime,
			venue.CloseTime,
			venue.SlotDurationMinutes,
			venue.Tariff.BasePrice,
			venue.Tariff.Price1h,
			venue.Tariff.Price2h,
			venue.Tariff.Price3h,
			venue.Tariff.WeekdayPrice,
			venue.Tariff.WeekendPrice,
			venue.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&venue.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	return venue, nil
}

// GetByID получает площадку по ID (включая деактивированные)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	venue, err := scanVenue(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan venue: %v", ErrScanRow, err)
	}

	return venue, nil
}

// ListByOwner получает площадки владельца, активные первыми
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("is_active DESC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan row: %v", ErrScanRow, err)
		}
		venues = append(venues, venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	return venues, nil
}

// Update обновляет настройки площадки
func (r *Repository) Update(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("venues").
		Set("name", venue.Name).
		Set("location", venue.Location).
		Set("open_time", venue.OpenTime).
		Set("close_time", venue.CloseTime).
		Set("base_price", venue.Tariff.BasePrice).
		Set("price_1h", venue.Tariff.Price1h).
		Set("price_2h", venue.Tariff.Price2h).
		Set("price_3h", venue.Tariff.Price3h).
		Set("weekday_price", venue.Tariff.WeekdayPrice).
		Set("weekend_price", venue.Tariff.WeekendPrice).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": venue.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	venue.UpdatedAt = updatedAt.Time
	return venue, nil
}

// SetActive включает или выключает площадку (мягкая деактивация)
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("venues").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrVenueNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (*domain.Venue, error) {
	var (
		venue                domain.Venue
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&venue.ID,
		&venue.OwnerID,
		&venue.Name,
		&venue.Location,
		&venue.OpenTime,
		&venue.CloseTime,
		&venue.SlotDurationMinutes,
		&venue.Tariff.BasePrice,
		&venue.Tariff.Price1h,
		&venue.Tariff.Price2h,
		&venue.Tariff.Price3h,
		&venue.Tariff.WeekdayPrice,
		&venue.Tariff.WeekendPrice,
		&venue.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time
	return &venue, nil
}
