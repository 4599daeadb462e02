package engine

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfManager/pkg/psqlbuilder"
)

// Repository репозиторий настроек движков вовлечения площадки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория движков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByVenue получает все движки площадки
func (r *Repository) ListByVenue(ctx context.Context, venueID int64) ([]*domain.Engine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("venue_id", "kind", "enabled", "config", "updated_at").
		From("venue_engines").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("kind ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	engines := make([]*domain.Engine, 0)
	for rows.Next() {
		var (
			engine    domain.Engine
			raw       []byte
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&engine.VenueID, &engine.Kind, &engine.Enabled, &raw, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByVenue - scan row: %v", ErrScanRow, err)
		}

		cfg, err := domain.DecodeEngineConfig(engine.Kind, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByVenue - decode config: %v", ErrScanRow, err)
		}
		engine.Config = cfg
		engine.UpdatedAt = updatedAt.Time

		engines = append(engines, &engine)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - rows error: %v", ErrScanRow, err)
	}

	return engines, nil
}

// Upsert сохраняет движок площадки (один на каждый вид)
func (r *Repository) Upsert(ctx context.Context, engine *domain.Engine) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := domain.EncodeEngineConfig(engine.Config)
	if err != nil {
		return fmt.Errorf("%w: Upsert - encode config: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("venue_engines").
		Columns("venue_id", "kind", "enabled", "config").
		Values(engine.VenueID, engine.Kind, engine.Enabled, string(raw)).
		Suffix("ON CONFLICT (venue_id, kind) DO UPDATE SET enabled = EXCLUDED.enabled, config = EXCLUDED.config, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
