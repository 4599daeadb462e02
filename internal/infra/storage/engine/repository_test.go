package engine

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

func TestRepository_ListByVenue_DecodesTypedConfig(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM venue_engines WHERE venue_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"venue_id", "kind", "enabled", "config", "updated_at"}).
			AddRow(int64(1), "loyalty", true, []byte(`{"bookings_for_reward":5,"reward":"Free hour"}`), now).
			AddRow(int64(1), "scarcity", false, []byte(`{"threshold":3}`), now))

	engines, err := NewRepository(db).ListByVenue(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, engines, 2)

	loyalty, ok := engines[0].Config.(domain.LoyaltyConfig)
	require.True(t, ok)
	assert.Equal(t, 5, loyalty.BookingsForReward)
	assert.False(t, engines[1].Enabled)
}

func TestRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO venue_engines .* ON CONFLICT \(venue_id, kind\)`).
		WithArgs(int64(1), "scarcity", true, `{"threshold":2,"message":"Almost full"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewRepository(db).Upsert(context.Background(), &domain.Engine{
		VenueID: 1,
		Kind:    domain.EngineScarcity,
		Enabled: true,
		Config:  domain.ScarcityConfig{Threshold: 2, Message: "Almost full"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
