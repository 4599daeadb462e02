package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/pkg/dbmetrics"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		VenueID:       1,
		CustomerID:    7,
		BookingDate:   time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:     "18:00",
		EndTime:       "20:00",
		DurationHours: 2,
		Status:        domain.StatusBooked,
		TotalAmount:   1000,
		AdvanceAmount: 400,
		PendingAmount: 600,
		PaymentStatus: domain.PaymentPartial,
		TicketCode:    "AB12CD34",
	}
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "venue_id", "customer_id", "booking_date", "start_time", "end_time", "duration_hours", "status",
		"total_amount", "discount_amount", "advance_amount", "paid_amount", "pending_amount", "payment_status",
		"payment_mode", "ticket_code", "notes", "name", "phone", "created_at", "updated_at",
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newTestRepository(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))

	created, err := repo.Create(context.Background(), testBooking())
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_OverlapSkipsInsert(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}))

	_, err := repo.Create(context.Background(), testBooking())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestRepository_Create_ConstraintViolations(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "exclusion constraint", err: &pq.Error{Code: "23P01"}, want: ErrSlotNotAvailable},
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, want: ErrSlotNotAvailable},
		{name: "ticket code collision", err: &pq.Error{Code: "23505", Constraint: "bookings_ticket_code_key"}, want: ErrExecQuery},
		{name: "connection error", err: sql.ErrConnDone, want: ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRepository(t)
			mock.ExpectQuery(`INSERT INTO bookings`).WillReturnError(tt.err)

			_, err := repo.Create(context.Background(), testBooking())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRepository_Update_ConflictVersusNotFound(t *testing.T) {
	t.Run("conflict", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		b := testBooking()
		b.ID = 10

		mock.ExpectExec(`UPDATE bookings SET .* NOT EXISTS`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).WithArgs(int64(10)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		err := repo.Update(context.Background(), b)
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		b := testBooking()
		b.ID = 11

		mock.ExpectExec(`UPDATE bookings SET`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT EXISTS`).WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.Update(context.Background(), b)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestRepository_UpdateStatus_CancelSkipsOverlapCheck(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(`^UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2$`).
		WithArgs("cancelled", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 5, domain.StatusCancelled))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newTestRepository(t)
	date := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM bookings b JOIN customers c`).
		WithArgs(int64(10)).
		WillReturnRows(bookingRows().AddRow(
			int64(10), int64(1), int64(7), date, "18:00:00", "20:00:00", 2, "booked",
			"1000.00", "0.00", "400.00", "0.00", "600.00", "partial",
			"upi", "AB12CD34", nil, "Ravi", "+919800000000", date, date,
		))

	b, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", b.CustomerName)
	assert.Equal(t, "18:00", b.StartTime.String())
	assert.Equal(t, 600.0, b.PendingAmount)
	require.NotNil(t, b.PaymentMode)
	assert.Equal(t, domain.PaymentModeUPI, *b.PaymentMode)
}

func TestRepository_GetByID_LocksRowInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE OF b`).
		WithArgs(int64(10)).
		WillReturnRows(bookingRows())

	tx, err := db.Begin()
	require.NoError(t, err)

	repo := NewRepository(db)
	_, err = repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 10)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_ListByVenue(t *testing.T) {
	repo, mock := newTestRepository(t)
	from := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)

	mock.ExpectQuery(`WHERE b.venue_id = \$1 AND b.booking_date >= \$2 AND b.booking_date <= \$3`).
		WithArgs(int64(1), "2026-10-19", "2026-10-25").
		WillReturnRows(bookingRows().
			AddRow(int64(1), int64(1), int64(7), from, "06:00:00", "07:00:00", 1, "completed",
				"500", "0", "0", "500", "0", "paid", "cash", "AAAA1111", nil, "Ravi", nil, from, from).
			AddRow(int64(2), int64(1), int64(8), to, "22:00:00", "24:00:00", 2, "booked",
				"1000", "0", "0", "0", "1000", "pending", nil, "BBBB2222", nil, "Asha", nil, to, to))

	bookings, err := repo.ListByVenue(context.Background(), domain.VenueBookingsFilter{
		VenueID:   1,
		StartDate: from,
		EndDate:   to,
	})
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "24:00", bookings[1].EndTime.String())
	assert.Nil(t, bookings[1].PaymentMode)
	assert.Nil(t, bookings[0].CustomerPhone)
}
