package booking

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

// insertIfFreeQuery вставляет бронь, только если на площадке нет активной брони,
// пересекающей [start_time, end_time) в ту же дату.
// Exclusion constraint bookings_no_overlap страхует от гонки между READ COMMITTED транзакциями.
const insertIfFreeQuery = `
INSERT INTO bookings (
	venue_id, customer_id, booking_date, start_time, end_time, duration_hours, status,
	total_amount, discount_amount, advance_amount, paid_amount, pending_amount,
	payment_status, payment_mode, ticket_code, notes
)
SELECT $1::bigint, $2::bigint, $3::date, $4::time, $5::time, $6::int, $7::varchar,
	$8::numeric, $9::numeric, $10::numeric, $11::numeric, $12::numeric,
	$13::varchar, $14::varchar, $15::varchar, $16::text
WHERE NOT EXISTS (
	SELECT 1 FROM bookings o
	WHERE o.venue_id = $1::bigint
	  AND o.booking_date = $3::date
	  AND o.status <> 'cancelled'
	  AND o.start_time < $5::time
	  AND o.end_time > $4::time
)
RETURNING id, created_at, updated_at`

// overlapWithParams подзапрос пересечения для новых значений интервала
const overlapWithParams = `NOT EXISTS (
	SELECT 1 FROM bookings o
	WHERE o.venue_id = ? AND o.booking_date = ? AND o.id <> bookings.id
	  AND o.status <> 'cancelled' AND o.start_time < ? AND o.end_time > ?)`

// overlapWithSelf подзапрос пересечения для текущего интервала строки
const overlapWithSelf = `NOT EXISTS (
	SELECT 1 FROM bookings o
	WHERE o.venue_id = bookings.venue_id AND o.booking_date = bookings.booking_date AND o.id <> bookings.id
	  AND o.status <> 'cancelled' AND o.start_time < bookings.end_time AND o.end_time > bookings.start_time)`

var bookingColumns = []string{
	"b.id",
	"b.venue_id",
	"b.customer_id",
	"b.booking_date",
	"b.start_time",
	"b.end_time",
	"b.duration_hours",
	"b.status",
	"b.total_amount",
	"b.discount_amount",
	"b.advance_amount",
	"b.paid_amount",
	"b.pending_amount",
	"b.payment_status",
	"b.payment_mode",
	"b.ticket_code",
	"b.notes",
	"c.name",
	"c.phone",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование условной вставкой.
// Если интервал уже занят, возвращает ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var createdAt, updatedAt sql.NullTime
	err := executor.QueryRowContext(ctx, insertIfFreeQuery,
		booking.VenueID,
		booking.CustomerID,
		booking.BookingDate.Format(domain.DateFormat),
		booking.StartTime,
		booking.EndTime,
		booking.DurationHours,
		booking.Status,
		booking.TotalAmount,
		booking.DiscountAmount,
		booking.AdvanceAmount,
		booking.PaidAmount,
		booking.PendingAmount,
		booking.PaymentStatus,
		booking.PaymentMode,
		booking.TicketCode,
		booking.Notes,
	).Scan(&booking.ID, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotAvailable
	}
	if IsSlotConflict(err) {
		return nil, fmt.Errorf("%w: Create: %v", ErrSlotNotAvailable, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// Update перезаписывает бронь условным обновлением.
// Пересечение с собственным прежним интервалом конфликтом не считается.
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	date := booking.BookingDate.Format(domain.DateFormat)

	builder := psqlbuilder.Update("bookings").
		Set("customer_id", booking.CustomerID).
		Set("booking_date", date).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("duration_hours", booking.DurationHours).
		Set("status", booking.Status).
		Set("total_amount", booking.TotalAmount).
		Set("discount_amount", booking.DiscountAmount).
		Set("advance_amount", booking.AdvanceAmount).
		Set("paid_amount", booking.PaidAmount).
		Set("pending_amount", booking.PendingAmount).
		Set("payment_status", booking.PaymentStatus).
		Set("payment_mode", booking.PaymentMode).
		Set("notes", booking.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID})

	if booking.OccupiesSlot() {
		builder = builder.Where(overlapWithParams, booking.VenueID, date, booking.EndTime, booking.StartTime)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "Update", booking.ID, query, args)
}

// UpdateStatus меняет статус. Возврат отменённой брони в активный статус проходит ту же проверку пересечений.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status != domain.StatusCancelled {
		builder = builder.Where(overlapWithSelf)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "UpdateStatus", id, query, args)
}

// UpdatePayment сохраняет суммы оплаты и производный статус оплаты
func (r *Repository) UpdatePayment(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("paid_amount", booking.PaidAmount).
		Set("pending_amount", booking.PendingAmount).
		Set("payment_status", booking.PaymentStatus).
		Set("payment_mode", booking.PaymentMode).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// GetByID получает бронирование по ID вместе с именем и телефоном клиента.
// В транзакции строка брони блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("customers c ON c.id = b.customer_id").
		Where(squirrel.Eq{"b.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByVenue получает бронирования площадки за период (даты включительно) с именем клиента.
// Сортировка по дате и времени начала.
func (r *Repository) ListByVenue(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("customers c ON c.id = b.customer_id").
		Where(squirrel.Eq{"b.venue_id": filter.VenueID}).
		Where(squirrel.GtOrEq{"b.booking_date": filter.StartDate.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"b.booking_date": filter.EndDate.Format(domain.DateFormat)}).
		OrderBy("b.booking_date ASC", "b.start_time ASC")

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByVenue - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByVenue - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// CountCompleted количество завершённых броней клиента на площадке
func (r *Repository) CountCompleted(ctx context.Context, venueID, customerID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"venue_id":    venueID,
			"customer_id": customerID,
			"status":      domain.StatusCompleted,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountCompleted - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCompleted - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// execConditional выполняет условный UPDATE и различает "не найдено" и "слот занят"
func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, op string, id int64, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if IsSlotConflict(err) {
		return fmt.Errorf("%w: %s: %v", ErrSlotNotAvailable, op, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	exists, err := r.exists(ctx, executor, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrBookingNotFound
	}
	return ErrSlotNotAvailable
}

func (r *Repository) exists(ctx context.Context, executor DBExecutor, id int64) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		paymentMode          sql.NullString
		customerPhone        sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.VenueID,
		&booking.CustomerID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationHours,
		&booking.Status,
		&booking.TotalAmount,
		&booking.DiscountAmount,
		&booking.AdvanceAmount,
		&booking.PaidAmount,
		&booking.PendingAmount,
		&booking.PaymentStatus,
		&paymentMode,
		&booking.TicketCode,
		&booking.Notes,
		&booking.CustomerName,
		&customerPhone,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentMode.Valid {
		mode := domain.PaymentMode(paymentMode.String)
		booking.PaymentMode = &mode
	}
	if customerPhone.Valid {
		booking.CustomerPhone = &customerPhone.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
