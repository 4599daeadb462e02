package customer

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

var customerColumns = []string{"id", "owner_id", "name", "phone", "email", "created_at"}

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает клиента владельца.
// Повторный телефон у того же владельца возвращает существующую запись.
func (r *Repository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("owner_id", "name", "phone", "email").
		Values(customer.OwnerID, customer.Name, customer.Phone, customer.Email).
		Suffix("ON CONFLICT (owner_id, phone) DO UPDATE SET name = customers.name RETURNING id, name, email, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&customer.ID, &customer.Name, &customer.Email, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	customer.CreatedAt = createdAt.Time
	return customer, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// FindByPhone ищет клиента владельца по телефону
func (r *Repository) FindByPhone(ctx context.Context, ownerID int64, phone string) (*domain.Customer, error) {
	return r.getOne(ctx, "FindByPhone", squirrel.Eq{"owner_id": ownerID, "phone": phone})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var (
		customer  domain.Customer
		createdAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&customer.OwnerID,
		&customer.Name,
		&customer.Phone,
		&customer.Email,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan customer: %v", ErrScanRow, op, err)
	}

	customer.CreatedAt = createdAt.Time
	return &customer, nil
}
