package customer

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

func TestRepository_Create_ReturnsExistingOnSamePhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO customers .* ON CONFLICT \(owner_id, phone\)`).
		WithArgs(int64(100), "Ravi K", "+919800000000", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow(int64(4), "Ravi", nil, now))

	c, err := NewRepository(db).Create(context.Background(), &domain.Customer{
		OwnerID: 100,
		Name:    "Ravi K",
		Phone:   "+919800000000",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), c.ID)
	assert.Equal(t, "Ravi", c.Name)
}

func TestRepository_FindByPhone_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM customers WHERE owner_id = \$1 AND phone = \$2`).
		WithArgs(int64(100), "+911").
		WillReturnRows(sqlmock.NewRows(customerColumns))

	_, err = NewRepository(db).FindByPhone(context.Background(), 100, "+911")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
