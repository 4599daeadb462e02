package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

// Locker распределённый мьютекс на (площадка, дата).
// Сужает окно гонки перед транзакцией, но не заменяет ограничение в БД.
type Locker struct {
	rs  *redsync.Redsync
	ttl time.Duration
}

// NewLocker создает мьютекс поверх клиента Redis
func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{
		rs:  redsync.New(goredis.NewPool(client)),
		ttl: ttl,
	}
}

// Lock берёт мьютекс площадки на дату и возвращает функцию освобождения
func (l *Locker) Lock(ctx context.Context, venueID int64, date time.Time) (func(), error) {
	name := fmt.Sprintf("lock:venue:%d:%s", venueID, date.Format(domain.DateFormat))

	mutex := l.rs.NewMutex(name,
		redsync.WithExpiry(l.ttl),
		redsync.WithTries(20),
		redsync.WithRetryDelay(100*time.Millisecond),
	)

	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLockNotAcquired, name, err)
	}

	return func() {
		// контекст запроса может быть уже отменён
		_, _ = mutex.UnlockContext(context.Background())
	}, nil
}
