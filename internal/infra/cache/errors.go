package cache

import "errors"

var (
	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("cache: redis error")

	// ErrLockNotAcquired возвращается, если мьютекс площадки занят дольше таймаута
	ErrLockNotAcquired = errors.New("cache: lock not acquired")
)
