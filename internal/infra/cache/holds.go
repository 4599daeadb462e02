package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

// releaseIfOwner удаляет ключ, только если он принадлежит токену
var releaseIfOwner = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Holds временные удержания слотов на время оформления брони.
// Ключ слота хранит токен удержания, ключ токена хранит множество ключей слотов.
type Holds struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHolds создает хранилище удержаний
func NewHolds(client *redis.Client, ttl time.Duration) *Holds {
	return &Holds{client: client, ttl: ttl}
}

// TTL время жизни удержания
func (h *Holds) TTL() time.Duration {
	return h.ttl
}

// Acquire удерживает все слоты для токена. Если хотя бы один слот удержан другим токеном,
// уже взятые слоты отпускаются и возвращается false.
// Повторный вызов тем же токеном продлевает удержание.
func (h *Holds) Acquire(ctx context.Context, token string, slots []domain.SlotKey) (bool, error) {
	acquired := make([]string, 0, len(slots))

	for _, slot := range slots {
		key := slotKey(slot)

		ok, err := h.client.SetNX(ctx, key, token, h.ttl).Result()
		if err != nil {
			h.releaseKeys(ctx, token, acquired)
			return false, fmt.Errorf("%w: Acquire - setnx %s: %v", ErrRedis, key, err)
		}

		if !ok {
			owner, err := h.client.Get(ctx, key).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				h.releaseKeys(ctx, token, acquired)
				return false, fmt.Errorf("%w: Acquire - get %s: %v", ErrRedis, key, err)
			}
			if owner != token {
				h.releaseKeys(ctx, token, acquired)
				return false, nil
			}
			if err := h.client.Expire(ctx, key, h.ttl).Err(); err != nil {
				return false, fmt.Errorf("%w: Acquire - expire %s: %v", ErrRedis, key, err)
			}
		}

		acquired = append(acquired, key)
	}

	pipe := h.client.TxPipeline()
	for _, key := range acquired {
		pipe.SAdd(ctx, tokenKey(token), key)
	}
	pipe.Expire(ctx, tokenKey(token), h.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		h.releaseKeys(ctx, token, acquired)
		return false, fmt.Errorf("%w: Acquire - index token: %v", ErrRedis, err)
	}

	return true, nil
}

// Release отпускает все слоты токена. Неизвестный токен не ошибка.
func (h *Holds) Release(ctx context.Context, token string) error {
	keys, err := h.client.SMembers(ctx, tokenKey(token)).Result()
	if err != nil {
		return fmt.Errorf("%w: Release - smembers: %v", ErrRedis, err)
	}

	h.releaseKeys(ctx, token, keys)

	if err := h.client.Del(ctx, tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("%w: Release - del token: %v", ErrRedis, err)
	}
	return nil
}

// HeldBy возвращает токены удержаний для слотов. Свободные слоты в результат не попадают.
func (h *Holds) HeldBy(ctx context.Context, slots []domain.SlotKey) (map[domain.SlotKey]string, error) {
	result := make(map[domain.SlotKey]string)
	if len(slots) == 0 {
		return result, nil
	}

	keys := make([]string, len(slots))
	for i, slot := range slots {
		keys[i] = slotKey(slot)
	}

	values, err := h.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: HeldBy - mget: %v", ErrRedis, err)
	}

	for i, v := range values {
		if token, ok := v.(string); ok && token != "" {
			result[slots[i]] = token
		}
	}
	return result, nil
}

func (h *Holds) releaseKeys(ctx context.Context, token string, keys []string) {
	for _, key := range keys {
		// ошибку игнорируем, ключ всё равно истечёт по TTL
		_ = releaseIfOwner.Run(ctx, h.client, []string{key}, token).Err()
	}
}

func slotKey(slot domain.SlotKey) string {
	return fmt.Sprintf("hold:venue:%d:%s:%02d", slot.VenueID, slot.Date.Format(domain.DateFormat), slot.Hour)
}

func tokenKey(token string) string {
	return "hold:token:" + token
}
