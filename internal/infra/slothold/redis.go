package slothold

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
)

// RedisSlotHolder pose une clé SETNX à durée de vie courte sur un créneau
// (coiffeur, date, heure de début) pendant la confirmation. Deux sessions
// visant le même créneau au même moment : la seconde échoue immédiatement
// avec un signal "créneau pris", sans toucher à la base.
type RedisSlotHolder struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotHolder(client *redis.Client, ttl time.Duration) *RedisSlotHolder {
	return &RedisSlotHolder{client: client, ttl: ttl}
}

func key(employeeID uint, date time.Time, start string) string {
	return fmt.Sprintf("slothold:%d:%s:%s", employeeID, date.Format("2006-01-02"), start)
}

func (h *RedisSlotHolder) Acquire(
	ctx context.Context,
	employeeID uint,
	date time.Time,
	start string,
) (bool, error) {
	return h.client.SetNX(ctx, key(employeeID, date, start), 1, h.ttl).Result()
}

func (h *RedisSlotHolder) Release(
	ctx context.Context,
	employeeID uint,
	date time.Time,
	start string,
) error {
	return h.client.Del(ctx, key(employeeID, date, start)).Err()
}

var _ domain.SlotHolder = (*RedisSlotHolder)(nil)
