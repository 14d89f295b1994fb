package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/amizade-app/companion-api/internal/domain/schedule"
)

// SlotCache memoizes derived open slots per (companion, date,
// granularity). Staleness only affects slot visibility, never
// reservation correctness: the conflict guard re-checks at write time.
// A nil SlotCache is a no-op so the API runs without redis.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSlotCache(addr, password string, ttl time.Duration) *SlotCache {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &SlotCache{rdb: rdb, ttl: ttl}
}

func slotKey(companionID uint, date string, granularity int) string {
	return fmt.Sprintf("slots:%d:%s:%d", companionID, date, granularity)
}

func (c *SlotCache) Get(ctx context.Context, companionID uint, date string, granularity int) ([]schedule.Interval, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, slotKey(companionID, date, granularity)).Result()
	if err != nil {
		return nil, false
	}
	var slots []schedule.Interval
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, companionID uint, date string, granularity int, slots []schedule.Interval) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, slotKey(companionID, date, granularity), raw, c.ttl).Err()
}

// InvalidateDate drops every granularity variant for one day.
func (c *SlotCache) InvalidateDate(ctx context.Context, companionID uint, date string) {
	if c == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%d:%s:*", companionID, date)
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

// InvalidateCompanion drops everything cached for a companion, used
// after weekly pattern changes that touch every future date.
func (c *SlotCache) InvalidateCompanion(ctx context.Context, companionID uint) {
	if c == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%d:*", companionID)
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}
