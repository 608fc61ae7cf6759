package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dinebook/table-reservation/internal/booking"
)

// SeatCache keeps the reserved-seat snapshot of each restaurant in
// Redis.  The snapshot is a derived view over the active reservations
// and can always be rebuilt from the database, so the cache degrades
// gracefully: a nil client or any Redis error simply means a rebuild.
// Writers must invalidate after every reservation mutation.
type SeatCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSeatCache wraps a Redis client.  The client may be nil, in which
// case every lookup misses and every store is a no-op.
func NewSeatCache(rdb *redis.Client, ttl time.Duration) *SeatCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &SeatCache{rdb: rdb, ttl: ttl}
}

func seatKey(restaurantID uint64) string {
	return fmt.Sprintf("seats:%d", restaurantID)
}

// Get returns the cached snapshot and whether it was present.
func (c *SeatCache) Get(ctx context.Context, restaurantID uint64) (booking.SeatMap, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	bs, err := c.rdb.Get(ctx, seatKey(restaurantID)).Bytes()
	if err != nil {
		return nil, false
	}
	var m booking.SeatMap
	if err := json.Unmarshal(bs, &m); err != nil {
		return nil, false
	}
	return m, true
}

// Put stores a freshly rebuilt snapshot with the configured TTL.
func (c *SeatCache) Put(ctx context.Context, restaurantID uint64, seats booking.SeatMap) {
	if c == nil || c.rdb == nil {
		return
	}
	bs, err := json.Marshal(seats)
	if err != nil {
		return
	}
	_ = c.rdb.SetEx(ctx, seatKey(restaurantID), bs, c.ttl).Err()
}

// Invalidate drops the cached snapshot after a reservation mutation.
func (c *SeatCache) Invalidate(ctx context.Context, restaurantID uint64) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, seatKey(restaurantID)).Err()
}
