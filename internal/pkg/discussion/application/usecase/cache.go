package usecase

import (
	"context"
	"strconv"
	"time"

	cacheport "pairingbook/internal/infrastructure/cache/port"
)

// approvedCountTTL bounds how stale a cached approved-participant count may
// get. Capacity is a soft UX limit, so a short window of staleness is fine.
const approvedCountTTL = 30 * time.Second

// CountCache caches approved-participant counts per discussion. A zero value
// (nil backing cache) disables caching, so use cases can be wired without
// Redis in tests and local runs.
type CountCache struct {
	Cache cacheport.Cache
}

func approvedCountKey(discussionID string) string {
	return "discussion:" + discussionID + ":approved_count"
}

// Get returns the cached count, or ok=false on miss, disabled cache, or any
// cache error. Cache failures never fail the request.
func (c CountCache) Get(ctx context.Context, discussionID string) (int64, bool) {
	if c.Cache == nil {
		return 0, false
	}
	raw, err := c.Cache.Get(ctx, approvedCountKey(discussionID))
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Put stores the count with the standard TTL, best effort.
func (c CountCache) Put(ctx context.Context, discussionID string, n int64) {
	if c.Cache == nil {
		return
	}
	_ = c.Cache.Set(ctx, approvedCountKey(discussionID), strconv.FormatInt(n, 10), approvedCountTTL)
}

// Invalidate drops the cached count after any change to the approved set.
func (c CountCache) Invalidate(ctx context.Context, discussionID string) {
	if c.Cache == nil {
		return
	}
	_, _ = c.Cache.Del(ctx, approvedCountKey(discussionID))
}
