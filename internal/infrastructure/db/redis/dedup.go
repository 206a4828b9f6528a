package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recipehub/web-gateway/internal/core/domain"
)

const dedupTTL = time.Minute

// DedupChecker suppresses bursts of identical auth events backed by Redis.
// Key format: authdedup:<session_id>:<kind>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this event has already been recorded within
// the dedup window.
func (d *DedupChecker) IsDuplicate(ctx context.Context, sid string, kind domain.AuthEventKind) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(sid, kind)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been seen (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, sid string, kind domain.AuthEventKind) error {
	return d.client.Set(ctx, d.key(sid, kind), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(sid string, kind domain.AuthEventKind) string {
	return fmt.Sprintf("authdedup:%s:%s", sid, kind)
}
