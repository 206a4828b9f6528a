package ports

import (
	"context"

	"github.com/recipehub/web-gateway/internal/core/domain"
)

// TokenStore is the durable credential store, one record per browser
// session. It is a pure storage primitive: no validation or expiry logic
// beyond the record TTL, whole-record writes only, last write wins.
//
// Get returns (nil, nil) when no record exists. Clear is idempotent.
type TokenStore interface {
	Get(ctx context.Context, sid string) (*domain.SessionRecord, error)
	Set(ctx context.Context, sid string, rec domain.SessionRecord) error
	Clear(ctx context.Context, sid string) error
}
