package ports

import (
	"context"

	"github.com/recipehub/web-gateway/internal/core/domain"
)

// AuditRepository persists the session audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, ev *domain.AuthEvent) error
	Recent(ctx context.Context, limit int64) ([]domain.AuthEvent, error)
}

// AuditService records session lifecycle events, suppressing bursts of
// forced logouts for the same session.
type AuditService interface {
	Record(ctx context.Context, ev domain.AuthEvent) error
}

// AuditSink accepts events for asynchronous recording. Implemented by the
// queue dispatcher; the session service only ever enqueues.
type AuditSink interface {
	Enqueue(ev domain.AuthEvent)
}
