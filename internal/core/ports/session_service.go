package ports

import (
	"context"

	"github.com/recipehub/web-gateway/internal/core/domain"
)

// SessionService is the single source of truth for "who is logged in" for a
// given browser session. Login, Register and Logout are the only operations
// that mutate the token store from this layer.
type SessionService interface {
	// Resolve bootstraps the session state for a request. An empty sid or an
	// absent record resolves to Unauthenticated without any network call.
	Resolve(ctx context.Context, sid string) (*domain.Session, error)

	Login(ctx context.Context, sid, identifier, password string) (*domain.Identity, error)
	Register(ctx context.Context, sid, username, email, password string) (*domain.Identity, error)
	Logout(ctx context.Context, sid string) error
}
