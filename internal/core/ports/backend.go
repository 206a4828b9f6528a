package ports

import (
	"context"
	"encoding/json"
	"io"
	"net/url"

	"github.com/recipehub/web-gateway/internal/core/domain"
)

// Backend is the single egress point to the recipe REST backend. Every call
// attaches the stored credential for the given session; a 401 response has
// already cleared that session's record by the time the error returns.
type Backend interface {
	// Login exchanges credentials for a bearer token and the resolved
	// identity via POST /auth/login.
	Login(ctx context.Context, identifier, password string) (string, *domain.Identity, error)

	// Signup creates an account via POST /auth/signup and, like Login,
	// returns a live credential.
	Signup(ctx context.Context, username, email, password string) (string, *domain.Identity, error)

	// CurrentUser validates the stored credential via GET /auth/me.
	CurrentUser(ctx context.Context, sid string) (*domain.Identity, error)

	// Do forwards an arbitrary backend call and returns the backend's status
	// code and raw JSON body untouched.
	Do(ctx context.Context, sid, method, path string, query url.Values, body io.Reader) (int, json.RawMessage, error)
}
