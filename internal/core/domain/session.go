package domain

import "time"

// SessionState is the resolution state of a request's session. Exactly one
// state holds at any instant.
type SessionState int

const (
	// StateUnknown means the session has not been resolved yet. It is the
	// zero value so an unresolved Session denies every capability check.
	StateUnknown SessionState = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is the per-request authentication state resolved from the durable
// session record. Identity is set only when State is StateAuthenticated.
type Session struct {
	State    SessionState
	Identity *Identity
}

// Authenticated reports whether the session resolved to a known identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.State == StateAuthenticated && s.Identity != nil
}

// HasRole reports whether the session's identity carries at least min.
// An absent identity answers false; it never panics.
func (s *Session) HasRole(min Role) bool {
	if !s.Authenticated() {
		return false
	}
	return s.Identity.Role.AtLeast(min)
}

// IsAdmin is the capability check behind admin-only routes.
func (s *Session) IsAdmin() bool {
	return s.HasRole(RoleAdmin)
}

// SessionRecord is the durable per-browser-context record held in the token
// store: the bearer credential issued by the backend plus the identity it
// resolved to. Records are replaced or cleared as a whole, never patched.
type SessionRecord struct {
	Credential string    `json:"credential"`
	Identity   Identity  `json:"identity"`
	CachedAt   time.Time `json:"cached_at"`
}

// Stale reports whether the cached identity is older than maxAge and must be
// revalidated against the backend on the next resolve.
func (r SessionRecord) Stale(maxAge time.Duration, now time.Time) bool {
	if maxAge <= 0 {
		return true
	}
	return now.Sub(r.CachedAt) > maxAge
}
