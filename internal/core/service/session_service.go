package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/recipehub/web-gateway/internal/api/metrics"
	"github.com/recipehub/web-gateway/internal/core/domain"
	"github.com/recipehub/web-gateway/internal/core/ports"
)

const defaultIdentityTTL = 5 * time.Minute

// SessionService owns authentication state for browser sessions. It is the
// only component besides the gateway's rejection path that writes to the
// token store, and the boundary that turns raw backend failures into either
// state transitions or user-facing messages.
type SessionService struct {
	store       ports.TokenStore
	backend     ports.Backend
	audit       ports.AuditSink
	identityTTL time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

// NewSessionService builds a SessionService. audit may be nil (events are
// then dropped); identityTTL controls how long a cached identity is served
// before revalidation against the backend.
func NewSessionService(
	store ports.TokenStore,
	backend ports.Backend,
	audit ports.AuditSink,
	identityTTL time.Duration,
	log zerolog.Logger,
) *SessionService {
	if identityTTL <= 0 {
		identityTTL = defaultIdentityTTL
	}
	return &SessionService{
		store:       store,
		backend:     backend,
		audit:       audit,
		identityTTL: identityTTL,
		log:         log,
		now:         time.Now,
	}
}

// Resolve bootstraps the session state for one request. An empty sid or an
// absent record resolves to Unauthenticated without touching the network. A
// fresh cached identity is served as-is; a stale one is revalidated through
// the gateway and the record rewritten whole.
func (s *SessionService) Resolve(ctx context.Context, sid string) (*domain.Session, error) {
	if sid == "" {
		return &domain.Session{State: domain.StateUnauthenticated}, nil
	}

	rec, err := s.store.Get(ctx, sid)
	if err != nil {
		// A store outage denies the session rather than failing the page.
		s.log.Error().Err(err).Msg("token store read failed during resolve")
		return &domain.Session{State: domain.StateUnauthenticated}, nil
	}
	if rec == nil {
		return &domain.Session{State: domain.StateUnauthenticated}, nil
	}

	if !rec.Stale(s.identityTTL, s.now()) {
		ident := rec.Identity
		return &domain.Session{State: domain.StateAuthenticated, Identity: &ident}, nil
	}

	ident, err := s.backend.CurrentUser(ctx, sid)
	switch {
	case err == nil:
		refreshed := domain.SessionRecord{Credential: rec.Credential, Identity: *ident, CachedAt: s.now()}
		if err := s.store.Set(ctx, sid, refreshed); err != nil {
			s.log.Warn().Err(err).Msg("failed to refresh session record")
		}
		return &domain.Session{State: domain.StateAuthenticated, Identity: ident}, nil

	case errors.Is(err, domain.ErrSessionRevoked):
		// The gateway has already cleared the record.
		return &domain.Session{State: domain.StateUnauthenticated}, nil

	default:
		// A transient outage or unexpected backend failure must not log the
		// user out; serve the cached identity until revalidation succeeds.
		s.log.Warn().Err(err).Msg("identity revalidation failed, serving cached identity")
		ident := rec.Identity
		return &domain.Session{State: domain.StateAuthenticated, Identity: &ident}, nil
	}
}

// Login authenticates against the backend and, on success, replaces the
// session record for sid. Rejections surface as user-facing errors and leave
// the store untouched.
func (s *SessionService) Login(ctx context.Context, sid, identifier, password string) (*domain.Identity, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, fmt.Errorf("%w: identifier and password are required", domain.ErrValidation)
	}

	token, ident, err := s.backend.Login(ctx, identifier, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		s.emit(sid, domain.AuthEventLoginFailed, identifier)
		return nil, err
	}

	if err := s.persist(ctx, sid, token, ident); err != nil {
		return nil, err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.emit(sid, domain.AuthEventLogin, ident.Username)
	s.log.Info().Str("username", ident.Username).Msg("login succeeded")
	return ident, nil
}

// Register creates an account via the backend. Field-shape validation has
// already happened at the HTTP boundary; only presence is re-checked here so
// no malformed request ever reaches the network.
func (s *SessionService) Register(ctx context.Context, sid, username, email, password string) (*domain.Identity, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrValidation)
	}

	token, ident, err := s.backend.Signup(ctx, username, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.persist(ctx, sid, token, ident); err != nil {
		return nil, err
	}
	s.emit(sid, domain.AuthEventRegister, ident.Username)
	s.log.Info().Str("username", ident.Username).Msg("registration succeeded")
	return ident, nil
}

// Logout clears the session record. Clearing an absent record is a no-op.
func (s *SessionService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.store.Clear(ctx, sid); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.emit(sid, domain.AuthEventLogout, "")
	return nil
}

// HandleRevoked is registered with the gateway at startup and runs after the
// gateway has cleared a rejected session's record. It only records the event;
// the HTTP layer owns the redirect.
func (s *SessionService) HandleRevoked(_ context.Context, sid string) {
	s.emit(sid, domain.AuthEventForcedLogout, "")
}

// persist writes the whole session record; last write wins, matching the
// token store's replace-or-clear semantics.
func (s *SessionService) persist(ctx context.Context, sid, token string, ident *domain.Identity) error {
	rec := domain.SessionRecord{Credential: token, Identity: *ident, CachedAt: s.now()}
	if err := s.store.Set(ctx, sid, rec); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *SessionService) emit(sid string, kind domain.AuthEventKind, username string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuthEvent{SessionID: sid, Kind: kind, Username: username, At: s.now()})
}
