// Package gateway implements the single egress point to the recipe backend.
// Every outbound call attaches the stored bearer credential for the caller's
// session, and every inbound response is inspected for an authorization
// rejection. On a 401 the client clears the session record and fires the
// revocation hook; it knows nothing about routing or rendering.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/recipehub/web-gateway/internal/api/metrics"
	"github.com/recipehub/web-gateway/internal/core/domain"
	"github.com/recipehub/web-gateway/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// RevokedHook is invoked after the client has cleared a session record in
// response to a credential rejection. Registered once at startup by the
// session layer.
type RevokedHook func(ctx context.Context, sid string)

// Client calls the recipe backend on behalf of browser sessions.
type Client struct {
	baseURL string
	http    *http.Client
	store   ports.TokenStore
	log     zerolog.Logger

	mu      sync.RWMutex
	revoked RevokedHook
}

// New creates a Client for the backend at baseURL. A default timeout is
// applied when none is provided.
func New(baseURL string, timeout time.Duration, store ports.TokenStore, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		log:     log,
	}
}

// OnRevoked registers the hook fired after a stored credential is rejected.
func (c *Client) OnRevoked(hook RevokedHook) {
	c.mu.Lock()
	c.revoked = hook
	c.mu.Unlock()
}

// Login exchanges credentials for a bearer token via POST /auth/login.
func (c *Client) Login(ctx context.Context, identifier, password string) (string, *domain.Identity, error) {
	return c.auth(ctx, "/api/auth/login", map[string]string{
		"identifier": identifier,
		"password":   password,
	})
}

// Signup creates an account via POST /auth/signup.
func (c *Client) Signup(ctx context.Context, username, email, password string) (string, *domain.Identity, error) {
	return c.auth(ctx, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

// CurrentUser validates the session's stored credential via GET /auth/me.
func (c *Client) CurrentUser(ctx context.Context, sid string) (*domain.Identity, error) {
	resp, err := c.roundTrip(ctx, sid, http.MethodGet, "/api/auth/me", nil, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.errorFromResponse(resp)
	}

	var out struct {
		User domain.Identity `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode identity response: %w", err)
	}
	return &out.User, nil
}

// Do forwards an arbitrary backend call for the given session and returns
// the backend's status code and raw JSON body untouched. Only authorization
// rejections are transformed (into ErrSessionRevoked); every other status
// passes through to the caller.
func (c *Client) Do(ctx context.Context, sid, method, path string, query url.Values, body io.Reader) (int, json.RawMessage, error) {
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	resp, err := c.roundTrip(ctx, sid, method, path, query, body, contentType)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return resp.StatusCode, nil, domain.ErrSessionRevoked
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read backend response: %w", err)
	}
	return resp.StatusCode, raw, nil
}

// Ping reports whether the backend is reachable. Any HTTP response counts as
// reachable; only transport failures count against readiness.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	_ = resp.Body.Close()
	return nil
}

type authResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

// auth runs an unauthenticated credential exchange (login or signup).
func (c *Client) auth(ctx context.Context, path string, payload map[string]string) (string, *domain.Identity, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", nil, err
	}

	resp, err := c.roundTrip(ctx, "", http.MethodPost, path, nil, bytes.NewReader(buf), "application/json")
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// A credential exchange carries no stored credential, so a 401 here
		// means the submitted credentials were wrong, not a revoked session.
		return "", nil, domain.ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", nil, c.errorFromResponse(resp)
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", nil, fmt.Errorf("decode auth response: %w", err)
	}
	if out.Token == "" {
		return "", nil, errors.New("auth response missing token")
	}
	return out.Token, &out.User, nil
}

// roundTrip performs one backend call: attach the stored credential for sid
// (if any), dispatch, record metrics, and run the revocation sequence on a
// 401 before handing the response back.
func (c *Client) roundTrip(ctx context.Context, sid, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if sid != "" {
		rec, err := c.store.Get(ctx, sid)
		if err != nil {
			c.log.Warn().Err(err).Msg("token store read failed, sending request unauthenticated")
		} else if rec != nil {
			req.Header.Set("Authorization", "Bearer "+rec.Credential)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	metrics.BackendRequestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleRevoked(ctx, sid)
	}
	return resp, nil
}

// handleRevoked runs the clear-and-notify sequence, once per offending
// response. Clear is idempotent, so overlapping rejections for the same
// session are harmless.
func (c *Client) handleRevoked(ctx context.Context, sid string) {
	metrics.AuthRejectionsTotal.Inc()
	if sid == "" {
		return
	}

	if err := c.store.Clear(ctx, sid); err != nil {
		c.log.Error().Err(err).Msg("failed to clear revoked session record")
	}

	c.mu.RLock()
	hook := c.revoked
	c.mu.RUnlock()
	if hook != nil {
		hook(ctx, sid)
	}

	c.log.Info().Msg("stored credential rejected by backend, session cleared")
}

// errorFromResponse maps a non-2xx backend response onto the domain error
// taxonomy, keeping the backend's human-readable message where callers show
// it to users.
func (c *Client) errorFromResponse(resp *http.Response) error {
	msg := backendMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrSessionRevoked
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if msg == "" {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	case http.StatusConflict:
		return domain.ErrUserExists
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusForbidden:
		return domain.ErrForbidden
	default:
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, msg)
	}
}

// backendMessage extracts the {"error": "..."} envelope the backend uses for
// rejections. Returns "" when the body carries no usable message.
func backendMessage(body io.Reader) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return envelope.Message
}
