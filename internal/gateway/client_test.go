package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/recipehub/web-gateway/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubStore struct {
	mu      sync.Mutex
	records map[string]domain.SessionRecord
	clears  []string
}

func newStubStore() *stubStore {
	return &stubStore{records: map[string]domain.SessionRecord{}}
}

func (s *stubStore) Get(_ context.Context, sid string) (*domain.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[sid]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *stubStore) Set(_ context.Context, sid string, rec domain.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sid] = rec
	return nil
}

func (s *stubStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sid)
	s.clears = append(s.clears, sid)
	return nil
}

func seedStore(store *stubStore, sid, token string) {
	store.records[sid] = domain.SessionRecord{
		Credential: token,
		Identity:   domain.Identity{ID: "u1", Username: "chef1", Role: domain.RoleUser},
		CachedAt:   time.Now(),
	}
}

// ---------------------------------------------------------------------------
// Credential attachment
// ---------------------------------------------------------------------------

func TestClient_Do_AttachesBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"recipes":[]}`))
	}))
	defer srv.Close()

	store := newStubStore()
	seedStore(store, "sid-1", "tok-1")
	client := New(srv.URL, time.Second, store, zerolog.Nop())

	status, raw, err := client.Do(context.Background(), "sid-1", http.MethodGet, "/api/recipes", nil, nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("expected 200, got %d", status)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if string(raw) != `{"recipes":[]}` {
		t.Errorf("unexpected body passthrough: %s", raw)
	}
}

func TestClient_Do_NoRecordNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, newStubStore(), zerolog.Nop())

	if _, _, err := client.Do(context.Background(), "sid-unknown", http.MethodGet, "/api/recipes", nil, nil); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("request without a stored record must go out unauthenticated, got %q", gotAuth)
	}
}

// ---------------------------------------------------------------------------
// Revocation sequence
// ---------------------------------------------------------------------------

func TestClient_Do_RejectionClearsAndNotifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newStubStore()
	seedStore(store, "sid-1", "tok-expired")
	client := New(srv.URL, time.Second, store, zerolog.Nop())

	var hookCalls []string
	client.OnRevoked(func(_ context.Context, sid string) {
		hookCalls = append(hookCalls, sid)
	})

	_, _, err := client.Do(context.Background(), "sid-1", http.MethodGet, "/api/recipes/my", nil, nil)
	if !errors.Is(err, domain.ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got: %v", err)
	}
	if _, ok := store.records["sid-1"]; ok {
		t.Errorf("record must be cleared after rejection")
	}
	if len(hookCalls) != 1 || hookCalls[0] != "sid-1" {
		t.Errorf("expected hook fired once for sid-1, got: %v", hookCalls)
	}
}

func TestClient_Do_RepeatedRejectionIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newStubStore()
	seedStore(store, "sid-1", "tok-expired")
	client := New(srv.URL, time.Second, store, zerolog.Nop())

	hookCalls := 0
	client.OnRevoked(func(context.Context, string) { hookCalls++ })

	for i := 0; i < 2; i++ {
		if _, _, err := client.Do(context.Background(), "sid-1", http.MethodGet, "/api/recipes/my", nil, nil); !errors.Is(err, domain.ErrSessionRevoked) {
			t.Fatalf("call %d: expected ErrSessionRevoked, got: %v", i, err)
		}
	}

	// Clearing an already-cleared record is a no-op; the hook still fires per
	// rejected response so the audit layer can dedup.
	if len(store.clears) != 2 {
		t.Errorf("expected two clear calls, got %d", len(store.clears))
	}
	if hookCalls != 2 {
		t.Errorf("expected hook per rejected response, got %d", hookCalls)
	}
	if _, ok := store.records["sid-1"]; ok {
		t.Errorf("record must stay cleared")
	}
}

func TestClient_Do_NetworkFailureKeepsRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	srv.Close() // connection refused from here on

	store := newStubStore()
	seedStore(store, "sid-1", "tok-1")
	client := New(srv.URL, time.Second, store, zerolog.Nop())

	hookCalls := 0
	client.OnRevoked(func(context.Context, string) { hookCalls++ })

	_, _, err := client.Do(context.Background(), "sid-1", http.MethodGet, "/api/recipes", nil, nil)
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got: %v", err)
	}
	if _, ok := store.records["sid-1"]; !ok {
		t.Errorf("a transport failure must never clear the session record")
	}
	if hookCalls != 0 {
		t.Errorf("a transport failure must never fire the revocation hook")
	}
}

// ---------------------------------------------------------------------------
// Credential exchange
// ---------------------------------------------------------------------------

func TestClient_Login_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("credential exchange must not carry a bearer header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-9","user":{"id":"u1","username":"chef1","role":"user"}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, newStubStore(), zerolog.Nop())

	token, ident, err := client.Login(context.Background(), "chef1", "secretpw")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token != "tok-9" {
		t.Errorf("expected token tok-9, got %q", token)
	}
	if ident.Username != "chef1" || ident.Role != domain.RoleUser {
		t.Errorf("unexpected identity: %+v", ident)
	}
}

func TestClient_Login_WrongPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, newStubStore(), zerolog.Nop())

	_, _, err := client.Login(context.Background(), "chef1", "wrongpw")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("a rejected login is bad credentials, not a revoked session; got: %v", err)
	}
	if errors.Is(err, domain.ErrSessionRevoked) {
		t.Fatalf("a rejected login must not look like a forced logout")
	}
}

func TestClient_Signup_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"username taken"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, newStubStore(), zerolog.Nop())

	_, _, err := client.Signup(context.Background(), "chef1", "c@x.dev", "secretpw")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got: %v", err)
	}
}

func TestClient_Signup_ValidationMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"password too weak"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, newStubStore(), zerolog.Nop())

	_, _, err := client.Signup(context.Background(), "chef1", "c@x.dev", "123456")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	// The backend's human-readable message survives for the user.
	if !strings.Contains(err.Error(), "password too weak") {
		t.Errorf("backend message lost: %v", err)
	}
}

func TestClient_CurrentUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/me" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			t.Errorf("expected stored bearer, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u1","username":"chef1","role":"admin"}}`))
	}))
	defer srv.Close()

	store := newStubStore()
	seedStore(store, "sid-1", "tok-1")
	client := New(srv.URL, time.Second, store, zerolog.Nop())

	ident, err := client.CurrentUser(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if ident.Role != domain.RoleAdmin {
		t.Errorf("unexpected identity: %+v", ident)
	}
}
