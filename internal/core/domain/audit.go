package domain

import "time"

// AuthEventKind enumerates the session lifecycle events kept in the audit
// trail.
type AuthEventKind string

const (
	AuthEventLogin        AuthEventKind = "login"
	AuthEventLoginFailed  AuthEventKind = "login_failed"
	AuthEventRegister     AuthEventKind = "register"
	AuthEventLogout       AuthEventKind = "logout"
	AuthEventForcedLogout AuthEventKind = "forced_logout"
)

// AuthEvent is a single entry in the session audit trail. Username may be
// empty for events where no identity is in hand (e.g. forced logouts).
type AuthEvent struct {
	SessionID string        `json:"session_id"`
	Kind      AuthEventKind `json:"kind"`
	Username  string        `json:"username,omitempty"`
	At        time.Time     `json:"at"`
}
