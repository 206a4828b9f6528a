package domain

import "errors"

var (
	// ErrSessionRevoked signals that the backend rejected the stored
	// credential. By the time this surfaces the gateway has already cleared
	// the session record; the HTTP layer answers with a hard redirect to the
	// login entry point.
	ErrSessionRevoked = errors.New("session revoked")

	// ErrBackendUnavailable marks transport-level failures where no response
	// was received at all. Never conflated with ErrSessionRevoked: a network
	// blip must not log anyone out.
	ErrBackendUnavailable = errors.New("recipe backend unavailable")

	// ErrValidation wraps human-readable rejection messages for submitted
	// login/registration data. Surface the wrapped message to the user.
	ErrValidation = errors.New("validation failed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username or email already taken")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("access forbidden")
)
