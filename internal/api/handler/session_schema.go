package handler

import "github.com/recipehub/web-gateway/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// --- Request / Response types ---

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

// registerRequest mirrors the signup form's own pre-checks: these bounds are
// enforced before any network call reaches the backend.
type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type sessionResponse struct {
	State string           `json:"state"`
	User  *domain.Identity `json:"user,omitempty"`
}

type authEventResponse struct {
	Kind     string `json:"kind"`
	Username string `json:"username,omitempty"`
	At       string `json:"at"`
}
