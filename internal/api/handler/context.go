package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/recipehub/web-gateway/internal/core/domain"
)

// ctxSession returns the session resolved by the ResolveSession middleware.
// A missing value (middleware not mounted — programmer misuse) yields an
// unresolved session, which fails every capability check instead of
// panicking.
func ctxSession(c echo.Context) *domain.Session {
	if sess, ok := c.Get("session").(*domain.Session); ok && sess != nil {
		return sess
	}
	return &domain.Session{}
}

// ctxSessionID returns the session id parsed from the request cookie, or ""
// for anonymous callers.
func ctxSessionID(c echo.Context) string {
	sid, _ := c.Get("session_id").(string)
	return sid
}
