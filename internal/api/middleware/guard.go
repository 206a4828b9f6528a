package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/recipehub/web-gateway/internal/core/domain"
)

const (
	loginPath = "/login"
	homePath  = "/"
)

// RequireAuth admits only authenticated sessions. Anonymous callers, sessions
// revoked mid-flight, and sessions never resolved because ResolveSession was
// not mounted are all sent to the login entry point. Guards are read-only:
// they never mutate session state themselves.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, _ := c.Get("session").(*domain.Session)
		if !sess.Authenticated() {
			return deny(c, http.StatusUnauthorized, loginPath, "authentication required")
		}
		return next(c)
	}
}

// RequireAdmin distinguishes "not logged in" (login entry point) from
// "logged in but not allowed" (home): the two destinations are deliberately
// different.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, _ := c.Get("session").(*domain.Session)
		if !sess.Authenticated() {
			return deny(c, http.StatusUnauthorized, loginPath, "authentication required")
		}
		if !sess.IsAdmin() {
			return deny(c, http.StatusForbidden, homePath, "admin access required")
		}
		return next(c)
	}
}

// deny answers a rejected navigation: a hard redirect for browser requests,
// a JSON envelope with a redirect hint for fetch callers.
func deny(c echo.Context, status int, target, msg string) error {
	if wantsHTML(c) {
		return c.Redirect(http.StatusSeeOther, target)
	}
	return c.JSON(status, map[string]string{"error": msg, "redirect": target})
}

// wantsHTML reports whether the client expects a browser navigation response
// rather than a JSON API answer.
func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
