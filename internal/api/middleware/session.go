package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/recipehub/web-gateway/internal/core/domain"
	"github.com/recipehub/web-gateway/internal/core/ports"
	"github.com/recipehub/web-gateway/internal/core/service"
)

// ResolveSession resolves the caller's session before any guard runs and
// injects it into the request context under "session" (the session id under
// "session_id"). It never rejects a request: an absent, tampered, or expired
// cookie simply resolves to an unauthenticated session. Guards mounted after
// this middleware therefore only ever observe a fully resolved session.
func ResolveSession(codec *service.CookieCodec, sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(service.SessionCookieName); err == nil && ck.Value != "" {
				if parsed, err := codec.Parse(ck.Value); err == nil {
					sid = parsed
				}
			}

			sess, err := sessions.Resolve(c.Request().Context(), sid)
			if err != nil || sess == nil {
				sess = &domain.Session{State: domain.StateUnauthenticated}
			}

			c.Set("session", sess)
			c.Set("session_id", sid)
			return next(c)
		}
	}
}
