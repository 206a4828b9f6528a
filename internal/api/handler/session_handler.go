package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipehub/web-gateway/internal/core/domain"
	"github.com/recipehub/web-gateway/internal/core/ports"
	"github.com/recipehub/web-gateway/internal/core/service"
)

// SessionHandler owns the browser-facing session lifecycle endpoints.
type SessionHandler struct {
	sessions ports.SessionService
	cookies  *service.CookieCodec
}

func NewSessionHandler(sessions ports.SessionService, cookies *service.CookieCodec) *SessionHandler {
	return &SessionHandler{sessions: sessions, cookies: cookies}
}

// Current handles GET /session — reports the resolved session state so the
// frontend can render without a second round trip.
//
// @Summary      Current session state
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	sess := ctxSession(c)
	resp := sessionResponse{State: sess.State.String()}
	if sess.Authenticated() {
		resp.User = sess.Identity
	}
	return c.JSON(http.StatusOK, resp)
}

// Login handles POST /session/login — authenticates against the backend and
// establishes a fresh session.
//
// @Summary      Log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	// A fresh id on every login; the old session, if any, is simply
	// abandoned and expires with its record.
	sid, err := service.NewSessionID()
	if err != nil {
		return err
	}

	ident, err := h.sessions.Login(c.Request().Context(), sid, req.Identifier, req.Password)
	if err != nil {
		return err
	}

	cookie, err := h.cookies.Mint(sid)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, sessionResponse{
		State: domain.StateAuthenticated.String(),
		User:  ident,
	})
}

// Register handles POST /session/register — creates an account and logs the
// new user straight in. Field bounds are rejected here, before any network
// call and without touching the token store.
//
// @Summary      Register a new account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sid, err := service.NewSessionID()
	if err != nil {
		return err
	}

	ident, err := h.sessions.Register(c.Request().Context(), sid, req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	cookie, err := h.cookies.Mint(sid)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusCreated, sessionResponse{
		State: domain.StateAuthenticated.String(),
		User:  ident,
	})
}

// Logout handles POST /session/logout — clears the session record and drops
// the cookie. Logging out an anonymous caller succeeds trivially.
//
// @Summary      Log out
// @Tags         session
// @Success      204  "session cleared"
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context(), ctxSessionID(c)); err != nil {
		return err
	}
	c.SetCookie(h.cookies.Drop())
	return c.NoContent(http.StatusNoContent)
}
