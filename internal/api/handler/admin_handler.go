package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/recipehub/web-gateway/internal/core/ports"
)

// AdminHandler relays the moderation endpoints and serves the session audit
// feed. Every route behind it is mounted under the admin guard.
type AdminHandler struct {
	backend ports.Backend
	audit   ports.AuditRepository
}

func NewAdminHandler(backend ports.Backend, audit ports.AuditRepository) *AdminHandler {
	return &AdminHandler{backend: backend, audit: audit}
}

// Users handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	return proxy(c, h.backend, http.MethodGet, "/api/admin/users")
}

// UserByID handles GET /api/admin/users/:id.
func (h *AdminHandler) UserByID(c echo.Context) error {
	return proxy(c, h.backend, http.MethodGet, "/api/admin/users/"+url.PathEscape(c.Param("id")))
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	return proxy(c, h.backend, http.MethodDelete, "/api/admin/users/"+url.PathEscape(c.Param("id")))
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user moderator admin"`
}

// UpdateUserRole handles PATCH /api/admin/users/:id/role. The role value is
// checked against the known set before the call leaves the gateway.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "User id"
// @Param        body  body  updateRoleRequest  true  "New role"
// @Success      200   {object}  map[string]any
// @Failure      422   {object}  errorResponse
// @Router       /api/admin/users/{id}/role [patch]
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	path := "/api/admin/users/" + url.PathEscape(c.Param("id")) + "/role"
	return proxyJSON(c, h.backend, http.MethodPatch, path, req)
}

// DeleteRecipe handles DELETE /api/admin/recipes/:id.
func (h *AdminHandler) DeleteRecipe(c echo.Context) error {
	return proxy(c, h.backend, http.MethodDelete, "/api/admin/recipes/"+url.PathEscape(c.Param("id")))
}

// ToggleFeatured handles PATCH /api/admin/recipes/:id/feature.
func (h *AdminHandler) ToggleFeatured(c echo.Context) error {
	return proxy(c, h.backend, http.MethodPatch, "/api/admin/recipes/"+url.PathEscape(c.Param("id"))+"/feature")
}

// Stats handles GET /api/admin/stats — the dashboard's aggregate numbers.
//
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	return proxy(c, h.backend, http.MethodGet, "/api/admin/stats")
}

// AuthEvents handles GET /api/admin/auth-events — the most recent entries of
// the session audit trail, newest first.
//
// @Summary      Recent session audit events
// @Tags         admin
// @Produce      json
// @Success      200  {array}  authEventResponse
// @Router       /api/admin/auth-events [get]
func (h *AdminHandler) AuthEvents(c echo.Context) error {
	events, err := h.audit.Recent(c.Request().Context(), 50)
	if err != nil {
		return err
	}

	out := make([]authEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, authEventResponse{
			Kind:     string(ev.Kind),
			Username: ev.Username,
			At:       ev.At.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}
