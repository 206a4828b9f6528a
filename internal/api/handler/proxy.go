package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipehub/web-gateway/internal/core/ports"
)

// proxy forwards the current request to the backend path and relays the
// backend's status and JSON body untouched. Authorization rejections surface
// as errors and are mapped by the central error handler; every other backend
// status passes through as-is.
func proxy(c echo.Context, backend ports.Backend, method, path string) error {
	var body io.Reader
	if method != http.MethodGet && method != http.MethodDelete {
		body = c.Request().Body
	}

	status, raw, err := backend.Do(c.Request().Context(), ctxSessionID(c), method, path, c.QueryParams(), body)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return c.NoContent(status)
	}
	return c.JSONBlob(status, raw)
}

// proxyJSON is proxy for handlers that validated and re-marshal the payload
// before forwarding.
func proxyJSON(c echo.Context, backend ports.Backend, method, path string, payload any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	status, raw, err := backend.Do(c.Request().Context(), ctxSessionID(c), method, path, nil, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return c.NoContent(status)
	}
	return c.JSONBlob(status, raw)
}
