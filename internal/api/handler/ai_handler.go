package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recipehub/web-gateway/internal/core/ports"
)

// AIHandler relays the AI suggestion endpoints. Requests are shape-checked
// before forwarding so the (metered) AI backend never sees empty prompts.
type AIHandler struct {
	backend ports.Backend
}

func NewAIHandler(backend ports.Backend) *AIHandler {
	return &AIHandler{backend: backend}
}

type suggestionsRequest struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
}

type chatRequest struct {
	Message             string            `json:"message" validate:"required"`
	ConversationHistory []json.RawMessage `json:"conversationHistory"`
}

// Suggestions handles POST /api/ai/recipe-suggestions.
//
// @Summary      Suggest recipes from a list of ingredients
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body      suggestionsRequest  true  "Available ingredients"
// @Success      200   {object}  map[string]any
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/ai/recipe-suggestions [post]
func (h *AIHandler) Suggestions(c echo.Context) error {
	var req suggestionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	return proxyJSON(c, h.backend, http.MethodPost, "/api/ai/recipe-suggestions", req)
}

// Chat handles POST /api/ai/chat.
//
// @Summary      Chat with the recipe assistant
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body      chatRequest  true  "Message and prior turns"
// @Success      200   {object}  map[string]any
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/ai/chat [post]
func (h *AIHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	return proxyJSON(c, h.backend, http.MethodPost, "/api/ai/chat", req)
}
