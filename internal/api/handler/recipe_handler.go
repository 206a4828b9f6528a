package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/recipehub/web-gateway/internal/core/ports"
)

// RecipeHandler relays recipe CRUD traffic to the backend. The web tier adds
// nothing here beyond credential attachment and uniform failure handling;
// payloads pass through untouched.
type RecipeHandler struct {
	backend ports.Backend
}

func NewRecipeHandler(backend ports.Backend) *RecipeHandler {
	return &RecipeHandler{backend: backend}
}

// List handles GET /api/recipes — public browse/search, query passed through.
//
// @Summary      List recipes
// @Tags         recipes
// @Produce      json
// @Param        search    query  string  false  "Free-text search"
// @Param        category  query  string  false  "Category filter"
// @Param        page      query  int     false  "Page number"
// @Success      200  {object}  map[string]any
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	return proxy(c, h.backend, http.MethodGet, "/api/recipes")
}

// Get handles GET /api/recipes/:id.
//
// @Summary      Get one recipe
// @Tags         recipes
// @Produce      json
// @Param        id  path  string  true  "Recipe id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  errorResponse
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	return proxy(c, h.backend, http.MethodGet, "/api/recipes/"+url.PathEscape(c.Param("id")))
}

// Categories handles GET /api/recipes/categories.
//
// @Summary      List recipe categories
// @Tags         recipes
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/recipes/categories [get]
func (h *RecipeHandler) Categories(c echo.Context) error {
	return proxy(c, h.backend, http.MethodGet, "/api/recipes/categories")
}

// ByUser handles GET /api/recipes/user/:id — public listing of one author's
// recipes.
func (h *RecipeHandler) ByUser(c echo.Context) error {
	return proxy(c, h.backend, http.MethodGet, "/api/recipes/user/"+url.PathEscape(c.Param("id")))
}

// Mine handles GET /api/recipes/my — the caller's own recipes.
//
// @Summary      List my recipes
// @Tags         recipes
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  errorResponse
// @Router       /api/recipes/my [get]
func (h *RecipeHandler) Mine(c echo.Context) error {
	return proxy(c, h.backend, http.MethodGet, "/api/recipes/my/recipes")
}

// Create handles POST /api/recipes.
//
// @Summary      Create a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]any
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	return proxy(c, h.backend, http.MethodPost, "/api/recipes")
}

// Update handles PUT /api/recipes/:id.
func (h *RecipeHandler) Update(c echo.Context) error {
	return proxy(c, h.backend, http.MethodPut, "/api/recipes/"+url.PathEscape(c.Param("id")))
}

// Delete handles DELETE /api/recipes/:id.
func (h *RecipeHandler) Delete(c echo.Context) error {
	return proxy(c, h.backend, http.MethodDelete, "/api/recipes/"+url.PathEscape(c.Param("id")))
}
