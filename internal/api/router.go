package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recipehub/web-gateway/internal/api/handler"
	"github.com/recipehub/web-gateway/internal/api/middleware"
	"github.com/recipehub/web-gateway/internal/core/ports"
	"github.com/recipehub/web-gateway/internal/core/service"
	"github.com/recipehub/web-gateway/internal/gateway"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Session resolution runs globally, so every guard downstream decides on a
// fully resolved session.
func NewRouter(
	log zerolog.Logger,
	backend *gateway.Client,
	sessions ports.SessionService,
	codec *service.CookieCodec,
	auditRepo ports.AuditRepository,
	rdb *redis.Client,
	db *mongo.Database,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, codec)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("recipehub_web"))
	e.Use(middleware.ResolveSession(codec, sessions))

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(sessions, codec)
	recipeHandler := handler.NewRecipeHandler(backend)
	adminHandler := handler.NewAdminHandler(backend, auditRepo)
	aiHandler := handler.NewAIHandler(backend)

	// --- Session lifecycle ---
	e.GET("/session", sessionHandler.Current)
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/register", sessionHandler.Register)
	e.POST("/session/logout", sessionHandler.Logout)

	// --- Recipes (public browse, guarded writes) ---
	recipes := e.Group("/api/recipes")
	recipes.GET("", recipeHandler.List)
	recipes.GET("/categories", recipeHandler.Categories)
	recipes.GET("/user/:id", recipeHandler.ByUser)
	recipes.GET("/my", recipeHandler.Mine, middleware.RequireAuth)
	recipes.POST("", recipeHandler.Create, middleware.RequireAuth)
	recipes.PUT("/:id", recipeHandler.Update, middleware.RequireAuth)
	recipes.DELETE("/:id", recipeHandler.Delete, middleware.RequireAuth)
	recipes.GET("/:id", recipeHandler.Get)

	// --- Admin (elevated role required) ---
	admin := e.Group("/api/admin", middleware.RequireAdmin)
	admin.GET("/users", adminHandler.Users)
	admin.GET("/users/:id", adminHandler.UserByID)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.PATCH("/users/:id/role", adminHandler.UpdateUserRole)
	admin.DELETE("/recipes/:id", adminHandler.DeleteRecipe)
	admin.PATCH("/recipes/:id/feature", adminHandler.ToggleFeatured)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/auth-events", adminHandler.AuthEvents)

	// --- AI assistant (any authenticated identity) ---
	ai := e.Group("/api/ai", middleware.RequireAuth)
	ai.POST("/recipe-suggestions", aiHandler.Suggestions)
	ai.POST("/chat", aiHandler.Chat)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(rdb, db, backend)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
