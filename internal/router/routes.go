package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-outreach/internal/auth"
	"github.com/octobees/lead-outreach/internal/config"
	"github.com/octobees/lead-outreach/internal/handler"
	middlewarepkg "github.com/octobees/lead-outreach/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth   *handler.AuthHandler
	Enrich *handler.EnrichHandler
	Email  *handler.EmailHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/login", handlers.Auth.Login)

	// Provider-called; the delivery platform cannot carry our bearer tokens.
	e.POST("/api/email/webhook", handlers.Email.Webhook)

	secured := e.Group("/api")
	secured.Use(middlewarepkg.JWT(jwtManager))

	enrichLimiter := middlewarepkg.EnrichRateLimiter(cfg.RateLimitEnrich)
	secured.POST("/enrich/batch/process", handlers.Enrich.ProcessBatch, middlewarepkg.RequireRole("admin"), enrichLimiter)
	secured.POST("/enrich/:businessId", handlers.Enrich.Enrich, enrichLimiter)

	secured.POST("/email/send", handlers.Email.Send)
	secured.POST("/email/batch/send", handlers.Email.SendBatch)
	secured.POST("/email/messages", handlers.Email.CreateMessage)
	secured.GET("/email/stats", handlers.Email.Stats)
	secured.GET("/email/status", handlers.Email.Status)
}
