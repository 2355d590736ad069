package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voyageai/recommender/api/internal/config"
	"github.com/voyageai/recommender/api/internal/handler"
	middlewarepkg "github.com/voyageai/recommender/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Recommend *handler.RecommendHandler
	Pages     *handler.PagesHandler
}

// Register wires all HTTP routes for the service.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// both search surfaces share one rate-limit bucket
	searchLimiter := middlewarepkg.SearchRateLimiter(cfg.RateLimitSearch)

	e.GET("/", handlers.Pages.Index)
	e.GET("/search", handlers.Pages.Search, searchLimiter)
	e.POST("/recommendations", handlers.Recommend.Recommend, searchLimiter)
}
