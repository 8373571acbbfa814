package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/99minutos/carrier-rating/internal/api/handler"
	"github.com/99minutos/carrier-rating/internal/api/middleware"
	"github.com/99minutos/carrier-rating/internal/core/ports"

	_ "github.com/99minutos/carrier-rating/docs"
)

// Dependencies are the collaborators the HTTP layer needs.
type Dependencies struct {
	Service ports.RatingService
	// Cache enables the admin cache invalidation route when set.
	Cache        handler.CacheInvalidator
	Checks       []handler.DependencyCheck
	JWTSecret    string
	RateLimitRPS float64
	Logger       zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics. Defaults to the
	// global Prometheus registry, where the rating metrics live.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "rating",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)                                  // liveness  – is the process alive?
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(deps.Checks...).Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Rating routes ---
	rates := handler.NewRateHandler(deps.Service)

	v1 := e.Group("/v1",
		middleware.Auth(deps.JWTSecret),
		middleware.RBAC(middleware.RoleAdmin, middleware.RoleClient),
		middleware.RateLimit(deps.RateLimitRPS),
	)
	v1.POST("/rates/shop", rates.Shop)
	v1.POST("/rates/:carrier_id", rates.Calculate)

	if deps.Cache != nil {
		v1.DELETE("/carriers/:carrier_id/cache", handler.NewCacheHandler(deps.Cache).Invalidate, middleware.RBAC(middleware.RoleAdmin))
	}

	return e
}

// requestLogger emits one structured access log line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
