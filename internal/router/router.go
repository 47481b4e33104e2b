// Package router registers the HTTP routes of the booking API.
package router

import (
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promhttp"
    "github.com/redis/go-redis/v9"
    "github.com/rs/zerolog"

    "github.com/iliyamo/hotel-room-booking/internal/config"
    "github.com/iliyamo/hotel-room-booking/internal/handler"
    "github.com/iliyamo/hotel-room-booking/internal/middleware"
)

// Deps carries what the routes need.  Redis may be nil, which disables
// rate limiting and response caching.  DB may be nil, in which case
// /readyz is not registered.
type Deps struct {
    Bookings    handler.BookingService
    Reports     handler.ReportService
    DB          handler.Pinger
    Redis       *redis.Client
    RateLimit   config.RateLimitConfig
    Cache       config.CacheConfig
    JWTSecret   string
    ServiceName string
    Gatherer    prometheus.Gatherer
    Log         zerolog.Logger
}

// New builds the Echo instance with the global middleware chain and
// every route registered.
func New(d Deps) *echo.Echo {
    e := echo.New()
    e.HideBanner = true
    e.HidePort = true

    e.Use(echomw.Recover())
    e.Use(echomw.RequestID())
    e.Use(middleware.Tracing(d.ServiceName))
    e.Use(middleware.RequestLogger(d.Log))

    RegisterRoutes(e, d)
    RegisterPublic(e, handler.NewRoomHandler(d.Bookings), d)
    RegisterCustomer(e, handler.NewBookingHandler(d.Bookings), d)
    RegisterPayments(e, handler.NewPaymentHandler(d.Bookings), d)
    RegisterAdmin(e, handler.NewAdminHandler(d.Bookings, d.Reports), d)
    return e
}

// RegisterRoutes registers the operational endpoints: liveness,
// readiness and Prometheus metrics.
func RegisterRoutes(e *echo.Echo, d Deps) {
    e.GET("/healthz", handler.Health)
    if d.DB != nil {
        e.GET("/readyz", handler.Ready(d.DB))
    }
    g := d.Gatherer
    if g == nil {
        g = prometheus.DefaultGatherer
    }
    e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
}

// RegisterPublic registers the unauthenticated room catalog.  Listing
// and details go through the response cache; availability and quotes
// change with every booking and are never cached.
func RegisterPublic(e *echo.Echo, h *handler.RoomHandler, d Deps) {
    limit := middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log)
    cache := middleware.NewRedisCache(d.Cache, d.Redis, d.Log)

    g := e.Group("/v1/rooms", limit)
    g.GET("", h.List, cache)
    g.GET("/:id", h.Get, cache)
    g.GET("/:id/availability", h.Availability)
    g.GET("/:id/quote", h.Quote)
}
