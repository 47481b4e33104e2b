package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
    "github.com/iliyamo/hotel-room-booking/internal/handler"
    "github.com/iliyamo/hotel-room-booking/internal/middleware"
)

// RegisterCustomer registers the booking endpoints.  All routes require a
// valid JWT with the CUSTOMER or ADMIN role.  Writes draw from the
// smaller booking bucket of the rate limiter.
func RegisterCustomer(e *echo.Echo, h *handler.BookingHandler, d Deps) {
    auth := []echo.MiddlewareFunc{
        middleware.JWTAuth(d.JWTSecret),
        middleware.RequireRole(booking.RoleCustomer, booking.RoleAdmin),
    }
    read := append(auth[:len(auth):len(auth)], middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log))
    write := append(auth[:len(auth):len(auth)], middleware.NewTokenBucket(d.RateLimit.ForBookings(), d.Redis, d.Log))

    e.POST("/v1/bookings", h.Create, write...)
    e.GET("/v1/bookings/:id", h.Get, read...)
    e.DELETE("/v1/bookings/:id", h.Cancel, write...)
    e.GET("/v1/my-bookings", h.Mine, read...)
}

// RegisterPayments registers the payment provider callback.
func RegisterPayments(e *echo.Echo, h *handler.PaymentHandler, d Deps) {
    g := e.Group("/v1/payments",
        middleware.JWTAuth(d.JWTSecret),
        middleware.RequireRole(booking.RoleProvider, booking.RoleAdmin),
        middleware.NewTokenBucket(d.RateLimit.ForBookings(), d.Redis, d.Log),
    )
    g.POST("/confirm", h.Confirm)
}
