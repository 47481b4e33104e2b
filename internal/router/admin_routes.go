package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
    "github.com/iliyamo/hotel-room-booking/internal/handler"
    "github.com/iliyamo/hotel-room-booking/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, d Deps) {
    g := e.Group("/v1/admin",
        middleware.JWTAuth(d.JWTSecret),
        middleware.RequireRole(booking.RoleAdmin),
    )

    // ---- Reservations ----
    g.GET("/bookings", h.ListBookings)
    g.PATCH("/bookings/:id/status", h.SetStatus)

    // ---- Reports ----
    g.GET("/reports/revenue", h.RevenueReport)

    // ---- Pricing ----
    g.POST("/prices/parse", h.ParsePrice)
}
