package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
)

// RequireRole returns a middleware that lets the request through only
// when the authenticated actor has one of roles.  It must run after
// JWTAuth; requests without an actor are rejected with 401, wrong roles
// with 403.
func RequireRole(roles ...booking.Role) echo.MiddlewareFunc {
    allowed := make(map[booking.Role]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            actor, ok := ActorFrom(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "authentication required"})
            }
            if !allowed[actor.Role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "message": "role " + string(actor.Role) + " may not call this endpoint"})
            }
            return next(c)
        }
    }
}
