package middleware

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
)

const actorKey = "actor"

// ActorFrom returns the identity JWTAuth stored on c.  ok is false for
// unauthenticated requests.
func ActorFrom(c echo.Context) (booking.Actor, bool) {
    a, ok := c.Get(actorKey).(booking.Actor)
    return a, ok
}

// userKey identifies the caller for rate limiting; "anon" when no token
// was presented.
func userKey(c echo.Context) string {
    if a, ok := ActorFrom(c); ok && a.UserID != 0 {
        return strconv.FormatUint(a.UserID, 10)
    }
    return "anon"
}
