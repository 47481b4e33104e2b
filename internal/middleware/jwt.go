package middleware // reusable HTTP middleware: authentication, roles, rate limits, caching, observability

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
    "github.com/iliyamo/hotel-room-booking/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and stores the caller's identity in the request context: the
// booking.Actor under "actor", plus "user_id" (uint64) and "role" (string)
// for middleware that only needs one of them.  secret must match the one
// used when issuing tokens.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "missing bearer token"})
            }
            claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "message": "invalid token"})
            }
            uid, _ := claims.UserID() // validated by ParseAccessToken
            actor := booking.Actor{UserID: uid, Role: booking.Role(strings.ToUpper(claims.Role))}
            c.Set(actorKey, actor)
            c.Set("user_id", uid)
            c.Set("role", string(actor.Role))
            return next(c)
        }
    }
}
