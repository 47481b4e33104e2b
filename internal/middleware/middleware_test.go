package middleware

import (
    "net/http"
    "net/http/httptest"
    "strconv"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
    "github.com/iliyamo/hotel-room-booking/internal/config"
    "github.com/iliyamo/hotel-room-booking/internal/utils"
)

const secret = "test-secret"

func bearer(t *testing.T, userID uint64, role string) string {
    t.Helper()
    tok, err := utils.NewAccessToken(secret, userID, role, time.Hour)
    require.NoError(t, err)
    return "Bearer " + tok.Token
}

func serve(e *echo.Echo, method, path, auth string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(method, path, nil)
    if auth != "" {
        req.Header.Set("Authorization", auth)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestJWTAuthAndRoles(t *testing.T) {
    e := echo.New()
    g := e.Group("/admin", JWTAuth(secret), RequireRole(booking.RoleAdmin))
    g.GET("/whoami", func(c echo.Context) error {
        a, ok := ActorFrom(c)
        require.True(t, ok)
        return c.String(http.StatusOK, strconv.FormatUint(a.UserID, 10)+":"+string(a.Role))
    })

    rec := serve(e, http.MethodGet, "/admin/whoami", "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    rec = serve(e, http.MethodGet, "/admin/whoami", "Bearer garbage")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)

    rec = serve(e, http.MethodGet, "/admin/whoami", bearer(t, 7, "CUSTOMER"))
    assert.Equal(t, http.StatusForbidden, rec.Code)

    rec = serve(e, http.MethodGet, "/admin/whoami", bearer(t, 7, "admin"))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "7:ADMIN", rec.Body.String())
}

func TestRequireRoleWithoutAuth(t *testing.T) {
    e := echo.New()
    e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireRole(booking.RoleAdmin))
    rec := serve(e, http.MethodGet, "/x", "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
    t.Helper()
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })
    return mr, rdb
}

func TestTokenBucketThrottles(t *testing.T) {
    _, rdb := newRedis(t)
    cfg := config.RateLimitConfig{
        Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Hour,
        TTL: 2 * time.Hour, KeyStrategy: "ip", Prefix: "rl",
    }
    e := echo.New()
    e.GET("/rooms", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, rdb, zerolog.Nop()))

    for i := 0; i < 2; i++ {
        rec := serve(e, http.MethodGet, "/rooms", "")
        require.Equal(t, http.StatusOK, rec.Code)
        assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
    }
    rec := serve(e, http.MethodGet, "/rooms", "")
    assert.Equal(t, http.StatusTooManyRequests, rec.Code)
    assert.NotEmpty(t, rec.Header().Get("Retry-After"))
    assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestTokenBucketFailsOpen(t *testing.T) {
    mr, rdb := newRedis(t)
    mr.Close()
    cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Hour, TTL: time.Hour, Prefix: "rl"}
    e := echo.New()
    e.GET("/rooms", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, rdb, zerolog.Nop()))

    for i := 0; i < 3; i++ {
        assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/rooms", "").Code)
    }
}

func TestRedisCacheServesHits(t *testing.T) {
    _, rdb := newRedis(t)
    cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute,
        KeyStrategy: "route_query", Prefix: "cache:rooms", MaxBodyBytes: 1 << 20}

    calls := 0
    e := echo.New()
    e.GET("/rooms", func(c echo.Context) error {
        calls++
        return c.JSON(http.StatusOK, echo.Map{"calls": calls})
    }, NewRedisCache(cfg, rdb, zerolog.Nop()))

    first := serve(e, http.MethodGet, "/rooms?page=1", "")
    require.Equal(t, http.StatusOK, first.Code)
    assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

    second := serve(e, http.MethodGet, "/rooms?page=1", "")
    require.Equal(t, http.StatusOK, second.Code)
    assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
    assert.Equal(t, first.Body.String(), second.Body.String())
    assert.Equal(t, echo.MIMEApplicationJSON, second.Header().Get(echo.HeaderContentType))

    other := serve(e, http.MethodGet, "/rooms?page=2", "")
    assert.Equal(t, "MISS", other.Header().Get("X-Cache"))
    assert.Equal(t, 2, calls)
}

func TestRedisCacheSkipsErrorsAndLargeBodies(t *testing.T) {
    _, rdb := newRedis(t)
    cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute,
        Prefix: "cache:rooms", MaxBodyBytes: 8}

    e := echo.New()
    mw := NewRedisCache(cfg, rdb, zerolog.Nop())
    e.GET("/missing", func(c echo.Context) error { return c.JSON(http.StatusNotFound, echo.Map{"error": "x"}) }, mw)
    e.GET("/big", func(c echo.Context) error { return c.String(http.StatusOK, "0123456789abcdef") }, mw)

    serve(e, http.MethodGet, "/missing", "")
    assert.Equal(t, "MISS", serve(e, http.MethodGet, "/missing", "").Header().Get("X-Cache"))

    serve(e, http.MethodGet, "/big", "")
    rec := serve(e, http.MethodGet, "/big", "")
    assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
    assert.Equal(t, "0123456789abcdef", rec.Body.String())
}

func TestEncodeDecodePayload(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
    require.NoError(t, err)
    status, got, body, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, hdr, got)
    assert.Equal(t, `{"a":1}`, string(body))

    _, _, _, ok = decodePayload([]byte{1, 2})
    assert.False(t, ok)
}
