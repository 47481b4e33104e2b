package router

import (
    "context"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
    "github.com/iliyamo/hotel-room-booking/internal/handler"
    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/reporting"
    "github.com/iliyamo/hotel-room-booking/internal/utils"
)

const secret = "router-secret"

// stubBookings implements only what the routes below reach; any other
// call panics on the nil embedded interface.
type stubBookings struct {
    handler.BookingService
}

func (stubBookings) ListRooms(context.Context, model.RoomFilter) ([]model.Room, int, error) {
    return []model.Room{}, 0, nil
}

func (stubBookings) ListMyBookings(context.Context, booking.Actor) ([]model.Reservation, error) {
    return nil, nil
}

type stubReports struct{}

func (stubReports) GetRevenueReport(context.Context, string, string) (*reporting.Report, error) {
    return &reporting.Report{Granularity: reporting.Month}, nil
}

func newServer() http.Handler {
    return New(Deps{
        Bookings:    stubBookings{},
        Reports:     stubReports{},
        JWTSecret:   secret,
        ServiceName: "test",
        Gatherer:    prometheus.NewRegistry(),
        Log:         zerolog.Nop(),
    })
}

func do(t *testing.T, h http.Handler, method, path, role string) *httptest.ResponseRecorder {
    t.Helper()
    req := httptest.NewRequest(method, path, nil)
    if role != "" {
        tok, err := utils.NewAccessToken(secret, 11, role, time.Minute)
        require.NoError(t, err)
        req.Header.Set("Authorization", "Bearer "+tok.Token)
    }
    rec := httptest.NewRecorder()
    h.ServeHTTP(rec, req)
    return rec
}

func TestOperationalRoutes(t *testing.T) {
    srv := newServer()
    rec := do(t, srv, http.MethodGet, "/healthz", "")
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

    assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/metrics", "").Code)
    assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/readyz", "").Code)
}

func TestRouteAccess(t *testing.T) {
    srv := newServer()
    cases := []struct {
        method, path, role string
        want               int
    }{
        {http.MethodGet, "/v1/rooms", "", http.StatusOK},
        {http.MethodGet, "/v1/my-bookings", "", http.StatusUnauthorized},
        {http.MethodGet, "/v1/my-bookings", "CUSTOMER", http.StatusOK},
        {http.MethodGet, "/v1/my-bookings", "PROVIDER", http.StatusForbidden},
        {http.MethodPost, "/v1/payments/confirm", "CUSTOMER", http.StatusForbidden},
        {http.MethodGet, "/v1/admin/bookings", "CUSTOMER", http.StatusForbidden},
        {http.MethodGet, "/v1/admin/reports/revenue", "CUSTOMER", http.StatusForbidden},
        {http.MethodGet, "/v1/admin/reports/revenue", "ADMIN", http.StatusOK},
    }
    for _, tc := range cases {
        t.Run(tc.method+" "+tc.path+" "+strings.ToLower(tc.role), func(t *testing.T) {
            assert.Equal(t, tc.want, do(t, srv, tc.method, tc.path, tc.role).Code)
        })
    }
}
