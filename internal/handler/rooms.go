package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/repository"
)

// RoomHandler serves the public room catalog: listing, details,
// availability and price quotes.  None of its endpoints require
// authentication.
type RoomHandler struct {
    svc BookingService
}

func NewRoomHandler(svc BookingService) *RoomHandler {
    if svc == nil {
        panic("nil booking service passed to NewRoomHandler")
    }
    return &RoomHandler{svc: svc}
}

// List handles GET /v1/rooms.  Supported query parameters: q, type,
// min_rate, max_rate, sort and page.
func (h *RoomHandler) List(c echo.Context) error {
    f := model.RoomFilter{
        Query: strings.TrimSpace(c.QueryParam("q")),
        Type:  strings.TrimSpace(c.QueryParam("type")),
        Sort:  c.QueryParam("sort"),
        Page:  1,
    }
    if p := c.QueryParam("page"); p != "" {
        n, err := strconv.Atoi(p)
        if err != nil || n < 1 {
            return badRequest(c, "page must be a positive integer")
        }
        f.Page = n
    }
    for _, bound := range []struct {
        name string
        dst  **decimal.Decimal
    }{{"min_rate", &f.MinRate}, {"max_rate", &f.MaxRate}} {
        raw := c.QueryParam(bound.name)
        if raw == "" {
            continue
        }
        d, err := decimal.NewFromString(raw)
        if err != nil || d.IsNegative() {
            return badRequest(c, bound.name+" must be a non-negative number")
        }
        *bound.dst = &d
    }

    rooms, total, err := h.svc.ListRooms(c.Request().Context(), f)
    if err != nil {
        return respondError(c, err)
    }
    if rooms == nil {
        rooms = []model.Room{}
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items":     rooms,
        "total":     total,
        "page":      f.Page,
        "page_size": repository.RoomPageSize,
    })
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid room id")
    }
    room, err := h.svc.GetRoom(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, room)
}

// stayQuery reads the room id and the check_in/check_out query dates.
func stayQuery(c echo.Context) (id uint64, st stay, ok bool, err error) {
    id, ok = parseID(c, "id")
    if !ok {
        return 0, st, false, badRequest(c, "invalid room id")
    }
    st, err = parseStay(c.QueryParam("check_in"), c.QueryParam("check_out"))
    if err != nil {
        return 0, st, false, badRequest(c, err.Error())
    }
    return id, st, true, nil
}

// Availability handles GET /v1/rooms/:id/availability.
func (h *RoomHandler) Availability(c echo.Context) error {
    id, st, ok, err := stayQuery(c)
    if !ok {
        return err
    }
    free, err := h.svc.GetAvailability(c.Request().Context(), id, st.checkIn, st.checkOut)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "room_id":   id,
        "check_in":  st.checkIn.Format("2006-01-02"),
        "check_out": st.checkOut.Format("2006-01-02"),
        "available": free,
    })
}

// Quote handles GET /v1/rooms/:id/quote.  A discount code that cannot be
// applied is reported in the response rather than failing the request.
func (h *RoomHandler) Quote(c echo.Context) error {
    id, st, ok, err := stayQuery(c)
    if !ok {
        return err
    }
    q, err := h.svc.QuoteBooking(c.Request().Context(), id, st.checkIn, st.checkOut, c.QueryParam("code"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, q)
}
