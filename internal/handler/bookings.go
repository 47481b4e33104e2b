package handler

import (
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
    "github.com/iliyamo/hotel-room-booking/internal/model"
)

type stay struct {
    checkIn, checkOut time.Time
}

// parseStay reads both calendar dates.  Ordering is checked by the
// booking service so that every caller gets the same error.
func parseStay(checkIn, checkOut string) (stay, error) {
    if checkIn == "" || checkOut == "" {
        return stay{}, fmt.Errorf("check_in and check_out are required")
    }
    ci, err := parseDate(checkIn)
    if err != nil {
        return stay{}, fmt.Errorf("check_in must be YYYY-MM-DD")
    }
    co, err := parseDate(checkOut)
    if err != nil {
        return stay{}, fmt.Errorf("check_out must be YYYY-MM-DD")
    }
    return stay{checkIn: ci, checkOut: co}, nil
}

// BookingHandler serves the customer booking endpoints.  JWT
// authentication and role checks run in middleware before it.
type BookingHandler struct {
    svc BookingService
}

func NewBookingHandler(svc BookingService) *BookingHandler {
    if svc == nil {
        panic("nil booking service passed to NewBookingHandler")
    }
    return &BookingHandler{svc: svc}
}

type createBookingRequest struct {
    RoomID       uint64 `json:"room_id"`
    CheckIn      string `json:"check_in"`
    CheckOut     string `json:"check_out"`
    Guests       uint32 `json:"guests"`
    DiscountCode string `json:"discount_code"`
}

// Create handles POST /v1/bookings.  On success the new reservation is
// returned with 201 in pending state.
func (h *BookingHandler) Create(c echo.Context) error {
    actor, ok, err := actorFrom(c)
    if !ok {
        return err
    }
    var body createBookingRequest
    if err := c.Bind(&body); err != nil {
        return badRequest(c, "invalid request body")
    }
    if body.RoomID == 0 {
        return badRequest(c, "room_id is required")
    }
    st, err := parseStay(body.CheckIn, body.CheckOut)
    if err != nil {
        return badRequest(c, err.Error())
    }
    res, err := h.svc.CreateBooking(c.Request().Context(), actor, booking.CreateRequest{
        RoomID:       body.RoomID,
        CheckIn:      st.checkIn,
        CheckOut:     st.checkOut,
        Guests:       body.Guests,
        DiscountCode: strings.TrimSpace(body.DiscountCode),
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, res)
}

// Mine handles GET /v1/my-bookings.
func (h *BookingHandler) Mine(c echo.Context) error {
    actor, ok, err := actorFrom(c)
    if !ok {
        return err
    }
    list, err := h.svc.ListMyBookings(c.Request().Context(), actor)
    if err != nil {
        return respondError(c, err)
    }
    if list == nil {
        list = []model.Reservation{}
    }
    return c.JSON(http.StatusOK, echo.Map{"items": list})
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
    actor, ok, err := actorFrom(c)
    if !ok {
        return err
    }
    id, valid := parseID(c, "id")
    if !valid {
        return badRequest(c, "invalid reservation id")
    }
    res, err := h.svc.GetBooking(c.Request().Context(), actor, id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}

// Cancel handles DELETE /v1/bookings/:id.  The nights are released
// immediately.
func (h *BookingHandler) Cancel(c echo.Context) error {
    actor, ok, err := actorFrom(c)
    if !ok {
        return err
    }
    id, valid := parseID(c, "id")
    if !valid {
        return badRequest(c, "invalid reservation id")
    }
    res, err := h.svc.CancelBooking(c.Request().Context(), actor, id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}
