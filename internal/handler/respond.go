package handler

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
    "github.com/iliyamo/hotel-room-booking/internal/logger"
    "github.com/iliyamo/hotel-room-booking/internal/middleware"
    "github.com/iliyamo/hotel-room-booking/internal/reporting"
)

// retryAfterSeconds is advertised to clients that hit a busy room.
const retryAfterSeconds = 1

// errorBody is the single shape of every error response.
type errorBody struct {
    Error     string                 `json:"error"`
    Message   string                 `json:"message"`
    Details   map[string]interface{} `json:"details,omitempty"`
    Retryable bool                   `json:"retryable,omitempty"`
}

func badRequest(c echo.Context, msg string) error {
    return c.JSON(http.StatusBadRequest, errorBody{Error: "bad_request", Message: msg})
}

// actorFrom returns the authenticated caller or writes a 401.
func actorFrom(c echo.Context) (booking.Actor, bool, error) {
    a, ok := middleware.ActorFrom(c)
    if !ok {
        return a, false, c.JSON(http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: "authentication required"})
    }
    return a, true, nil
}

func parseID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

// parseDate reads a YYYY-MM-DD calendar date.
func parseDate(s string) (time.Time, error) {
    return time.ParseInLocation(time.DateOnly, s, time.UTC)
}

// respondError maps domain errors onto status codes.  Unknown errors are
// logged and reported as 500 without leaking their text.
func respondError(c echo.Context, err error) error {
    var (
        status  = http.StatusInternalServerError
        code    = "internal_error"
        details map[string]interface{}
    )
    var (
        rangeErr    *booking.InvalidRangeError
        unavailErr  *booking.RoomUnavailableError
        busyErr     *booking.RoomBusyError
        amountErr   *booking.AmountMismatchError
        capacityErr *booking.CapacityExceededError
        transErr    *booking.InvalidTransitionError
    )

    switch {
    case errors.As(err, &rangeErr):
        status, code = http.StatusBadRequest, "invalid_range"
        details = map[string]interface{}{
            "check_in":  rangeErr.CheckIn.Format(time.DateOnly),
            "check_out": rangeErr.CheckOut.Format(time.DateOnly),
        }
    case errors.Is(err, booking.ErrInvalidPrice):
        status, code = http.StatusBadRequest, "invalid_price"
    case errors.Is(err, booking.ErrInvalidStatus):
        status, code = http.StatusBadRequest, "invalid_status"
    case errors.Is(err, booking.ErrInvalidGuests):
        status, code = http.StatusBadRequest, "invalid_guests"
    case errors.As(err, &capacityErr):
        status, code = http.StatusBadRequest, "capacity_exceeded"
        details = map[string]interface{}{"room_id": capacityErr.RoomID, "capacity": capacityErr.Capacity, "guests": capacityErr.Guests}
    case errors.Is(err, reporting.ErrInvalidGranularity):
        status, code = http.StatusBadRequest, "invalid_granularity"
    case errors.Is(err, reporting.ErrInvalidPeriod):
        status, code = http.StatusBadRequest, "invalid_period"
    case errors.Is(err, booking.ErrForbidden):
        status, code = http.StatusForbidden, "forbidden"
    case errors.Is(err, booking.ErrRoomNotFound):
        status, code = http.StatusNotFound, "room_not_found"
    case errors.Is(err, booking.ErrReservationNotFound):
        status, code = http.StatusNotFound, "reservation_not_found"
    case errors.Is(err, booking.ErrRoomInactive):
        status, code = http.StatusConflict, "room_inactive"
    case errors.As(err, &unavailErr):
        status, code = http.StatusConflict, "room_unavailable"
        details = map[string]interface{}{
            "room_id":   unavailErr.RoomID,
            "check_in":  unavailErr.CheckIn.Format(time.DateOnly),
            "check_out": unavailErr.CheckOut.Format(time.DateOnly),
        }
    case errors.Is(err, booking.ErrReservationCancelled):
        status, code = http.StatusConflict, "reservation_cancelled"
    case errors.As(err, &amountErr):
        status, code = http.StatusConflict, "amount_mismatch"
        details = map[string]interface{}{
            "reservation_id": amountErr.ReservationID,
            "expected":       amountErr.Expected.String(),
            "received":       amountErr.Got.String(),
        }
    case errors.As(err, &transErr):
        status, code = http.StatusConflict, "invalid_transition"
        details = map[string]interface{}{"from": transErr.From, "to": transErr.To}
    case errors.As(err, &busyErr):
        c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
        body := errorBody{Error: "room_busy", Message: err.Error(), Retryable: true}
        if busyErr.RoomID != 0 {
            body.Details = map[string]interface{}{"room_id": busyErr.RoomID}
        }
        return c.JSON(http.StatusServiceUnavailable, body)
    }

    if status == http.StatusInternalServerError {
        logger.WithTrace(c.Request().Context()).Error().Err(err).Str("route", c.Path()).Msg("request failed")
        return c.JSON(status, errorBody{Error: code, Message: "internal server error"})
    }
    return c.JSON(status, errorBody{Error: code, Message: err.Error(), Details: details})
}
