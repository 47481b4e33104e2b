package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/pricing"
    "github.com/iliyamo/hotel-room-booking/internal/repository"
)

// AdminHandler serves back-office endpoints.  Every route is restricted
// to the ADMIN role by middleware.
type AdminHandler struct {
    bookings BookingService
    reports  ReportService
}

func NewAdminHandler(bookings BookingService, reports ReportService) *AdminHandler {
    if bookings == nil || reports == nil {
        panic("nil service passed to NewAdminHandler")
    }
    return &AdminHandler{bookings: bookings, reports: reports}
}

// ListBookings handles GET /v1/admin/bookings.  Optional filters:
// room_id, status and page.  Results are newest first.
func (h *AdminHandler) ListBookings(c echo.Context) error {
    actor, ok, err := actorFrom(c)
    if !ok {
        return err
    }
    f := model.ReservationFilter{Page: 1}
    if raw := c.QueryParam("room_id"); raw != "" {
        id, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || id == 0 {
            return badRequest(c, "room_id must be a positive integer")
        }
        f.RoomID = id
    }
    if raw := c.QueryParam("status"); raw != "" {
        st, known := model.ParseStatus(raw)
        if !known {
            return badRequest(c, "unknown status "+strconv.Quote(raw))
        }
        f.Status = st
    }
    if raw := c.QueryParam("page"); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil || n < 1 {
            return badRequest(c, "page must be a positive integer")
        }
        f.Page = n
    }

    items, total, err := h.bookings.ListBookings(c.Request().Context(), actor, f)
    if err != nil {
        return respondError(c, err)
    }
    if items == nil {
        items = []model.Reservation{}
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items":     items,
        "total":     total,
        "page":      f.Page,
        "page_size": repository.ReservationPageSize,
    })
}

type setStatusRequest struct {
    Status string `json:"status"`
}

// SetStatus handles PATCH /v1/admin/bookings/:id/status.
func (h *AdminHandler) SetStatus(c echo.Context) error {
    actor, ok, err := actorFrom(c)
    if !ok {
        return err
    }
    id, valid := parseID(c, "id")
    if !valid {
        return badRequest(c, "invalid reservation id")
    }
    var body setStatusRequest
    if err := c.Bind(&body); err != nil {
        return badRequest(c, "invalid request body")
    }
    if body.Status == "" {
        return badRequest(c, "status is required")
    }
    res, err := h.bookings.SetBookingStatus(c.Request().Context(), actor, id, body.Status)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}

// RevenueReport handles GET /v1/admin/reports/revenue.
func (h *AdminHandler) RevenueReport(c echo.Context) error {
    rep, err := h.reports.GetRevenueReport(c.Request().Context(), c.QueryParam("granularity"), c.QueryParam("period"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, rep)
}

type parsePriceRequest struct {
    Raw string `json:"raw"`
}

// ParsePrice handles POST /v1/admin/prices/parse: it normalizes a
// free-text amount such as "250.000" or "1.234,56".
func (h *AdminHandler) ParsePrice(c echo.Context) error {
    var body parsePriceRequest
    if err := c.Bind(&body); err != nil {
        return badRequest(c, "invalid request body")
    }
    d, err := pricing.ParsePrice(body.Raw)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"raw": body.Raw, "amount": d.String()})
}
