package handler

import (
    "fmt"
    "net/http"
    "strings"
    "unicode/utf8"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/pricing"
)

// PaymentHandler receives confirmations from the payment provider.
type PaymentHandler struct {
    svc BookingService
}

func NewPaymentHandler(svc BookingService) *PaymentHandler {
    if svc == nil {
        panic("nil booking service passed to NewPaymentHandler")
    }
    return &PaymentHandler{svc: svc}
}

// The amount travels as a string so no binary float ever holds it.
type confirmPaymentRequest struct {
    ReservationID  uint64 `json:"reservation_id"`
    Amount         string `json:"amount"`
    Method         string `json:"method"`
    TransactionRef string `json:"transaction_ref"`
}

// Confirm handles POST /v1/payments/confirm.  Repeating a confirmation
// that already succeeded returns the stored reservation with 200.
func (h *PaymentHandler) Confirm(c echo.Context) error {
    actor, ok, err := actorFrom(c)
    if !ok {
        return err
    }
    var body confirmPaymentRequest
    if err := c.Bind(&body); err != nil {
        return badRequest(c, "invalid request body")
    }
    if body.ReservationID == 0 {
        return badRequest(c, "reservation_id is required")
    }
    if strings.TrimSpace(body.Amount) == "" {
        return badRequest(c, "amount is required")
    }
    // Providers send machine formatted amounts, so no separator guessing.
    amount, err := decimal.NewFromString(strings.TrimSpace(body.Amount))
    if err != nil || amount.IsNegative() {
        return respondError(c, &pricing.InvalidPriceError{Input: body.Amount, Reason: "not a decimal amount"})
    }
    method, ref := strings.TrimSpace(body.Method), strings.TrimSpace(body.TransactionRef)
    if utf8.RuneCountInString(method) > model.MaxPaymentMethodLen {
        return badRequest(c, fmt.Sprintf("method must be at most %d characters", model.MaxPaymentMethodLen))
    }
    if utf8.RuneCountInString(ref) > model.MaxTransactionRefLen {
        return badRequest(c, fmt.Sprintf("transaction_ref must be at most %d characters", model.MaxTransactionRefLen))
    }
    res, err := h.svc.ConfirmPayment(c.Request().Context(), actor, booking.PaymentConfirmation{
        ReservationID:  body.ReservationID,
        Amount:         amount,
        Method:         method,
        TransactionRef: ref,
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}
