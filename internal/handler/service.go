package handler

import (
    "context"
    "time"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
    "github.com/iliyamo/hotel-room-booking/internal/model"
    "github.com/iliyamo/hotel-room-booking/internal/pricing"
    "github.com/iliyamo/hotel-room-booking/internal/reporting"
)

// BookingService is the part of booking.Service the HTTP layer calls.
type BookingService interface {
    ListRooms(ctx context.Context, f model.RoomFilter) ([]model.Room, int, error)
    GetRoom(ctx context.Context, id uint64) (*model.Room, error)
    GetAvailability(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (bool, error)
    QuoteBooking(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, code string) (pricing.Quote, error)

    CreateBooking(ctx context.Context, actor booking.Actor, req booking.CreateRequest) (*model.Reservation, error)
    GetBooking(ctx context.Context, actor booking.Actor, id uint64) (*model.Reservation, error)
    ListMyBookings(ctx context.Context, actor booking.Actor) ([]model.Reservation, error)
    ListBookings(ctx context.Context, actor booking.Actor, f model.ReservationFilter) ([]model.Reservation, int, error)
    CancelBooking(ctx context.Context, actor booking.Actor, id uint64) (*model.Reservation, error)
    ConfirmPayment(ctx context.Context, actor booking.Actor, in booking.PaymentConfirmation) (*model.Reservation, error)
    SetBookingStatus(ctx context.Context, actor booking.Actor, id uint64, status string) (*model.Reservation, error)
}

// ReportService builds revenue reports.
type ReportService interface {
    GetRevenueReport(ctx context.Context, granularity, period string) (*reporting.Report, error)
}

var (
    _ BookingService = (*booking.Service)(nil)
    _ ReportService  = (*reporting.Service)(nil)
)
