// Package metrics exposes the booking engine's Prometheus collectors.
package metrics

import (
    "time"

    "github.com/prometheus/client_golang/prometheus"
)

// Booking implements the booking service's metrics hooks on top of
// Prometheus collectors.
type Booking struct {
    created  prometheus.Counter
    rejected *prometheus.CounterVec
    payments *prometheus.CounterVec
    changes  *prometheus.CounterVec
    lockWait prometheus.Histogram
}

// NewBooking creates the collectors and registers them with reg.  A nil
// registerer selects prometheus.DefaultRegisterer, which /metrics serves.
func NewBooking(reg prometheus.Registerer) *Booking {
    if reg == nil {
        reg = prometheus.DefaultRegisterer
    }
    b := &Booking{
        created: prometheus.NewCounter(prometheus.CounterOpts{
            Namespace: "hotel",
            Subsystem: "booking",
            Name:      "created_total",
            Help:      "Reservations created.",
        }),
        rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
            Namespace: "hotel",
            Subsystem: "booking",
            Name:      "rejected_total",
            Help:      "Booking attempts rejected, by reason.",
        }, []string{"reason"}),
        payments: prometheus.NewCounterVec(prometheus.CounterOpts{
            Namespace: "hotel",
            Subsystem: "booking",
            Name:      "payments_total",
            Help:      "Payment confirmations, split into first deliveries and replays.",
        }, []string{"outcome"}),
        changes: prometheus.NewCounterVec(prometheus.CounterOpts{
            Namespace: "hotel",
            Subsystem: "booking",
            Name:      "status_changes_total",
            Help:      "Status changes (admin overrides and customer cancellations), by target status.",
        }, []string{"to"}),
        lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
            Namespace: "hotel",
            Subsystem: "booking",
            Name:      "room_lock_wait_seconds",
            Help:      "Time spent waiting for room exclusivity.",
            Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
        }),
    }
    reg.MustRegister(b.created, b.rejected, b.payments, b.changes, b.lockWait)
    return b
}

func (b *Booking) BookingCreated()               { b.created.Inc() }
func (b *Booking) BookingRejected(reason string) { b.rejected.WithLabelValues(reason).Inc() }
func (b *Booking) StatusChanged(to string)       { b.changes.WithLabelValues(to).Inc() }
func (b *Booking) LockWait(d time.Duration)      { b.lockWait.Observe(d.Seconds()) }

func (b *Booking) PaymentConfirmed(replay bool) {
    outcome := "recorded"
    if replay {
        outcome = "replay"
    }
    b.payments.WithLabelValues(outcome).Inc()
}
