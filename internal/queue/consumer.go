package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/rs/zerolog"
)

// Consumer listens to the booking.events queue and appends every event
// as one JSON line to a journal file (logs/booking.log by default).
type Consumer struct {
    url     string
    queue   string
    journal string
    log     zerolog.Logger
}

// NewConsumer builds a consumer for the given broker url.  An empty
// journal path selects logs/booking.log.
func NewConsumer(url, journal string, log zerolog.Logger) *Consumer {
    if journal == "" {
        journal = filepath.Join("logs", "booking.log")
    }
    return &Consumer{url: url, queue: BookingEventsQueue, journal: journal, log: log}
}

// Run connects to RabbitMQ, declares the queue (durable) and consumes
// until ctx is cancelled.  Broker failures are logged and followed by a
// reconnect with exponential backoff, so the server keeps operating while
// the broker is down.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.url)
        if err != nil {
            c.log.Warn().Err(err).Dur("retry_in", backoff).Msg("booking consumer: dial failed")
            if !sleepCtx(ctx, backoff) {
                return nil
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return nil
        }
        c.log.Warn().Err(err).Msg("booking consumer: consume loop ended, reconnecting")
        if !sleepCtx(ctx, 2*time.Second) {
            return nil
        }
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        c.log.Warn().Err(err).Msg("booking consumer: set QoS failed")
    }
    if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.handle(d.Body); err != nil {
                c.log.Error().Err(err).Msg("booking consumer: handle message failed")
                _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
                continue
            }
            _ = d.Ack(false)
        }
    }
}

func (c *Consumer) handle(body []byte) error {
    if err := os.MkdirAll(filepath.Dir(c.journal), 0o755); err != nil {
        return fmt.Errorf("mkdir journal dir: %w", err)
    }
    f, err := os.OpenFile(c.journal, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open journal: %w", err)
    }
    defer f.Close()
    return WriteJournal(f, body)
}

// WriteJournal decodes one event and writes it to w as a single zerolog
// JSON line.  Malformed payloads are returned as errors so the delivery
// can be rejected.
func WriteJournal(w io.Writer, body []byte) error {
    var ev BookingEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Type == "" || ev.ReservationID == 0 {
        return fmt.Errorf("incomplete event %q", ev.EventID)
    }
    jl := zerolog.New(w)
    e := jl.Info().
        Str("occurred_at", ev.OccurredAt).
        Str("event_id", ev.EventID).
        Str("type", ev.Type).
        Uint64("reservation_id", ev.ReservationID).
        Str("code", ev.Code).
        Uint64("user_id", ev.UserID).
        Uint64("room_id", ev.RoomID).
        Str("check_in", ev.CheckIn).
        Str("check_out", ev.CheckOut).
        Str("status", ev.Status).
        Str("total_price", ev.TotalPrice).
        Uint64("actor_id", ev.ActorID)
    if ev.PreviousStatus != "" {
        e = e.Str("previous_status", ev.PreviousStatus)
    }
    e.Msg("booking event")
    return nil
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
