// Package queue_publisher publishes booking lifecycle events to RabbitMQ.
// Errors are logged and returned so callers can treat delivery as best
// effort without interrupting the main request flow.
package queue_publisher

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/rs/zerolog"

    q "github.com/iliyamo/hotel-room-booking/internal/queue"
)

// Publisher dials the broker per event.  Lifecycle events are rare
// compared to reads, so a pooled channel is not worth its reconnect
// bookkeeping here.
type Publisher struct {
    url   string
    queue string
    log   zerolog.Logger
}

func NewPublisher(url string, log zerolog.Logger) *Publisher {
    return &Publisher{url: url, queue: q.BookingEventsQueue, log: log}
}

// PublishBookingEvent publishes ev to the booking.events queue.  Messages
// are marked as persistent.
func (p *Publisher) PublishBookingEvent(ctx context.Context, ev q.BookingEvent) error {
    conn, err := amqp.Dial(p.url)
    if err != nil {
        p.log.Warn().Err(err).Msg("rabbitmq: dial failed")
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        p.log.Warn().Err(err).Msg("rabbitmq: channel open failed")
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        p.queue, // name
        true,    // durable
        false,   // autoDelete
        false,   // exclusive
        false,   // noWait
        nil,     // args
    ); err != nil {
        p.log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        p.log.Warn().Err(err).Msg("rabbitmq: marshal event failed")
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        MessageId:    ev.EventID,
        Type:         ev.Type,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx,
        "",      // default exchange
        p.queue, // routing key = queue name
        false,   // mandatory
        false,   // immediate
        pub,
    ); err != nil {
        p.log.Warn().Err(err).Str("type", ev.Type).Msg("rabbitmq: publish failed")
        return err
    }
    return nil
}
