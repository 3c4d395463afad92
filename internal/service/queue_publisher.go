// Package publisher pushes domain events to RabbitMQ.  Errors are
// logged and returned so callers on the request path can treat event
// delivery as best-effort without losing visibility.
package publisher

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/airnest/listing-reservation/internal/queue"
)

const (
    bookingCreatedQueue  = "booking.created"
    reviewSubmittedQueue = "review.submitted"
)

// PublishBookingCreated sends a BookingCreatedEvent to the durable
// booking.created queue as a persistent JSON message.
func PublishBookingCreated(ctx context.Context, event queue.BookingCreatedEvent) error {
    return publishJSON(ctx, bookingCreatedQueue, event)
}

// PublishReviewSubmitted sends a ReviewSubmittedEvent to the durable
// review.submitted queue as a persistent JSON message.
func PublishReviewSubmitted(ctx context.Context, event queue.ReviewSubmittedEvent) error {
    return publishJSON(ctx, reviewSubmittedQueue, event)
}

// publishJSON dials the broker, declares the queue idempotently and
// publishes a single persistent message on the default exchange.  A
// fresh connection per publish keeps the request path free of shared
// channel state at the cost of a little latency.
func publishJSON(ctx context.Context, queueName string, event any) error {
    conn, err := amqp.Dial(queue.BrokerURL())
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
