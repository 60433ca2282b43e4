package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"flight-booking/internal/domain/notification"
	"flight-booking/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	consumerPrefetch  = 20
	maxConsumeBackoff = 30 * time.Second
)

// AMQPPublisher publishes events to a durable queue on the default
// exchange. The connection is opened lazily and reopened after a failure.
type AMQPPublisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event notification.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "encode notification event")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.JobID.String(),
		Type:         event.Topic.String(),
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		p.reset()
		return errs.Wrap(err, "amqp publish")
	}
	return nil
}

func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, errs.Wrap(err, "amqp dial")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "amqp channel")
	}
	if err := declareQueue(ch, p.queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

func declareQueue(ch *amqp.Channel, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return errs.Wrapf(err, "declare queue %s", queue)
	}
	return nil
}

// Consumer drains the notification queue and delivers each event. It
// reconnects with exponential backoff until its context is cancelled.
type Consumer struct {
	url       string
	queue     string
	deliverer *Deliverer
	timeout   time.Duration
}

func NewConsumer(url, queue string, deliverer *Deliverer, timeout time.Duration) *Consumer {
	return &Consumer{
		url:       url,
		queue:     queue,
		deliverer: deliverer,
		timeout:   timeout,
	}
}

func (c *Consumer) Run(ctx context.Context) {
	backoff := time.Second
	for {
		err := c.consume(ctx)
		if ctx.Err() != nil {
			return
		}
		slog.WarnContext(ctx, "notification consumer disconnected", "error", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < maxConsumeBackoff {
			backoff *= 2
		}
	}
}

func (c *Consumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return errs.Wrap(err, "amqp dial")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return errs.Wrap(err, "amqp channel")
	}
	defer ch.Close()

	if err := ch.Qos(consumerPrefetch, 0, false); err != nil {
		return errs.Wrap(err, "amqp qos")
	}
	if err := declareQueue(ch, c.queue); err != nil {
		return err
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return errs.Wrap(err, "amqp consume")
	}
	slog.InfoContext(ctx, "notification consumer started", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errs.New("deliveries channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var event notification.Event
	if err := json.Unmarshal(d.Body, &event); err != nil {
		slog.WarnContext(ctx, "dropping undecodable notification", "message_id", d.MessageId, "error", err)
		_ = d.Nack(false, false)
		return
	}

	deliverCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// Failures are recorded on the job row, not requeued.
	_ = c.deliverer.Deliver(deliverCtx, event)
	_ = d.Ack(false)
}
