package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// CatalogEventsQueue is the durable queue that receives catalog events.
const CatalogEventsQueue = "catalog_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp.Channel is not safe for concurrent publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// Event is the envelope of every published message.
type Event struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, opens a channel and declares the catalog queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	zap.L().Info("RabbitMQ client connected", zap.String("queue", CatalogEventsQueue))

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareQueue(ch *amqp.Channel) (amqp.Queue, error) {
	queue, err := ch.QueueDeclare(
		CatalogEventsQueue, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return queue, fmt.Errorf("failed to declare %s: %w", CatalogEventsQueue, err)
	}
	return queue, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// NewEvent wraps a JSON payload in an Event envelope.
func NewEvent(routingKey string, payload []byte) ([]byte, error) {
	if !json.Valid(payload) {
		return nil, fmt.Errorf("payload for %s is not valid JSON", routingKey)
	}
	return json.Marshal(Event{
		Type:       routingKey,
		OccurredAt: time.Now().UTC(),
		Payload:    json.RawMessage(payload),
	})
}

// Publish sends a catalog event to the catalog_events queue as a persistent
// JSON message. The routing key is recorded as the event type.
func (c *Client) Publish(routingKey string, payload []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := NewEvent(routingKey, payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",                 // default exchange
		CatalogEventsQueue, // routing key: the queue name
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         routingKey,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	zap.L().Debug("Published catalog event", zap.String("event", routingKey))
	return nil
}

// ConsumeCatalogEvents registers a consumer on the catalog_events queue and
// processes deliveries in a goroutine. A nil handler error acks the delivery;
// otherwise it is nacked and requeued once before being dropped.
func (c *Client) ConsumeCatalogEvents(handler func(event Event) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declareQueue(c.channel)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	zap.L().Info("Waiting for catalog events", zap.String("queue", queue.Name))

	go func() {
		for msg := range msgs {
			handleDelivery(msg, handler)
		}
	}()

	return nil
}

func handleDelivery(msg amqp.Delivery, handler func(event Event) error) {
	var event Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		zap.L().Warn("Dropping malformed catalog event", zap.Uint64("deliveryTag", msg.DeliveryTag), zap.Error(err))
		if err := msg.Nack(false, false); err != nil {
			zap.L().Warn("Error nacking message", zap.Uint64("deliveryTag", msg.DeliveryTag), zap.Error(err))
		}
		return
	}

	if err := handler(event); err != nil {
		zap.L().Warn("Error processing catalog event",
			zap.Uint64("deliveryTag", msg.DeliveryTag),
			zap.String("event", event.Type),
			zap.Error(err),
		)
		if err := msg.Nack(false, !msg.Redelivered); err != nil {
			zap.L().Warn("Error nacking message", zap.Uint64("deliveryTag", msg.DeliveryTag), zap.Error(err))
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		zap.L().Warn("Error acking message", zap.Uint64("deliveryTag", msg.DeliveryTag), zap.Error(err))
	}
}

// LogCatalogEvent is a consumer handler that records each event in the log.
func LogCatalogEvent(event Event) error {
	zap.L().Info("Received catalog event",
		zap.String("event", event.Type),
		zap.Time("occurredAt", event.OccurredAt),
		zap.ByteString("payload", event.Payload),
	)
	return nil
}
