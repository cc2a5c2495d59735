// Package broker wraps the AMQP connection used for the ride events
// topic. The ride service publishes rating seeds through it and the
// rating service consumes them.
package broker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Topology of the ride events topic.
const (
	ExchangeRideEvents  = "ride.events"
	QueueRatingSeed     = "rating.seed"
	RouteRideCreated    = "ride.created"
	consumerPrefetch    = 10
	handlerTimeout      = 30 * time.Second
	publishConfirmAfter = 5 * time.Second
)

// Client is a RabbitMQ connector that declares the topology on connect
// and reconnects with backoff when the connection drops.
type Client struct {
	url string

	mu      sync.RWMutex
	conn    *amqp.Connection
	pubChan *amqp.Channel

	pubMu       sync.Mutex
	pubConfirms chan amqp.Confirmation

	closed    chan struct{}
	reconnect chan struct{}
}

// Connect dials RabbitMQ, declares the topology, and starts a background
// watcher that reconnects on failure.
func Connect(url string) (*Client, error) {
	client := &Client{
		url:       url,
		closed:    make(chan struct{}),
		reconnect: make(chan struct{}, 1),
	}

	if err := client.connectOnce(); err != nil {
		return nil, err
	}

	go client.watch()

	return client, nil
}

// Close stops the watcher and closes AMQP resources.
func (c *Client) Close() {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	c.mu.Lock()
	if c.pubChan != nil {
		_ = c.pubChan.Close()
		c.pubChan = nil
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()
}

func (c *Client) connectOnce() error {
	conn, err := amqp.DialConfig(c.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Dial:      amqp.DefaultDial(30 * time.Second),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: failed to open channel: %w", err)
	}

	if err := declareTopology(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: failed to declare topology: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: failed to enable confirms: %w", err)
	}

	// The library closes every NotifyPublish listener itself when its
	// channel shuts down; the old confirms channel must not be closed here.
	c.pubMu.Lock()
	c.pubConfirms = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	c.pubMu.Unlock()

	c.mu.Lock()
	if c.pubChan != nil && !c.pubChan.IsClosed() {
		_ = c.pubChan.Close()
	}
	c.conn = conn
	c.pubChan = ch
	c.mu.Unlock()

	// Either the connection or the publisher channel closing triggers a
	// reconnect.
	go func(conn *amqp.Connection, ch *amqp.Channel) {
		connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
		chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-c.closed:
			return
		case <-connClosed:
		case <-chClosed:
		}
		select {
		case c.reconnect <- struct{}{}:
		default:
		}
	}(conn, ch)

	log.Println("Connected to RabbitMQ")
	return nil
}

func (c *Client) watch() {
	backoff := time.Second
	for {
		select {
		case <-c.closed:
			return
		case <-c.reconnect:
			for {
				select {
				case <-c.closed:
					return
				default:
				}

				if err := c.connectOnce(); err == nil {
					backoff = time.Second
					break
				} else {
					log.Printf("rabbitmq reconnect failed: %v", err)
				}

				time.Sleep(backoff)
				if backoff < 30*time.Second {
					backoff *= 2
				}
			}
		}
	}
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeRideEvents, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", ExchangeRideEvents, err)
	}
	if _, err := ch.QueueDeclare(QueueRatingSeed, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", QueueRatingSeed, err)
	}
	if err := ch.QueueBind(QueueRatingSeed, RouteRideCreated, ExchangeRideEvents, false, nil); err != nil {
		return fmt.Errorf("bind queue %s to %s: %w", QueueRatingSeed, ExchangeRideEvents, err)
	}
	return nil
}

// Publish sends a persistent JSON message to the ride events exchange and
// waits for the broker confirm.
func (c *Client) Publish(routingKey, messageID string, body []byte) error {
	c.mu.RLock()
	ch := c.pubChan
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil || conn.IsClosed() {
		return errors.New("rabbitmq: connection is not open")
	}
	if ch == nil || ch.IsClosed() {
		return errors.New("rabbitmq: publish channel is not open")
	}

	c.pubMu.Lock()
	defer c.pubMu.Unlock()
	confirms := c.pubConfirms

	ctx, cancel := context.WithTimeout(context.Background(), publishConfirmAfter)
	defer cancel()

	err := ch.PublishWithContext(ctx, ExchangeRideEvents, routingKey, false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    messageID,
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	return awaitConfirm(ctx, confirms)
}

// awaitConfirm waits for the broker confirm of the last publish. The
// confirms channel is closed by the library when the AMQP channel shuts
// down, so a closed channel means the publish cannot be confirmed.
func awaitConfirm(ctx context.Context, confirms <-chan amqp.Confirmation) error {
	select {
	case confirm, ok := <-confirms:
		if !ok {
			return errors.New("rabbitmq: channel closed before publish confirm")
		}
		if !confirm.Ack {
			return errors.New("rabbitmq: publish not acknowledged")
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume reads from a queue with manual acks. Failed handler calls nack
// without requeue so a poison message cannot wedge the queue.
func (c *Client) Consume(ctx context.Context, queue, consumerTag string, handler func(context.Context, amqp.Delivery) error) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil || conn.IsClosed() {
		return errors.New("rabbitmq: connection is not ready")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(consumerPrefetch, 0, false); err != nil {
		return fmt.Errorf("rabbitmq: set QoS: %w", err)
	}

	deliveries, err := ch.Consume(queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("rabbitmq: consume(%s): %w", queue, err)
	}

	chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))

	for {
		select {
		case <-ctx.Done():
			_ = ch.Cancel(consumerTag, false)
			return nil

		case cerr := <-chClosed:
			if cerr != nil {
				return fmt.Errorf("rabbitmq: channel closed while consuming %s: %w", queue, cerr)
			}
			return nil

		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			hCtx, cancel := context.WithTimeout(ctx, handlerTimeout)
			err := handler(hCtx, d)
			cancel()

			if err != nil {
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}
