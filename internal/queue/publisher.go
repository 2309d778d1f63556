package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends booking events to RabbitMQ over one long-lived connection.
// The connection is opened lazily and reopened after the broker drops it or
// a publish fails. Every broker round trip, the dial included, is bounded by
// the caller's context.
type Publisher struct {
	url string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// PublishBookingConfirmed sends ev as one persistent JSON message on the
// booking.confirmed queue.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, ev BookingConfirmedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("queue: encode booking %s: %w", ev.BookingID, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel(ctx)
	if err != nil {
		return fmt.Errorf("queue: booking %s: %w", ev.BookingID, err)
	}
	err = ch.PublishWithContext(ctx, "", BookingConfirmedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    ev.BookingID,
		Body:         body,
	})
	if err != nil {
		p.reset()
		return fmt.Errorf("queue: publish booking %s: %w", ev.BookingID, err)
	}
	return nil
}

// channel returns the open channel, dialing and declaring the queue when
// there is none. Callers hold p.mu.
func (p *Publisher) channel(ctx context.Context) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: contextDialer(ctx)})
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	// durable, not auto-deleted, shared, wait for the broker
	if _, err := ch.QueueDeclare(BookingConfirmedQueue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare %s: %w", BookingConfirmedQueue, err)
	}
	log.Printf("[queue] connected, publishing to %s", BookingConfirmedQueue)
	p.conn, p.ch = conn, ch
	return ch, nil
}

// reset drops the current connection so the next publish redials.
func (p *Publisher) reset() {
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

// Close releases the broker connection. It is safe to call more than once.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn, p.ch = nil, nil
	return err
}

// contextDialer connects under ctx and carries its deadline onto the socket
// so the AMQP handshake is bounded too. amqp clears the deadline once the
// connection is open.
func contextDialer(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if dl, ok := ctx.Deadline(); ok {
			if err := conn.SetDeadline(dl); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		return conn, nil
	}
}
