// Package messaging fans store change notifications out over NATS.
package messaging

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Client owns a NATS connection.
type Client struct {
	Conn *nats.Conn
}

// Connect dials url, reconnecting forever after the first success.
func Connect(url, name string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Client{Conn: conn}, nil
}

// ConnectWithRetry retries Connect until timeout elapses.
func ConnectWithRetry(url, name string, timeout time.Duration) (*Client, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		client, err := Connect(url, name)
		if err == nil {
			return client, nil
		}
		lastErr = err
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("connect nats timeout after %s: %w", timeout, lastErr)
}

// Close drains pending publishes before closing.
func (c *Client) Close() {
	if c == nil || c.Conn == nil {
		return
	}
	_ = c.Conn.Drain()
	c.Conn.Close()
}

// Publisher sends one message to a subject.
type Publisher interface {
	Publish(subject string, payload []byte) error
}

// Publisher returns a core NATS publisher on the client's connection.
func (c *Client) Publisher() Publisher {
	return ConnPublisher{Conn: c.Conn}
}

// ConnPublisher publishes with core NATS (at-most-once).
type ConnPublisher struct {
	Conn *nats.Conn
}

func (p ConnPublisher) Publish(subject string, payload []byte) error {
	return p.Conn.Publish(subject, payload)
}
