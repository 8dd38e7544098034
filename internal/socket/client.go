package socket

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"

	"github.com/kiwari-pos/owner-dashboard/internal/enum"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size; order payloads carry full item lists
	maxMessageSize = 64 * 1024
)

// ErrSendBufferFull is returned by emits when the outbound queue is full,
// which only happens while the connection is down for an extended period.
var ErrSendBufferFull = errors.New("socket: send buffer full")

// Client maintains the push channel to the backend. It dials, registers the
// owner role, and keeps the connection alive with ping/pong; on connection
// loss it reconnects with capped exponential backoff and re-registers.
//
// Inbound events are delivered on Events(). Outbound emits are queued and
// flushed by the write pump, so they survive brief disconnects.
type Client struct {
	url        string
	maxRetries uint64
	dialer     *websocket.Dialer
	send       chan []byte
	events     chan Event
}

// Dial creates a Client for the given websocket URL. maxRetries bounds the
// reconnect attempts per outage; 0 means retry forever. No connection is made
// until Run is called.
func Dial(url string, maxRetries int) *Client {
	return &Client{
		url:        url,
		maxRetries: uint64(maxRetries),
		dialer:     websocket.DefaultDialer,
		send:       make(chan []byte, 256),
		events:     make(chan Event, 256),
	}
}

// Events returns the inbound event stream. The channel is closed when Run
// returns.
func (c *Client) Events() <-chan Event {
	return c.events
}

// AcceptOrder emits acceptOrder for the given order id.
func (c *Client) AcceptOrder(orderID string) error {
	return c.emit(enum.EventAcceptOrder, acceptOrderPayload{OrderID: orderID})
}

// UpdatePaymentStatus emits updatePaymentStatus for the given order.
func (c *Client) UpdatePaymentStatus(orderID, paymentStatus string) error {
	return c.emit(enum.EventUpdatePaymentStatus, updatePaymentPayload{
		OrderID:       orderID,
		PaymentStatus: paymentStatus,
	})
}

func (c *Client) emit(eventType string, payload any) error {
	ev, err := newEvent(eventType, payload)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	select {
	case c.send <- frame:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Run connects and pumps events until ctx is cancelled or the reconnect
// budget is exhausted. It closes the events channel on return.
func (c *Client) Run(ctx context.Context) error {
	defer close(c.events)

	for {
		conn, err := c.connect(ctx)
		if err != nil {
			return err
		}

		c.session(ctx, conn)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("socket disconnected, reconnecting")
	}
}

// connect dials with backoff and performs the role-registration handshake so
// the backend scopes subsequent events to the owner client class.
func (c *Client) connect(ctx context.Context) (*websocket.Conn, error) {
	var policy backoff.BackOff = backoff.NewExponentialBackOff()
	if c.maxRetries > 0 {
		policy = backoff.WithMaxRetries(policy, c.maxRetries)
	}
	policy = backoff.WithContext(policy, ctx)

	var conn *websocket.Conn
	err := backoff.Retry(func() error {
		var dialErr error
		conn, _, dialErr = c.dialer.DialContext(ctx, c.url, nil)
		return dialErr
	}, policy)
	if err != nil {
		return nil, err
	}

	handshake, err := newEvent(enum.EventRegisterRole, registerRolePayload{Role: enum.RoleOwner})
	if err != nil {
		conn.Close()
		return nil, err
	}
	frame, err := json.Marshal(handshake)
	if err != nil {
		conn.Close()
		return nil, err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// session runs the read and write pumps on one connection and returns once
// the connection is dead.
func (c *Client) session(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	go c.writePump(conn, done)
	go func() {
		// A blocked read only returns once the connection dies, so close
		// it when the context is cancelled.
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	c.readPump(ctx, conn)

	conn.Close()
	close(done)
}

// readPump pumps inbound frames onto the events channel until the connection
// errors. Frames that fail to decode are dropped; the stream is best-effort.
func (c *Client) readPump(ctx context.Context, conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && ctx.Err() == nil {
				log.Printf("ERROR: socket read: %v", err)
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(message, &ev); err != nil {
			log.Printf("ERROR: socket frame decode: %v", err)
			continue
		}

		select {
		case c.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// writePump flushes queued emits and sends pings until done is closed.
func (c *Client) writePump(conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return

		case frame := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				// Requeue so the emit is retried on the next connection.
				select {
				case c.send <- frame:
				default:
				}
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
