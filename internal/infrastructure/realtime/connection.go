package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	sendBuffer   = 128
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

var (
	// ErrConnectionClosed is returned by Send once Close has run.
	ErrConnectionClosed = errors.New("realtime: connection closed")
	// ErrSlowConsumer is returned when the outbound buffer is full; the
	// connection is dropped rather than letting backpressure build.
	ErrSlowConsumer = errors.New("realtime: send buffer full")
)

// Connection wraps a websocket and serializes outbound writes through a
// buffered channel drained by a single write loop. Safe for concurrent use.
type Connection struct {
	ID     string
	UserID string

	ws   *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

// NewConnection constructs a Connection for the given user.
func NewConnection(userID string, ws *websocket.Conn) *Connection {
	return &Connection{
		ID:     uuid.NewString(),
		UserID: userID,
		ws:     ws,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
}

// Start launches the write loop. It must be called exactly once per connection.
func (c *Connection) Start() {
	go c.writeLoop()
}

// Send enqueues payload for delivery. The send channel is never closed, so a
// Send racing Close can only fail with ErrConnectionClosed, never panic; a
// payload that slips into the buffer during the race is simply dropped with
// the dead write loop. A full buffer means the client is not keeping up, and
// the connection is closed to bound backpressure.
func (c *Connection) Send(payload []byte) error {
	select {
	case <-c.done:
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- payload:
		return nil
	case <-c.done:
		return ErrConnectionClosed
	default:
		c.Close(websocket.CloseGoingAway, "send buffer full")
		return ErrSlowConsumer
	}
}

// Close terminates the connection. The done channel stops both Send and the
// write loop; the buffered send channel is left for the garbage collector.
// Idempotent.
func (c *Connection) Close(code int, reason string) {
	c.once.Do(func() {
		close(c.done)
		deadline := time.Now().Add(writeTimeout)
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = c.ws.Close()
	})
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				c.Close(websocket.CloseAbnormalClosure, "write failed")
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.Close(websocket.CloseAbnormalClosure, "ping failed")
				return
			}
		}
	}
}

func (c *Connection) write(messageType int, payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.ws.WriteMessage(messageType, payload)
}
