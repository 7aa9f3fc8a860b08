// Package ws is the websocket transport: one Client per connection,
// with a single reader and a single writer goroutine, dispatching
// decoded frames into the matchmaking and session services.
package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tictacmatch/tictacmatch-go/internal/model"
	"github.com/tictacmatch/tictacmatch-go/internal/protocol"
)

const (
	// writeWait bounds a single frame write.
	writeWait = 10 * time.Second
	// pingPeriod is how often the write pump probes the peer. Reads
	// carry no deadline; a player may think about a move indefinitely.
	pingPeriod = 30 * time.Second
	// sendBuffer is the outbound queue depth per connection.
	sendBuffer = 16
)

// Client wraps one live websocket connection. All writes funnel
// through the send channel so the write pump is the only goroutine
// touching the connection's write side.
type Client struct {
	conn   *websocket.Conn
	logger *slog.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once

	mu       sync.Mutex
	identity model.Identity
	gameID   model.GameID
}

// NewClient wraps an upgraded connection. The caller must start
// WritePump before the first Send.
func NewClient(conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		conn:   conn,
		logger: logger.With(slog.String("component", "ws"), slog.String("remote", conn.RemoteAddr().String())),
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
}

// Identity returns the authenticated name, or empty before login.
func (c *Client) Identity() model.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// SetIdentity binds the connection to an authenticated name.
func (c *Client) SetIdentity(id model.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = id
}

// IsBot always reports false; bots never hold a connection.
func (c *Client) IsBot() bool { return false }

// SetGame records the current session identifier.
func (c *Client) SetGame(id model.GameID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gameID = id
}

// Game returns the current session identifier.
func (c *Client) Game() model.GameID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gameID
}

// Send encodes the message and queues it for the write pump. A closed
// connection or a full queue drops the message; a peer that slow is
// already being torn down by the ping probe.
func (c *Client) Send(msg protocol.Message) {
	data, err := protocol.Encode(msg)
	if err != nil {
		c.logger.Error("failed to encode outbound message",
			slog.String("kind", string(msg.Kind())),
			slog.String("error", err.Error()))
		return
	}

	select {
	case <-c.done:
	case c.send <- data:
	default:
		c.logger.Warn("outbound queue full, dropping message",
			slog.String("kind", string(msg.Kind())))
	}
}

// Close signals the write pump to shut the connection down. Safe to
// call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// WritePump drains the send queue onto the connection and keeps the
// peer alive with periodic pings. It owns the connection's write side
// and closes the socket on exit.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
