package ws

import (
	"chat-router/errors"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	readTimeout    = 60 * time.Second
	maxMessageSize = 1 << 20
)

// Socket is what rooms and gateways need from a connection.
type Socket interface {
	ID() string
	Emit(event string, args ...any) error
	EmitWithAck(ctx context.Context, event string, args ...any) ([]json.RawMessage, error)
	Reply(id uint64, args ...any) error
}

// Conn wraps a websocket and coordinates outbound writes via a buffered channel.
// It is used on both sides: the router accepts them, the dashboard dials one.
type Conn struct {
	id     string
	ws     *websocket.Conn
	log    *slog.Logger
	send   chan []byte
	closed chan struct{}
	once   sync.Once

	mu      sync.Mutex
	nextAck uint64
	acks    map[uint64]chan []json.RawMessage
}

func NewConn(ws *websocket.Conn, bufferSize int, log *slog.Logger) *Conn {
	return &Conn{
		id:     uuid.NewString(),
		ws:     ws,
		log:    log,
		send:   make(chan []byte, bufferSize),
		closed: make(chan struct{}),
		acks:   make(map[uint64]chan []json.RawMessage),
	}
}

func (c *Conn) ID() string { return c.id }

// Start launches the write loop. It must be called exactly once per connection.
func (c *Conn) Start() {
	go c.writeLoop()
}

func (c *Conn) Done() <-chan struct{} { return c.closed }

// Send enqueues payload for delivery. A client too slow to drain its buffer is disconnected.
func (c *Conn) Send(payload []byte) error {
	select {
	case <-c.closed:
		return errors.ErrConnectionClosed
	default:
	}
	select {
	case c.send <- payload:
		return nil
	default:
		c.Close(websocket.CloseGoingAway, "send buffer full")
		return errors.ErrBufferExceeded
	}
}

func (c *Conn) Emit(event string, args ...any) error {
	payload, err := encodeFrame(Frame{Event: event}, args...)
	if err != nil {
		return err
	}
	return c.Send(payload)
}

// EmitWithAck sends event and waits for the peer acknowledgment arguments.
func (c *Conn) EmitWithAck(ctx context.Context, event string, args ...any) ([]json.RawMessage, error) {
	c.mu.Lock()
	c.nextAck++
	id := c.nextAck
	reply := make(chan []json.RawMessage, 1)
	c.acks[id] = reply
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.acks, id)
		c.mu.Unlock()
	}()

	payload, err := encodeFrame(Frame{Event: event, ID: id}, args...)
	if err != nil {
		return nil, err
	}
	if err := c.Send(payload); err != nil {
		return nil, err
	}

	select {
	case resp := <-reply:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.closed:
		return nil, errors.ErrConnectionClosed
	}
}

// Reply acknowledges the peer frame id.
func (c *Conn) Reply(id uint64, args ...any) error {
	payload, err := encodeFrame(Frame{ID: id, Ack: true}, args...)
	if err != nil {
		return err
	}
	return c.Send(payload)
}

// ReadLoop dispatches inbound frames to handle until the peer goes away.
// Acknowledgments are resolved here and never reach handle.
func (c *Conn) ReadLoop(handle func(Frame)) error {
	defer c.Close(websocket.CloseNormalClosure, "session closed")

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}
			return nil
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			c.log.Debug("Malformed frame ignored", "conn_id", c.id, "error", err)
			continue
		}
		if f.Ack {
			c.resolve(f)
			continue
		}
		handle(f)
	}
}

func (c *Conn) resolve(f Frame) {
	c.mu.Lock()
	reply, ok := c.acks[f.ID]
	c.mu.Unlock()
	if !ok {
		return
	}
	select {
	case reply <- f.Args:
	default:
	}
}

// Close terminates the connection and stops the write loop.
func (c *Conn) Close(code int, reason string) {
	c.once.Do(func() {
		close(c.closed)
		deadline := time.Now().Add(writeWait)
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = c.ws.Close()
	})
}

func (c *Conn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.closed:
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

func (c *Conn) write(messageType int, payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(messageType, payload)
}
