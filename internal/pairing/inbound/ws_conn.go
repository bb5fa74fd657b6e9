package inbound

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/atomic"
)

// wsConn is a registry channel backed by a websocket. Push never blocks:
// payloads go through a small buffer drained by writePump.
type wsConn struct {
	ws           *websocket.Conn
	send         chan any
	done         chan struct{}
	closed       *atomic.Bool
	closeOnce    sync.Once
	pingInterval time.Duration
	pongWait     time.Duration
}

func newWSConn(ws *websocket.Conn, pingInterval, pongWait time.Duration) *wsConn {
	return &wsConn{
		ws:           ws,
		send:         make(chan any, wsSendBuffer),
		done:         make(chan struct{}),
		closed:       atomic.NewBool(false),
		pingInterval: pingInterval,
		pongWait:     pongWait,
	}
}

func (c *wsConn) Push(_ context.Context, payload any) bool {
	if c.closed.Load() {
		return false
	}

	select {
	case <-c.done:
		return false
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *wsConn) close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.done)
		//nolint:errcheck // best effort close frame
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(wsWriteWait))
		//nolint:errcheck // connection is going away
		_ = c.ws.Close()
	})
}

func (c *wsConn) readLoop(ctx context.Context, onMessage func([]byte)) {
	c.ws.SetReadLimit(wsMaxMessageBytes)
	//nolint:errcheck // only fails on a closed connection which the read below reports
	_ = c.ws.SetReadDeadline(time.Now().Add(c.pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && !c.closed.Load() {
				slog.DebugContext(ctx, "websocket read ended", "error", err)
			}
			return
		}
		onMessage(data)
	}
}

// writePump owns all data writes to the connection.
func (c *wsConn) writePump(ctx context.Context) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case payload := <-c.send:
			//nolint:errcheck // a failed deadline surfaces as a write error
			_ = c.ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.ws.WriteJSON(payload); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					slog.WarnContext(ctx, "failed to write websocket message", "error", err)
				}
				c.close()
				return
			}
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				c.close()
				return
			}
		}
	}
}
