package inbound

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"github.com/shandysiswandi/otpbridge/internal/pairing/usecase"
	"github.com/shandysiswandi/otpbridge/internal/pkg/config"
	"github.com/shandysiswandi/otpbridge/internal/pkg/router"
)

const (
	wsMessageTypeRegister = "register"

	defaultPingInterval = 25 * time.Second
	defaultPongWait     = 60 * time.Second
	wsWriteWait         = 10 * time.Second
	wsMaxMessageBytes   = 4 << 10
	wsSendBuffer        = 8
)

type wsClientMessage struct {
	Type  string `json:"type"`
	Phone string `json:"phone"`
}

func RegisterWSEndpoint(ctx context.Context, r *router.Router, cfg config.Config, uc ucChannel) {
	end := &WSEndpoint{
		ctx:          ctx,
		uc:           uc,
		pingInterval: defaultPingInterval,
		pongWait:     defaultPongWait,
	}

	var origins []string
	if cfg != nil {
		origins = cfg.GetArray("app.server.cors")
	}
	end.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(origins) == 0 || lo.Contains(origins, "*") || lo.Contains(origins, origin)
		},
	}

	r.GETRaw("/ws", http.HandlerFunc(end.Serve))
}

type WSEndpoint struct {
	ctx          context.Context
	uc           ucChannel
	upgrader     websocket.Upgrader
	pingInterval time.Duration
	pongWait     time.Duration
}

// Serve upgrades the request and keeps the connection until either side closes it.
// @Summary Realtime pairing channel
// @Description WebSocket. Send {"type":"register","phone":"..."} to receive {"type":"otp_verified"}.
// @Tags Pairing
// @Success 101 "Switching Protocols"
// @Router /ws [get]
func (e *WSEndpoint) Serve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ws, err := e.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "failed to upgrade websocket", "error", err)
		return
	}

	conn := newWSConn(ws, e.pingInterval, e.pongWait)
	slog.InfoContext(ctx, "websocket connected", "remote_addr", r.RemoteAddr)

	go conn.writePump(ctx)
	if e.ctx != nil {
		go func() {
			select {
			case <-e.ctx.Done():
				conn.close()
			case <-conn.done:
			}
		}()
	}

	defer func() {
		conn.close()
		e.uc.UnregisterChannel(ctx, conn)
		slog.InfoContext(ctx, "websocket disconnected", "remote_addr", r.RemoteAddr)
	}()

	conn.readLoop(ctx, func(data []byte) {
		e.handleMessage(ctx, conn, data)
	})
}

func (e *WSEndpoint) handleMessage(ctx context.Context, conn *wsConn, data []byte) {
	var msg wsClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		slog.WarnContext(ctx, "ignoring unparseable websocket message", "payload", string(data), "error", err)
		return
	}

	switch msg.Type {
	case wsMessageTypeRegister:
		identity, err := e.uc.RegisterChannel(ctx, usecase.RegisterChannelInput{Phone: msg.Phone, Channel: conn})
		if err != nil {
			slog.WarnContext(ctx, "ignoring invalid websocket registration", "phone", msg.Phone, "error", err)
			return
		}
		slog.InfoContext(ctx, "websocket registered", "identity", identity.String())
	default:
		slog.WarnContext(ctx, "ignoring unknown websocket message type", "type", msg.Type)
	}
}
