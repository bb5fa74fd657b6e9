package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shandysiswandi/otpbridge/internal/pkg/messaging"
	"github.com/shandysiswandi/otpbridge/internal/shared/event"
)

const testConfig = `
app:
  tz: "UTC"
  server:
    max_goroutine: 20
    cors: ""
    http:
      address: "127.0.0.1:0"
    ws:
      address: "127.0.0.1:0"
      read_header_timeout_seconds: 5
instrument:
  enabled: false
  service_name: "otpbridge-test"
  log_level: "error"
  log_mask_fields: "otp,code,body,msg_body"
messaging:
  driver: "memory"
modules:
  pairing:
    enabled: true
    otp_ttl_minutes: 5
    sweep_interval_seconds: 60
    reply:
      verified: "verified"
      mismatch: "mismatch"
`

var httpClient = &http.Client{Timeout: 5 * time.Second}

type successEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	app     *App
	httpURL string
	wsURL   string
}

func startApp(t *testing.T) *testServer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	a := New()

	httpL, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen http: %v", err)
	}
	wsL, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen ws: %v", err)
	}

	errChan := a.Serve(httpL, wsL)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.Stop(ctx)
		for err := range errChan {
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				t.Errorf("serve: %v", err)
			}
		}
	})

	return &testServer{
		app:     a,
		httpURL: "http://" + httpL.Addr().String(),
		wsURL:   "ws://" + wsL.Addr().String() + "/ws",
	}
}

func doJSON(t *testing.T, method, url string, payload any) (int, []byte) {
	t.Helper()

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		t.Fatalf("encode json: %v", err)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp.StatusCode, body
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAppPairingFlow(t *testing.T) {

	// Arrange
	srv := startApp(t)
	broker, ok := srv.app.messaging.(*messaging.Memory)
	if !ok {
		t.Fatalf("expected memory broker, got %T", srv.app.messaging)
	}

	replies := make(chan event.WhatsappOutboundReply, 16)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		//nolint:errcheck // stops on cancel
		_ = broker.Consume(ctx, event.WhatsappOutboundReplyDestination, func(_ context.Context, msg messaging.Message) error {
			var reply event.WhatsappOutboundReply
			if err := json.Unmarshal(msg.Body(), &reply); err != nil {
				return err
			}
			select {
			case replies <- reply:
			default:
			}
			return nil
		}, messaging.WithQueueGroup("test"))
	}()
	waitFor(t, "subscribers", func() bool {
		return broker.HasSubscribers(event.WhatsappInboundMessageDestination) &&
			broker.HasSubscribers(event.WhatsappOutboundReplyDestination)
	})

	status, body := doJSON(t, http.MethodPost, srv.httpURL+"/webhook/otp", map[string]string{
		"phone": "0812-3456-789",
		"otp":   "482913",
	})
	if status != http.StatusOK {
		t.Fatalf("issue otp status = %d body=%s", status, body)
	}
	var env successEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Message != "otp has been stored" {
		t.Fatalf("message = %q", env.Message)
	}

	conn, resp, err := websocket.DefaultDialer.Dial(srv.wsURL, nil)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	if err := conn.WriteJSON(map[string]string{"type": "register", "phone": "0812-3456-789"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	pushed := make(chan map[string]string, 1)
	go func() {
		var msg map[string]string
		if err := conn.ReadJSON(&msg); err == nil {
			pushed <- msg
		}
	}()

	inbound, err := json.Marshal(event.WhatsappInboundMessage{
		MessageID: "wamid-1",
		From:      "628123456789@c.us",
		Body:      "kode saya 482913",
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("marshal inbound: %v", err)
	}

	// Act
	// publish until the registration has landed; verification leaves the code in place
	var got map[string]string
	deadline := time.After(3 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for got == nil {
		if _, err := broker.Publish(ctx, event.WhatsappInboundMessageDestination, messaging.OutgoingMessage{Body: inbound}); err != nil {
			t.Fatalf("publish: %v", err)
		}
		select {
		case got = <-pushed:
		case <-tick.C:
		case <-deadline:
			t.Fatal("timed out waiting for otp_verified push")
		}
	}

	// Assert
	if got["type"] != "otp_verified" {
		t.Fatalf("push = %v", got)
	}
	select {
	case reply := <-replies:
		if reply.To != "628123456789@c.us" || reply.Text != "verified" || reply.ReplyTo != "wamid-1" {
			t.Fatalf("unexpected reply: %+v", reply)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for outbound reply")
	}
}

func TestAppIssueOTPValidation(t *testing.T) {

	// Arrange
	srv := startApp(t)

	// Act
	status, body := doJSON(t, http.MethodPost, srv.httpURL+"/webhook/otp", map[string]string{
		"phone": "0812345678",
		"otp":   "12ab",
	})

	// Assert
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d body=%s", status, body)
	}
}
