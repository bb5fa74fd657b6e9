package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(newHandler("otpbridge", []string{"otp", "Code"}, newJSONHandler(buf, slog.LevelDebug)))
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return line
}

func TestLogging(t *testing.T) {
	t.Run("AddsCorrelationAndService", func(t *testing.T) {

		// Arrange
		buf := &bytes.Buffer{}
		logger := newTestLogger(buf)
		ctx := SetCorrelationID(context.Background(), "cid-123")

		// Act
		logger.InfoContext(ctx, "hello")

		// Assert
		line := decodeLine(t, buf)
		if line[LogKeyCorrelationID] != "cid-123" {
			t.Fatalf("expected correlation id, got %v", line)
		}
		if line["service"] != "otpbridge" {
			t.Fatalf("expected service attribute, got %v", line)
		}
		if _, ok := line["severity"]; !ok {
			t.Fatalf("expected severity key, got %v", line)
		}
		if _, ok := line["ts"]; !ok {
			t.Fatalf("expected ts key, got %v", line)
		}
	})

	t.Run("MasksPlainAttributes", func(t *testing.T) {

		// Arrange
		buf := &bytes.Buffer{}
		logger := newTestLogger(buf)

		// Act
		logger.Info("issued", "otp", "482913", "phone", "62812@c.us")

		// Assert
		line := decodeLine(t, buf)
		if line["otp"] != "***" {
			t.Fatalf("expected otp masked, got %v", line["otp"])
		}
		if line["phone"] != "62812@c.us" {
			t.Fatalf("expected phone kept, got %v", line["phone"])
		}
	})

	t.Run("MasksJSONPayloads", func(t *testing.T) {

		// Arrange
		buf := &bytes.Buffer{}
		logger := newTestLogger(buf)

		// Act
		logger.Info("consume", "msg_body", `{"from":"62812@c.us","code":"482913"}`)

		// Assert
		line := decodeLine(t, buf)
		body, _ := line["msg_body"].(string)
		if strings.Contains(body, "482913") || !strings.Contains(body, `"code":"***"`) {
			t.Fatalf("expected code masked inside payload, got %q", body)
		}
	})

	t.Run("MasksWithAttrs", func(t *testing.T) {

		// Arrange
		buf := &bytes.Buffer{}
		logger := newTestLogger(buf).With("otp", "111111")

		// Act
		logger.Info("bound")

		// Assert
		if strings.Contains(buf.String(), "111111") {
			t.Fatalf("expected bound attribute masked, got %s", buf.String())
		}
	})
}

func TestCorrelationID(t *testing.T) {

	// Arrange
	ctx := context.Background()

	// Act
	empty := GetCorrelationID(ctx)
	got := GetCorrelationID(SetCorrelationID(ctx, "abc"))

	// Assert
	if empty != "" {
		t.Fatalf("expected empty correlation id, got %q", empty)
	}
	if got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
}

func TestNewNoop(t *testing.T) {

	// Arrange
	ins := NewNoop()

	// Act
	_, span := ins.Tracer("test").Start(context.Background(), "op")
	span.End()
	_, err := ins.Meter("test").Int64Counter("test.counter")

	// Assert
	if err != nil {
		t.Fatalf("noop counter: %v", err)
	}
	if err := ins.Shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}
