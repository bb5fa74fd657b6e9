package messaging

import "testing"

func TestNewConsumeOptions(t *testing.T) {

	// Arrange
	opts := []ConsumeOption{
		WithConcurrency(0),
		nil,
		WithAutoAck(true),
		WithGroup("g"),
		WithChannel("c"),
		WithQueueGroup("q"),
		WithSubscription("s"),
		WithMaxInFlight(10),
	}

	// Act
	co := newConsumeOptions(opts...)

	// Assert
	if co.concurrency != 1 {
		t.Fatalf("concurrency = %d, want 1", co.concurrency)
	}
	if !co.autoAck || co.group != "g" || co.channel != "c" || co.queueGroup != "q" || co.subscription != "s" || co.maxInFlight != 10 {
		t.Fatalf("unexpected options: %+v", co)
	}
}

func TestHeaderValue(t *testing.T) {

	// Arrange
	headers := []Header{{Key: "a", Value: []byte("1")}, {Key: "cID", Value: []byte("x")}, {Key: "cID", Value: []byte("y")}}

	// Act
	got := HeaderValue(headers, "cID")
	missing := HeaderValue(headers, "b")

	// Assert
	if got != "x" || missing != "" {
		t.Fatalf("got %q missing %q", got, missing)
	}
}

func TestNewFromDriverUnknown(t *testing.T) {

	// Act
	_, err := NewFromDriver(t.Context(), "carrier-pigeon", FactoryOptions{})

	// Assert
	if err == nil {
		t.Fatal("expected unknown driver error")
	}
}
