package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shandysiswandi/otpbridge/internal/pairing/usecase"
	"github.com/shandysiswandi/otpbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/otpbridge/internal/pkg/messaging"
	"github.com/shandysiswandi/otpbridge/internal/shared/event"
)

type capturePublisher struct {
	err         error
	destination string
	msg         messaging.OutgoingMessage
}

func (c *capturePublisher) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	c.destination = destination
	c.msg = msg
	return messaging.PublishResult{Topic: destination}, c.err
}

func TestPublishReply(t *testing.T) {
	t.Run("EncodesReplyWithCorrelationID", func(t *testing.T) {

		// Arrange
		pub := &capturePublisher{}
		m := NewMessaging(pub, instrument.NewNoop())
		ctx := instrument.SetCorrelationID(context.Background(), "cid-9")

		// Act
		err := m.PublishReply(ctx, usecase.ReplyMessage{To: "62812@c.us", Text: "ok", ReplyTo: "wamid-1"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pub.destination != event.WhatsappOutboundReplyDestination {
			t.Fatalf("destination = %q", pub.destination)
		}
		var body event.WhatsappOutboundReply
		if err := json.Unmarshal(pub.msg.Body, &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.To != "62812@c.us" || body.Text != "ok" || body.ReplyTo != "wamid-1" {
			t.Fatalf("body = %+v", body)
		}
		if messaging.HeaderValue(pub.msg.Headers, keyOfCorrelationID) != "cid-9" {
			t.Fatalf("headers = %v", pub.msg.Headers)
		}
	})

	t.Run("ReturnsPublishError", func(t *testing.T) {

		// Arrange
		pub := &capturePublisher{err: errors.New("down")}
		m := NewMessaging(pub, instrument.NewNoop())

		// Act
		err := m.PublishReply(context.Background(), usecase.ReplyMessage{To: "62812@c.us", Text: "ok"})

		// Assert
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
