package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/otpbridge/internal/pairing/usecase"
	"github.com/shandysiswandi/otpbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/otpbridge/internal/pkg/messaging"
	"github.com/shandysiswandi/otpbridge/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishReply(ctx context.Context, msg usecase.ReplyMessage) error {
	ctx, span := m.ins.Tracer("pairing.outbound.mq").Start(ctx, "PublishReply")
	defer span.End()

	body, err := json.Marshal(event.WhatsappOutboundReply{
		To:      msg.To.String(),
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.WhatsappOutboundReplyDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(msg.To),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
