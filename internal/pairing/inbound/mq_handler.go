package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/otpbridge/internal/pairing/usecase"
	"github.com/shandysiswandi/otpbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/otpbridge/internal/pkg/messaging"
	"github.com/shandysiswandi/otpbridge/internal/pkg/uid"
	"github.com/shandysiswandi/otpbridge/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   ucConsumer
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	if cID := messaging.HeaderValue(headers, keyOfCorrelationID); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) WhatsappInboundMessage(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("pairing.inbound.mq").Start(ctx, "WhatsappInboundMessage")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: whatsapp inbound message", "msg_body", string(body))

	var payload event.WhatsappInboundMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of whatsapp inbound message", "msg_body", string(body), "error", err)
		return nil
	}
	if payload.From == "" {
		slog.WarnContext(ctx, "whatsapp inbound message without sender", "msg_body", string(body))
		return nil
	}

	if err := h.uc.HandleInboundMessage(ctx, usecase.InboundMessageInput{
		From:      payload.From,
		Body:      payload.Body,
		MessageID: payload.MessageID,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to handle whatsapp inbound message", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
