package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/otpbridge/internal/pairing/entity"
	"go.opentelemetry.io/otel/attribute"
)

type InboundMessageInput struct {
	From      string
	Body      string
	MessageID string
}

// HandleInboundMessage answers a chat message that carries a code and
// notifies the frontend channel when the code matches.
func (s *Usecase) HandleInboundMessage(ctx context.Context, in InboundMessageInput) error {
	ctx, span := s.startSpan(ctx, "HandleInboundMessage")
	defer span.End()

	from := entity.Identity(in.From)
	res := s.MatchInbound(ctx, from, in.Body)
	span.SetAttributes(attribute.Bool("pairing.candidate_found", res.Found), attribute.Bool("pairing.matched", res.Matched))

	if !res.Found {
		slog.DebugContext(ctx, "inbound message without otp candidate", "from", in.From, "message_id", in.MessageID)
		return nil
	}

	if !res.Matched {
		s.metrics.mismatched.Add(ctx, 1)
		slog.InfoContext(ctx, "inbound otp mismatch", "from", in.From, "message_id", in.MessageID)
		s.reply(ctx, from, in.MessageID, s.configString("modules.pairing.reply.mismatch", DefaultReplyMismatch))
		return nil
	}

	s.metrics.verified.Add(ctx, 1)
	slog.InfoContext(ctx, "inbound otp verified", "from", in.From, "message_id", in.MessageID)
	s.reply(ctx, from, in.MessageID, s.configString("modules.pairing.reply.verified", DefaultReplyVerified))

	if s.repoChannel.Notify(ctx, from, entity.NewOTPVerifiedEvent()) {
		s.metrics.delivered.Add(ctx, 1)
	} else {
		s.metrics.dropped.Add(ctx, 1)
		slog.WarnContext(ctx, "no live channel for verified identity", "identity", in.From)
	}

	return nil
}

func (s *Usecase) reply(ctx context.Context, to entity.Identity, replyTo, text string) {
	if err := s.repoMessaging.PublishReply(ctx, ReplyMessage{To: to, Text: text, ReplyTo: replyTo}); err != nil {
		slog.ErrorContext(ctx, "failed to publish chat reply", "to", to.String(), "error", err)
	}
}
