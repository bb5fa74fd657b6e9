package inbound

import (
	"context"

	"github.com/shandysiswandi/otpbridge/internal/pairing/entity"
	"github.com/shandysiswandi/otpbridge/internal/pairing/usecase"
)

type ucConsumer interface {
	HandleInboundMessage(ctx context.Context, in usecase.InboundMessageInput) error
}

type ucChannel interface {
	RegisterChannel(ctx context.Context, in usecase.RegisterChannelInput) (entity.Identity, error)
	UnregisterChannel(ctx context.Context, ch entity.Channel)
}

type uc interface {
	ucConsumer
	ucChannel

	IssueOTP(ctx context.Context, in usecase.IssueOTPInput) error
}
