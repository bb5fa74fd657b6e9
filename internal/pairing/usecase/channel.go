package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpbridge/internal/pairing/entity"
	"github.com/shandysiswandi/otpbridge/internal/pkg/goerror"
)

var ErrChannelRequired = errors.New("pairing: channel is required")

type RegisterChannelInput struct {
	Phone   string `validate:"required,phone"`
	Channel entity.Channel `validate:"-"`
}

// RegisterChannel binds ch to the identity of the phone so verification
// events for it reach the frontend.
func (s *Usecase) RegisterChannel(ctx context.Context, in RegisterChannelInput) (entity.Identity, error) {
	ctx, span := s.startSpan(ctx, "RegisterChannel")
	defer span.End()

	if in.Channel == nil {
		return "", goerror.NewServer(ErrChannelRequired)
	}

	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validator.Validate(in); err != nil {
		return "", goerror.NewInvalidInput(err)
	}

	identity, err := s.normalizer().Normalize(in.Phone)
	if err != nil {
		return "", goerror.NewInvalidInput(nil, "phone", "phone must be a valid phone number")
	}

	s.repoChannel.Register(identity, in.Channel)
	slog.InfoContext(ctx, "channel registered", "identity", identity.String())

	return identity, nil
}

// UnregisterChannel forgets ch. It is a no-op when ch was replaced or never registered.
func (s *Usecase) UnregisterChannel(ctx context.Context, ch entity.Channel) {
	if identity, ok := s.repoChannel.Unregister(ch); ok {
		slog.InfoContext(ctx, "channel unregistered", "identity", identity.String())
	}
}
