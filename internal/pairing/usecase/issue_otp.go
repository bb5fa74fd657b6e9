package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpbridge/internal/pkg/goerror"
)

type IssueOTPInput struct {
	Phone string `validate:"required,phone"`
	OTP   string `validate:"required,otp"`
}

// IssueOTP remembers the caller-supplied OTP for the phone's identity,
// replacing any earlier one.
func (s *Usecase) IssueOTP(ctx context.Context, in IssueOTPInput) error {
	ctx, span := s.startSpan(ctx, "IssueOTP")
	defer span.End()

	in.Phone = strings.TrimSpace(in.Phone)
	in.OTP = strings.TrimSpace(in.OTP)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	identity, err := s.normalizer().Normalize(in.Phone)
	if err != nil {
		slog.WarnContext(ctx, "phone can not be normalized", "phone", in.Phone, "error", err)
		return goerror.NewInvalidInput(nil, "phone", "phone must be a valid phone number")
	}

	cred := s.repoCredential.Save(ctx, identity, in.OTP)
	s.metrics.issued.Add(ctx, 1)

	slog.InfoContext(ctx, "otp stored", "identity", identity.String(), "otp", in.OTP, "expires_at", cred.ExpiresAt)

	return nil
}
