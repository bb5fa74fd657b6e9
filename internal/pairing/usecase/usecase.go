package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpbridge/internal/pairing/entity"
	"github.com/shandysiswandi/otpbridge/internal/pkg/config"
	"github.com/shandysiswandi/otpbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/otpbridge/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultReplyVerified = "✅ OTP kamu berhasil diverifikasi."
	DefaultReplyMismatch = "❌ OTP tidak cocok. Silakan coba lagi."
)

type ReplyMessage struct {
	To      entity.Identity
	Text    string
	ReplyTo string
}

type repoMessaging interface {
	PublishReply(ctx context.Context, msg ReplyMessage) error
}

type repoCredential interface {
	Save(ctx context.Context, identity entity.Identity, code string) entity.Credential
	Verify(ctx context.Context, identity entity.Identity, code string) bool
}

type repoChannel interface {
	Register(identity entity.Identity, ch entity.Channel)
	Unregister(ch entity.Channel) (entity.Identity, bool)
	Notify(ctx context.Context, identity entity.Identity, payload any) bool
}

type Usecase struct {
	repoCredential repoCredential
	repoChannel    repoChannel
	repoMessaging  repoMessaging
	cfg            config.Config
	validator      validator.Validator
	ins            instrument.Instrumentation
	metrics        metrics
}

type Dependency struct {
	RepoCredential repoCredential
	RepoChannel    repoChannel
	RepoMessaging  repoMessaging
	Config         config.Config
	Validator      validator.Validator
	Instrument     instrument.Instrumentation
}

type metrics struct {
	issued     metric.Int64Counter
	verified   metric.Int64Counter
	mismatched metric.Int64Counter
	delivered  metric.Int64Counter
	dropped    metric.Int64Counter
}

func NewPairing(dep Dependency) *Usecase {
	ins := dep.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	return &Usecase{
		repoCredential: dep.RepoCredential,
		repoChannel:    dep.RepoChannel,
		repoMessaging:  dep.RepoMessaging,
		cfg:            dep.Config,
		validator:      dep.Validator,
		ins:            ins,
		metrics:        newMetrics(ins.Meter("pairing.usecase")),
	}
}

func newMetrics(meter metric.Meter) metrics {
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			slog.Error("failed to create counter", "name", name, "error", err)
			return metricnoop.Int64Counter{}
		}
		return c
	}

	return metrics{
		issued:     counter("pairing.otp.issued", "Number of OTPs stored for pairing"),
		verified:   counter("pairing.otp.verified", "Number of inbound messages matching a stored OTP"),
		mismatched: counter("pairing.otp.mismatched", "Number of inbound codes not matching a stored OTP"),
		delivered:  counter("pairing.notify.delivered", "Number of verification events accepted by a channel"),
		dropped:    counter("pairing.notify.dropped", "Number of verification events without a live channel"),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("pairing.usecase").Start(ctx, name)
}

func (s *Usecase) configString(key, fallback string) string {
	if s.cfg == nil {
		return fallback
	}
	if v := strings.TrimSpace(s.cfg.GetString(key)); v != "" {
		return v
	}
	return fallback
}

func (s *Usecase) normalizer() entity.PhoneNormalizer {
	return entity.PhoneNormalizer{
		CountryCode: s.configString("modules.pairing.country_code", entity.DefaultCountryCode),
		Suffix:      s.configString("modules.pairing.identity_suffix", entity.DefaultIdentitySuffix),
	}
}
