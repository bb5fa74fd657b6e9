package pairing

import (
	"context"

	"github.com/shandysiswandi/otpbridge/internal/pairing/inbound"
	"github.com/shandysiswandi/otpbridge/internal/pairing/outbound/mq"
	"github.com/shandysiswandi/otpbridge/internal/pairing/outbound/registry"
	"github.com/shandysiswandi/otpbridge/internal/pairing/outbound/store"
	"github.com/shandysiswandi/otpbridge/internal/pairing/usecase"
	"github.com/shandysiswandi/otpbridge/internal/pkg/clock"
	"github.com/shandysiswandi/otpbridge/internal/pkg/config"
	"github.com/shandysiswandi/otpbridge/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/otpbridge/internal/pkg/messaging"
	"github.com/shandysiswandi/otpbridge/internal/pkg/router"
	"github.com/shandysiswandi/otpbridge/internal/pkg/uid"
	"github.com/shandysiswandi/otpbridge/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context
	Messaging  messaging.Messaging
	Config     config.Config
	Instrument instrument.Instrumentation
	UUID       uid.StringID
	Clock      clock.Clocker
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	Router     *router.Router
	WSRouter   *router.Router
}

func New(dep Dependency) error {
	credStore := store.New(dep.Clock, dep.Config.GetMinute("modules.pairing.otp_ttl_minutes"))
	channels := registry.New()
	mqPairing := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.NewPairing(usecase.Dependency{
		RepoCredential: credStore,
		RepoChannel:    channels,
		RepoMessaging:  mqPairing,
		Config:         dep.Config,
		Validator:      dep.Validator,
		Instrument:     dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	inbound.RegisterWSEndpoint(dep.Ctx, dep.WSRouter, dep.Config, uc)

	inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)

	interval := dep.Config.GetSecond("modules.pairing.sweep_interval_seconds")
	dep.Goroutine.Go(dep.Ctx, "pairing.credential.sweeper", func(ctx context.Context) error {
		return credStore.Run(ctx, interval)
	})

	return nil
}
