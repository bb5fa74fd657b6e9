package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/otpbridge/internal/pairing"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.pairing.enabled") {
		if err := pairing.New(pairing.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Router:     a.router,
			WSRouter:   a.wsRouter,
		}); err != nil {
			slog.Error("failed to init module pairing", "error", err)
			os.Exit(1)
		}
	}
}
