package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/otpbridge/internal/pkg/clock"
	"github.com/shandysiswandi/otpbridge/internal/pkg/config"
	"github.com/shandysiswandi/otpbridge/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/otpbridge/internal/pkg/messaging"
	"github.com/shandysiswandi/otpbridge/internal/pkg/router"
	"github.com/shandysiswandi/otpbridge/internal/pkg/uid"
	"github.com/shandysiswandi/otpbridge/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID

	// resources
	messaging messaging.Messaging

	// server
	router     *router.Router
	wsRouter   *router.Router
	httpServer *http.Server
	wsServer   *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
