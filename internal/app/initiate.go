package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/rs/cors"
	"github.com/segmentio/kafka-go"
	"github.com/shandysiswandi/otpbridge/internal/pkg/clock"
	"github.com/shandysiswandi/otpbridge/internal/pkg/config"
	"github.com/shandysiswandi/otpbridge/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/otpbridge/internal/pkg/messaging"
	"github.com/shandysiswandi/otpbridge/internal/pkg/router"
	"github.com/shandysiswandi/otpbridge/internal/pkg/uid"
	"github.com/shandysiswandi/otpbridge/internal/pkg/validator"
	"google.golang.org/api/option"
)

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
		LogLevel:         a.config.GetString("instrument.log_level"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator
}

func (a *App) initMessaging() {
	driver := a.config.GetString("messaging.driver")

	natsOptions := []nats.Option{
		nats.Name(a.config.GetString("messaging.nats.name")),
		nats.MaxReconnects(a.config.GetInt("messaging.nats.max_reconnects")),
		nats.Timeout(a.config.GetSecond("messaging.nats.timeout_seconds")),
		nats.ReconnectWait(a.config.GetSecond("messaging.nats.reconnect_wait_seconds")),
		nats.PingInterval(a.config.GetSecond("messaging.nats.ping_interval_seconds")),
		nats.MaxPingsOutstanding(a.config.GetInt("messaging.nats.max_pings_outstanding")),
		nats.RetryOnFailedConnect(a.config.GetBool("messaging.nats.retry_on_failed_connect")),
	}
	if a.config.GetBool("messaging.nats.no_echo") {
		natsOptions = append(natsOptions, nats.NoEcho())
	}

	var kafkaDialer *kafka.Dialer
	if v := a.config.GetSecond("messaging.kafka.dial_timeout_seconds"); v > 0 {
		kafkaDialer = &kafka.Dialer{
			ClientID:  a.config.GetString("messaging.kafka.client_id"),
			Timeout:   v,
			DualStack: true,
		}
	}

	var pubsubOptions []option.ClientOption
	if v := strings.TrimSpace(a.config.GetString("messaging.pubsub.endpoint")); v != "" {
		pubsubOptions = append(pubsubOptions, option.WithEndpoint(v))
	}
	if a.config.GetBool("messaging.pubsub.without_auth") {
		pubsubOptions = append(pubsubOptions, option.WithoutAuthentication())
	}

	client, err := messaging.NewFromDriver(a.ctx, driver, messaging.FactoryOptions{
		NSQ: messaging.NSQConfig{
			ProducerAddr:         a.config.GetString("messaging.nsq.producer_addr"),
			ConsumerNSQDAddrs:    a.config.GetArray("messaging.nsq.consumer_nsqd_addrs"),
			ConsumerLookupdAddrs: a.config.GetArray("messaging.nsq.consumer_lookupd_addrs"),
			DialTimeout:          a.config.GetSecond("messaging.nsq.dial_timeout_seconds"),
			LookupdPollInterval:  a.config.GetSecond("messaging.nsq.lookupd_poll_interval_seconds"),
			MaxAttempts:          a.config.GetUint16("messaging.nsq.max_attempts"),
		},
		NATS: messaging.NATSConfig{
			URL:     a.config.GetString("messaging.nats.url"),
			Options: natsOptions,
		},
		Kafka: messaging.KafkaConfig{
			Brokers: a.config.GetArray("messaging.kafka.brokers"),
			Dialer:  kafkaDialer,
		},
		PubSub: messaging.PubSubConfig{
			ProjectID:     a.config.GetString("messaging.pubsub.project_id"),
			ClientOptions: pubsubOptions,
		},
	})
	if err != nil {
		slog.Error("failed to init messaging", "error", err, "driver", driver)
		os.Exit(1)
	}

	a.messaging = client
}

func (a *App) initHTTPServer() {
	routerConfig := router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	}
	a.router = router.NewRouter(routerConfig)
	a.wsRouter = router.NewRouter(routerConfig)

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}

	// origin checks for upgrades happen in the websocket upgrader
	a.wsServer = &http.Server{
		Addr:              a.config.GetString("app.server.ws.address"),
		Handler:           a.wsRouter,
		ReadHeaderTimeout: a.config.GetSecond("app.server.ws.read_header_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Messaging",
			fn: func(context.Context) error {
				return a.messaging.Close()
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
