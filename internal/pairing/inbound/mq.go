package inbound

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/otpbridge/internal/pkg/config"
	"github.com/shandysiswandi/otpbridge/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpbridge/internal/pkg/instrument"
	"github.com/shandysiswandi/otpbridge/internal/pkg/messaging"
	"github.com/shandysiswandi/otpbridge/internal/pkg/uid"
	"github.com/shandysiswandi/otpbridge/internal/shared/event"
)

const (
	consumeRetryBase = 200 * time.Millisecond
	consumeRetryCap  = 5 * time.Second
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc ucConsumer,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.pairing.consumer_names")

	var consumers = []struct {
		name               string
		topic              string // destination where publisher sent message
		nsqConsumerName    string // for nsq
		natsConsumerName   string // for nats
		kafkaConsumerName  string // for kafka
		pubsubConsumerName string // for google pubsub
		handler            messaging.Handler
	}{
		{
			name:               event.WhatsappInboundMessageConsumerPairing,
			topic:              event.WhatsappInboundMessageDestination,
			nsqConsumerName:    event.WhatsappInboundMessageConsumerPairing,
			natsConsumerName:   event.WhatsappInboundMessageConsumerPairing,
			kafkaConsumerName:  event.WhatsappInboundMessageConsumerPairing,
			pubsubConsumerName: event.WhatsappInboundMessageConsumerPairing,
			handler:            mqHandler.WhatsappInboundMessage,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && !slices.Contains(enableConsumerNames, consumer.name) {
			continue
		}

		routine.Go(ctx, consumer.name, func(pCtx context.Context) error {
			slog.InfoContext(pCtx, "Running job for handling consumer", "consumer", consumer.name)
			return consumeWithRetry(pCtx, consumer.name, func(rCtx context.Context) error {
				return messenger.Consume(rCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.nsqConsumerName),
					messaging.WithQueueGroup(consumer.natsConsumerName),
					messaging.WithGroup(consumer.kafkaConsumerName),
					messaging.WithSubscription(consumer.pubsubConsumerName),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
					messaging.WithMaxInFlight(10),
				)
			})
		})
	}
}

// consumeWithRetry restarts consume with Fibonacci backoff until ctx is done
// or the messaging client is closed.
func consumeWithRetry(ctx context.Context, name string, consume func(ctx context.Context) error) error {
	backoff := retry.WithCappedDuration(consumeRetryCap, retry.NewFibonacci(consumeRetryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := consume(ctx)
		switch {
		case ctx.Err() != nil, err == nil, errors.Is(err, io.ErrClosedPipe):
			return nil
		case errors.Is(err, messaging.ErrSourceRequired), errors.Is(err, messaging.ErrHandlerRequired):
			return err
		}

		slog.WarnContext(ctx, "consumer stopped, reconnecting", "consumer", name, "error", err)
		return retry.RetryableError(err)
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}
