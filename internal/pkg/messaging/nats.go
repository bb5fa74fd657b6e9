package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// ErrNATSURLRequired is returned when the NATS server URL is missing.
var ErrNATSURLRequired = errors.New("pkgmessage: nats url is required")

// NATSConfig configures the NATS implementation.
type NATSConfig struct {
	// URL is the NATS server address.
	URL string

	// Options are passed to the NATS client.
	Options []nats.Option
}

// NATS is a messaging implementation backed by core NATS.
type NATS struct {
	conn *nats.Conn

	mu     sync.Mutex
	subs   []*nats.Subscription
	closed bool
}

// NewNATS constructs a NATS messaging client.
func NewNATS(cfg NATSConfig) (*NATS, error) {
	if cfg.URL == "" {
		return nil, ErrNATSURLRequired
	}

	conn, err := nats.Connect(cfg.URL, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("pkgmessage: nats connect: %w", err)
	}

	return &NATS{conn: conn}, nil
}

// Close drains subscriptions and closes the NATS connection.
func (n *NATS) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	subs := append([]*nats.Subscription{}, n.subs...)
	n.mu.Unlock()

	var closeErr error
	for _, sub := range subs {
		if err := sub.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			closeErr = errors.Join(closeErr, err)
		}
	}

	if err := n.conn.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		closeErr = errors.Join(closeErr, err)
	}
	n.conn.Close()
	return closeErr
}

// Publish sends a message to a NATS subject.
func (n *NATS) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}

	nmsg := nats.NewMsg(destination)
	nmsg.Data = msg.Body
	for _, h := range msg.Headers {
		if h.Key != "" {
			nmsg.Header.Add(h.Key, string(h.Value))
		}
	}

	if err := n.conn.PublishMsg(nmsg); err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: nats publish: %w", err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: nats flush: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

// Consume subscribes to a NATS subject (in a queue group when one is set)
// and blocks until ctx is done.
func (n *NATS) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(ctx, source, handler); err != nil {
		return err
	}

	co := newConsumeOptions(opts...)
	msgCh := make(chan *nats.Msg, co.concurrency)

	sub, err := n.conn.QueueSubscribe(source, co.queueGroup, func(m *nats.Msg) {
		select {
		case msgCh <- m:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("pkgmessage: nats subscribe: %w", err)
	}
	if co.maxInFlight > 0 {
		//nolint:errcheck // pending limits are advisory
		_ = sub.SetPendingLimits(co.maxInFlight, -1)
	}

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for m := range msgCh {
				//nolint:errcheck // handler errors are logged by the handler, nack is best effort
				_ = dispatch(ctx, "nats", newNATSMessage(m, time.Now()), handler, co.autoAck)
			}
		})
	}

	stop := func(cause error) error {
		uerr := sub.Drain()
		if errors.Is(uerr, nats.ErrConnectionClosed) {
			uerr = nil
		}
		close(msgCh)
		wg.Wait()
		return errors.Join(cause, uerr)
	}

	if err := n.track(sub); err != nil {
		return stop(err)
	}
	if err := n.conn.FlushWithContext(ctx); err != nil {
		return stop(fmt.Errorf("pkgmessage: nats flush: %w", err))
	}

	<-ctx.Done()
	return stop(ctx.Err())
}

func (n *NATS) track(sub *nats.Subscription) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return io.ErrClosedPipe
	}
	n.subs = append(n.subs, sub)
	return nil
}

type natsMessage struct {
	responder

	msg        *nats.Msg
	receivedAt time.Time
}

func newNATSMessage(msg *nats.Msg, receivedAt time.Time) *natsMessage {
	return &natsMessage{msg: msg, receivedAt: receivedAt}
}

func (m *natsMessage) Body() []byte { return m.msg.Data }

func (m *natsMessage) Headers() []Header {
	if len(m.msg.Header) == 0 {
		return nil
	}
	out := make([]Header, 0, len(m.msg.Header))
	for k, vals := range m.msg.Header {
		for _, v := range vals {
			out = append(out, Header{Key: k, Value: []byte(v)})
		}
	}
	return out
}

func (m *natsMessage) ID() string { return m.msg.Header.Get(nats.MsgIdHdr) }

func (m *natsMessage) Topic() string { return m.msg.Subject }

func (m *natsMessage) Timestamp() time.Time { return m.receivedAt }

// Ack is a no-op for core NATS subscriptions.
func (m *natsMessage) Ack(context.Context) error {
	m.claim()
	return nil
}

// Nack is a no-op for core NATS subscriptions, there is no redelivery.
func (m *natsMessage) Nack(context.Context) error {
	m.claim()
	return nil
}
