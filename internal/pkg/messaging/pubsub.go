package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"google.golang.org/api/option"
)

// ErrPubSubProjectIDRequired is returned when a ProjectID is required but missing.
var ErrPubSubProjectIDRequired = errors.New("pkgmessage: pubsub project id is required")

// PubSubConfig configures the Google Pub/Sub implementation.
type PubSubConfig struct {
	// ProjectID is the Google Cloud project ID.
	ProjectID string
	// ClientOptions are used when creating the client, e.g. an emulator endpoint.
	ClientOptions []option.ClientOption
}

// PubSub is a messaging implementation backed by Google Pub/Sub.
//
// Headers travel as message attributes.
type PubSub struct {
	client *pubsub.Client

	mu         sync.Mutex
	closed     bool
	publishers map[string]*pubsub.Publisher
}

// NewPubSub constructs a PubSub messaging client.
func NewPubSub(ctx context.Context, cfg PubSubConfig) (*PubSub, error) {
	if cfg.ProjectID == "" {
		return nil, ErrPubSubProjectIDRequired
	}

	c, err := pubsub.NewClient(ctx, cfg.ProjectID, cfg.ClientOptions...)
	if err != nil {
		return nil, fmt.Errorf("pkgmessage: pubsub new client: %w", err)
	}

	return &PubSub{client: c, publishers: map[string]*pubsub.Publisher{}}, nil
}

// Close stops publishers and closes the Pub/Sub client.
func (p *PubSub) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	pubs := p.publishers
	p.publishers = nil
	p.mu.Unlock()

	for _, pub := range pubs {
		pub.Stop()
	}
	return p.client.Close()
}

// Publish sends a message to a Pub/Sub topic and waits for the server ID.
func (p *PubSub) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}

	pub, err := p.publisher(destination)
	if err != nil {
		return PublishResult{}, err
	}

	attrs := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		if h.Key != "" {
			attrs[h.Key] = string(h.Value)
		}
	}

	id, err := pub.Publish(ctx, &pubsub.Message{
		Data:        msg.Body,
		Attributes:  attrs,
		OrderingKey: string(msg.Key),
	}).Get(ctx)
	if err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: pubsub publish: %w", err)
	}

	return PublishResult{MessageID: id, Topic: destination, Timestamp: time.Now()}, nil
}

// Consume receives from a subscription. When WithSubscription is given,
// source is reported as the topic and the option names the subscription;
// otherwise source is the subscription itself.
func (p *PubSub) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(ctx, source, handler); err != nil {
		return err
	}
	if p.isClosed() {
		return io.ErrClosedPipe
	}

	co := newConsumeOptions(opts...)
	topic, subscription := "", source
	if co.subscription != "" {
		topic, subscription = source, co.subscription
	}

	sub := p.client.Subscriber(subscription)
	sub.ReceiveSettings.NumGoroutines = co.concurrency
	if co.maxInFlight > 0 {
		sub.ReceiveSettings.MaxOutstandingMessages = co.maxInFlight
	}

	return sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		//nolint:errcheck // ack/nack is applied by dispatch
		_ = dispatch(ctx, "pubsub", newPubSubMessage(topic, subscription, m), handler, co.autoAck)
	})
}

func (p *PubSub) publisher(topic string) (*pubsub.Publisher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, io.ErrClosedPipe
	}
	if pub, ok := p.publishers[topic]; ok {
		return pub, nil
	}
	pub := p.client.Publisher(topic)
	p.publishers[topic] = pub
	return pub, nil
}

func (p *PubSub) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

type pubsubMessage struct {
	responder

	topic        string
	subscription string
	msg          *pubsub.Message
}

func newPubSubMessage(topic, subscription string, msg *pubsub.Message) *pubsubMessage {
	return &pubsubMessage{topic: topic, subscription: subscription, msg: msg}
}

func (m *pubsubMessage) Body() []byte { return m.msg.Data }

func (m *pubsubMessage) Headers() []Header {
	out := make([]Header, 0, len(m.msg.Attributes))
	for k, v := range m.msg.Attributes {
		out = append(out, Header{Key: k, Value: []byte(v)})
	}
	return out
}

func (m *pubsubMessage) ID() string { return m.msg.ID }

func (m *pubsubMessage) Topic() string {
	if m.topic != "" {
		return m.topic
	}
	return m.subscription
}

func (m *pubsubMessage) Timestamp() time.Time { return m.msg.PublishTime }

func (m *pubsubMessage) Ack(context.Context) error {
	if m.claim() {
		m.msg.Ack()
	}
	return nil
}

func (m *pubsubMessage) Nack(context.Context) error {
	if m.claim() {
		m.msg.Nack()
	}
	return nil
}
