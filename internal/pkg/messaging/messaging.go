package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrUnsupported is returned when a feature is not supported by the selected broker.
	ErrUnsupported = errors.New("pkgmessage: unsupported operation")
	// ErrDestinationRequired is returned when publishing without a topic/subject.
	ErrDestinationRequired = errors.New("pkgmessage: destination is required")
	// ErrSourceRequired is returned when consuming without a topic/subject/subscription.
	ErrSourceRequired = errors.New("pkgmessage: source is required")
	// ErrHandlerRequired is returned when Consume is called with a nil handler.
	ErrHandlerRequired = errors.New("pkgmessage: handler is required")
)

// Messaging is a broker-agnostic client that can publish and consume messages.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a destination (topic/subject).
type Publisher interface {
	// Publish sends a message to the destination.
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer consumes messages from a source (topic/subject/subscription).
type Consumer interface {
	// Consume blocks delivering messages from source to handler until ctx is
	// done or the underlying subscription fails.
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message.
//
// With auto-ack enabled a nil error acks the message and a non-nil error
// nacks it. Handlers may also respond explicitly through Message.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage represents a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte
	// Key is used by Kafka for partitioning.
	Key []byte
	// Headers are propagated as broker headers (NATS, Kafka) or attributes (Pub/Sub).
	Headers []Header
}

// Header is a key/value pair used for message headers.
type Header struct {
	// Key is the header name.
	Key string
	// Value is the header value.
	Value []byte
}

// HeaderValue returns the first value of key in headers, or "".
func HeaderValue(headers []Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// PublishResult carries optional broker-specific publish metadata.
type PublishResult struct {
	// MessageID is the broker-assigned message ID, when the broker returns one.
	MessageID string
	// Topic is the destination used for publishing.
	Topic string
	// Timestamp is when the broker accepted the message.
	Timestamp time.Time
}

// Message is a broker-agnostic received message.
type Message interface {
	// Body returns the message payload.
	Body() []byte
	// Headers returns message headers.
	Headers() []Header
	// ID returns the broker message ID when the broker assigns one.
	ID() string
	// Topic returns the topic or subject the message was received from.
	Topic() string
	// Timestamp returns the broker timestamp, or the receive time.
	Timestamp() time.Time

	// Ack acknowledges successful processing. Only the first Ack or Nack takes effect.
	Ack(ctx context.Context) error
	// Nack requests redelivery when the broker supports it.
	Nack(ctx context.Context) error
}
