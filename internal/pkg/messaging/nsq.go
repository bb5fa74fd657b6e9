package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

var (
	// ErrNSQChannelRequired is returned when the channel is empty.
	ErrNSQChannelRequired = errors.New("pkgmessage: nsq channel is required")
	// ErrNSQProducerAddrRequired is returned when the producer address is missing.
	ErrNSQProducerAddrRequired = errors.New("pkgmessage: nsq producer address is required")
	// ErrNSQConsumerAddrsRequired is returned when no NSQD/lookupd consumer addresses are configured.
	ErrNSQConsumerAddrsRequired = errors.New("pkgmessage: nsq consumer nsqd/lookupd addresses are required")
)

// NSQConfig configures the NSQ implementation.
type NSQConfig struct {
	// ProducerAddr is the NSQD address for publishing.
	ProducerAddr string
	// ConsumerNSQDAddrs lists NSQD addresses for consumers.
	ConsumerNSQDAddrs []string
	// ConsumerLookupdAddrs lists lookupd addresses for consumers.
	ConsumerLookupdAddrs []string
	// DialTimeout bounds connecting to nsqd. Zero keeps the go-nsq default.
	DialTimeout time.Duration
	// LookupdPollInterval is how often consumers query lookupd. Zero keeps the go-nsq default.
	LookupdPollInterval time.Duration
	// MaxAttempts is how often a message is redelivered before it is discarded. Zero keeps the go-nsq default.
	MaxAttempts uint16
}

// NSQ is a messaging implementation backed by NSQ.
//
// NSQ has no message headers, so OutgoingMessage.Headers are dropped on publish.
type NSQ struct {
	producer *nsq.Producer
	cfg      NSQConfig

	nsqdAddrs    []string
	lookupdAddrs []string

	mu        sync.Mutex
	consumers []*nsq.Consumer
	closed    bool
}

// NewNSQ constructs an NSQ messaging client.
func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	n := &NSQ{
		cfg:          cfg,
		nsqdAddrs:    append([]string{}, cfg.ConsumerNSQDAddrs...),
		lookupdAddrs: append([]string{}, cfg.ConsumerLookupdAddrs...),
	}

	if cfg.ProducerAddr != "" {
		p, err := nsq.NewProducer(cfg.ProducerAddr, n.config())
		if err != nil {
			return nil, fmt.Errorf("pkgmessage: nsq new producer: %w", err)
		}
		p.SetLoggerLevel(nsq.LogLevelError)
		n.producer = p
	}

	return n, nil
}

// Close stops NSQ consumers and the producer.
func (n *NSQ) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	consumers := append([]*nsq.Consumer{}, n.consumers...)
	n.mu.Unlock()

	for _, c := range consumers {
		stopNSQConsumer(c)
	}
	if n.producer != nil {
		n.producer.Stop()
	}
	return nil
}

// Publish sends a message to an NSQ topic.
func (n *NSQ) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}
	if n.producer == nil {
		return PublishResult{}, ErrNSQProducerAddrRequired
	}

	if err := n.producer.Publish(destination, msg.Body); err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: nsq publish: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

// Consume starts consuming messages from an NSQ topic/channel and blocks
// until ctx is done or the consumer stops.
func (n *NSQ) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(ctx, source, handler); err != nil {
		return err
	}
	if len(n.nsqdAddrs) == 0 && len(n.lookupdAddrs) == 0 {
		return ErrNSQConsumerAddrsRequired
	}

	co := newConsumeOptions(opts...)
	if co.channel == "" {
		return ErrNSQChannelRequired
	}

	ccfg := n.config()
	ccfg.MaxInFlight = max(co.maxInFlight, co.concurrency)

	consumer, err := nsq.NewConsumer(source, co.channel, ccfg)
	if err != nil {
		return fmt.Errorf("pkgmessage: nsq new consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelError)

	consumer.AddConcurrentHandlers(nsq.HandlerFunc(func(m *nsq.Message) error {
		m.DisableAutoResponse()
		return dispatch(ctx, "nsq", newNSQMessage(source, m), handler, co.autoAck)
	}), co.concurrency)

	if err := n.track(consumer); err != nil {
		stopNSQConsumer(consumer)
		return err
	}

	if len(n.lookupdAddrs) > 0 {
		err = consumer.ConnectToNSQLookupds(n.lookupdAddrs)
	} else {
		err = consumer.ConnectToNSQDs(n.nsqdAddrs)
	}
	if err != nil {
		stopNSQConsumer(consumer)
		return fmt.Errorf("pkgmessage: nsq connect: %w", err)
	}

	select {
	case <-ctx.Done():
		stopNSQConsumer(consumer)
		return ctx.Err()
	case <-consumer.StopChan:
		return nil
	}
}

func (n *NSQ) config() *nsq.Config {
	c := nsq.NewConfig()
	if n.cfg.DialTimeout > 0 {
		c.DialTimeout = n.cfg.DialTimeout
	}
	if n.cfg.LookupdPollInterval > 0 {
		c.LookupdPollInterval = n.cfg.LookupdPollInterval
	}
	if n.cfg.MaxAttempts > 0 {
		c.MaxAttempts = n.cfg.MaxAttempts
	}
	return c
}

func (n *NSQ) track(consumer *nsq.Consumer) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return io.ErrClosedPipe
	}
	n.consumers = append(n.consumers, consumer)
	return nil
}

func stopNSQConsumer(consumer *nsq.Consumer) {
	consumer.Stop()
	<-consumer.StopChan
}

type nsqMessage struct {
	responder

	topic string
	msg   *nsq.Message
}

func newNSQMessage(topic string, msg *nsq.Message) *nsqMessage {
	return &nsqMessage{topic: topic, msg: msg}
}

func (m *nsqMessage) Body() []byte { return m.msg.Body }

func (m *nsqMessage) Headers() []Header { return nil }

func (m *nsqMessage) ID() string { return string(m.msg.ID[:]) }

func (m *nsqMessage) Topic() string { return m.topic }

func (m *nsqMessage) Timestamp() time.Time { return time.Unix(0, m.msg.Timestamp) }

func (m *nsqMessage) Ack(context.Context) error {
	if m.claim() {
		m.msg.Finish()
	}
	return nil
}

func (m *nsqMessage) Nack(context.Context) error {
	if m.claim() {
		m.msg.Requeue(-1)
	}
	return nil
}
