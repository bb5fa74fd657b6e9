package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrKafkaBrokersRequired is returned when no Kafka brokers are configured.
	ErrKafkaBrokersRequired = errors.New("pkgmessage: kafka brokers are required")
	// ErrKafkaGroupRequired is returned when a consumer group is required but not provided.
	ErrKafkaGroupRequired = errors.New("pkgmessage: kafka consumer group is required")
)

// KafkaConfig configures the Kafka implementation.
type KafkaConfig struct {
	// Brokers lists Kafka broker addresses.
	Brokers []string
	// Dialer configures broker connections. Nil uses the kafka-go default.
	Dialer *kafka.Dialer
}

// Kafka is a messaging implementation backed by kafka-go.
type Kafka struct {
	brokers []string
	dialer  *kafka.Dialer

	mu      sync.Mutex
	writers map[string]*kafka.Writer
	readers map[*kafka.Reader]struct{}
	closed  bool
}

// NewKafka constructs a Kafka messaging client.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{
		brokers: append([]string{}, cfg.Brokers...),
		dialer:  cfg.Dialer,
		writers: map[string]*kafka.Writer{},
		readers: map[*kafka.Reader]struct{}{},
	}, nil
}

// Close shuts down all Kafka readers and writers.
func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	writers, readers := k.writers, k.readers
	k.writers, k.readers = nil, nil
	k.mu.Unlock()

	var closeErr error
	for r := range readers {
		closeErr = errors.Join(closeErr, r.Close())
	}
	for _, w := range writers {
		closeErr = errors.Join(closeErr, w.Close())
	}
	return closeErr
}

// Publish sends a message to a Kafka topic.
func (k *Kafka) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}

	writer, err := k.writer(destination)
	if err != nil {
		return PublishResult{}, err
	}

	kmsg := kafka.Message{Key: msg.Key, Value: msg.Body, Time: time.Now()}
	for _, h := range msg.Headers {
		if h.Key != "" {
			kmsg.Headers = append(kmsg.Headers, kafka.Header{Key: h.Key, Value: h.Value})
		}
	}

	if err := writer.WriteMessages(ctx, kmsg); err != nil {
		return PublishResult{}, fmt.Errorf("pkgmessage: kafka publish: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: kmsg.Time}, nil
}

// Consume reads a Kafka topic as part of a consumer group and blocks until
// ctx is done or fetching fails.
func (k *Kafka) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(ctx, source, handler); err != nil {
		return err
	}

	co := newConsumeOptions(opts...)
	if co.group == "" {
		return ErrKafkaGroupRequired
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		GroupID:  co.group,
		Topic:    source,
		MaxBytes: 10e6,
		Dialer:   k.dialer,
	})
	if err := k.track(reader); err != nil {
		return errors.Join(err, reader.Close())
	}
	defer k.untrack(reader)

	msgCh := make(chan kafka.Message)
	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for m := range msgCh {
				if err := dispatch(ctx, "kafka", newKafkaMessage(reader, m), handler, co.autoAck); err != nil {
					slog.DebugContext(ctx, "kafka handler returned error", "topic", m.Topic, "offset", m.Offset, "error", err)
				}
			}
		})
	}

	var fetchErr error
	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			fetchErr = err
			break
		}
		msgCh <- m
	}
	close(msgCh)
	wg.Wait()

	closeErr := reader.Close()
	if errors.Is(fetchErr, context.Canceled) || errors.Is(fetchErr, context.DeadlineExceeded) {
		return errors.Join(fetchErr, closeErr)
	}
	return errors.Join(fmt.Errorf("pkgmessage: kafka consume: %w", fetchErr), closeErr)
}

func (k *Kafka) writer(topic string) (*kafka.Writer, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil, io.ErrClosedPipe
	}
	if w, ok := k.writers[topic]; ok {
		return w, nil
	}

	w := &kafka.Writer{
		Addr:     kafka.TCP(k.brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	if k.dialer != nil {
		w.Transport = &kafka.Transport{Dial: k.dialer.DialFunc, TLS: k.dialer.TLS, SASL: k.dialer.SASLMechanism}
	}
	k.writers[topic] = w
	return w, nil
}

func (k *Kafka) track(reader *kafka.Reader) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return io.ErrClosedPipe
	}
	k.readers[reader] = struct{}{}
	return nil
}

func (k *Kafka) untrack(reader *kafka.Reader) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.readers, reader)
}

type kafkaMessage struct {
	responder

	reader *kafka.Reader
	msg    kafka.Message
}

func newKafkaMessage(reader *kafka.Reader, msg kafka.Message) *kafkaMessage {
	return &kafkaMessage{reader: reader, msg: msg}
}

func (m *kafkaMessage) Body() []byte { return m.msg.Value }

func (m *kafkaMessage) Headers() []Header {
	out := make([]Header, 0, len(m.msg.Headers))
	for _, h := range m.msg.Headers {
		out = append(out, Header{Key: h.Key, Value: h.Value})
	}
	return out
}

func (m *kafkaMessage) ID() string {
	return fmt.Sprintf("%s/%d/%d", m.msg.Topic, m.msg.Partition, m.msg.Offset)
}

func (m *kafkaMessage) Topic() string { return m.msg.Topic }

func (m *kafkaMessage) Timestamp() time.Time { return m.msg.Time }

// Ack commits the message offset for the consumer group.
func (m *kafkaMessage) Ack(ctx context.Context) error {
	if !m.claim() {
		return nil
	}
	if err := m.reader.CommitMessages(ctx, m.msg); err != nil {
		return fmt.Errorf("pkgmessage: kafka commit: %w", err)
	}
	return nil
}

// Nack leaves the offset uncommitted so the message is redelivered after a rebalance.
func (m *kafkaMessage) Nack(context.Context) error {
	m.claim()
	return nil
}
