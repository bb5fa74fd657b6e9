package messaging

import (
	"context"
	"io"
	"strconv"
	"sync"
	"time"
)

const memoryBufferSize = 64

// Memory is an in-process broker. Each queue group on a topic receives one
// copy of every message, delivered to one of its consumers in turn. It is
// meant for local runs and tests.
type Memory struct {
	mu     sync.Mutex
	closed bool
	seq    uint64
	done   chan struct{}
	topics map[string]map[string]*memoryGroup
}

type memoryGroup struct {
	next    int
	members []chan *memoryMessage
}

// NewMemory constructs an empty in-process broker.
func NewMemory() *Memory {
	return &Memory{
		done:   make(chan struct{}),
		topics: map[string]map[string]*memoryGroup{},
	}
}

// Close stops every running Consume call.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

// Publish delivers msg to every queue group subscribed to destination.
// Messages published to a topic without subscribers are dropped.
func (m *Memory) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return PublishResult{}, io.ErrClosedPipe
	}
	m.seq++
	now := time.Now()
	id := strconv.FormatUint(m.seq, 10)
	var targets []chan *memoryMessage
	for _, g := range m.topics[destination] {
		if len(g.members) == 0 {
			continue
		}
		targets = append(targets, g.members[g.next%len(g.members)])
		g.next++
	}
	m.mu.Unlock()

	for _, ch := range targets {
		mm := &memoryMessage{
			id:        id,
			topic:     destination,
			body:      append([]byte(nil), msg.Body...),
			headers:   append([]Header(nil), msg.Headers...),
			timestamp: now,
		}
		select {
		case ch <- mm:
		case <-ctx.Done():
			return PublishResult{}, ctx.Err()
		case <-m.done:
			return PublishResult{}, io.ErrClosedPipe
		}
	}

	return PublishResult{MessageID: id, Topic: destination, Timestamp: now}, nil
}

// Consume joins the queue group set by WithQueueGroup (or the default group)
// and blocks until ctx is done or the broker is closed.
func (m *Memory) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := validateConsume(ctx, source, handler); err != nil {
		return err
	}

	co := newConsumeOptions(opts...)
	ch := make(chan *memoryMessage, memoryBufferSize)
	if err := m.join(source, co.queueGroup, ch); err != nil {
		return err
	}
	defer m.leave(source, co.queueGroup, ch)

	var wg sync.WaitGroup
	defer wg.Wait()

	sem := make(chan struct{}, co.concurrency)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.done:
			return io.ErrClosedPipe
		case mm := <-ch:
			sem <- struct{}{}
			wg.Go(func() {
				defer func() { <-sem }()
				//nolint:errcheck // nothing to redeliver in memory
				_ = dispatch(ctx, "memory", mm, handler, co.autoAck)
			})
		}
	}
}

// HasSubscribers reports whether any consumer is attached to topic.
func (m *Memory) HasSubscribers(topic string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, g := range m.topics[topic] {
		if len(g.members) > 0 {
			return true
		}
	}
	return false
}

func (m *Memory) groupSize(topic, group string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if g, ok := m.topics[topic][group]; ok {
		return len(g.members)
	}
	return 0
}

func (m *Memory) join(topic, group string, ch chan *memoryMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return io.ErrClosedPipe
	}
	groups, ok := m.topics[topic]
	if !ok {
		groups = map[string]*memoryGroup{}
		m.topics[topic] = groups
	}
	g, ok := groups[group]
	if !ok {
		g = &memoryGroup{}
		groups[group] = g
	}
	g.members = append(g.members, ch)
	return nil
}

func (m *Memory) leave(topic, group string, ch chan *memoryMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.topics[topic][group]
	if !ok {
		return
	}
	for i, member := range g.members {
		if member == ch {
			g.members = append(g.members[:i], g.members[i+1:]...)
			break
		}
	}
	if len(g.members) == 0 {
		delete(m.topics[topic], group)
	}
}

type memoryMessage struct {
	responder

	id        string
	topic     string
	body      []byte
	headers   []Header
	timestamp time.Time
}

func (m *memoryMessage) Body() []byte { return m.body }

func (m *memoryMessage) Headers() []Header { return m.headers }

func (m *memoryMessage) ID() string { return m.id }

func (m *memoryMessage) Topic() string { return m.topic }

func (m *memoryMessage) Timestamp() time.Time { return m.timestamp }

func (m *memoryMessage) Ack(context.Context) error {
	m.claim()
	return nil
}

func (m *memoryMessage) Nack(context.Context) error {
	m.claim()
	return nil
}
