package inbound

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/otpbridge/internal/pairing/entity"
	"github.com/shandysiswandi/otpbridge/internal/pairing/usecase"
	"github.com/shandysiswandi/otpbridge/internal/pkg/messaging"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type fakeUC struct {
	mu sync.Mutex

	issueErr    error
	issued      []usecase.IssueOTPInput
	registerErr error
	registered  []usecase.RegisterChannelInput
	removed     []entity.Channel
	inboundErr  error
	inbound     []usecase.InboundMessageInput
	inboundCIDs []string
}

func (f *fakeUC) IssueOTP(_ context.Context, in usecase.IssueOTPInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.issued = append(f.issued, in)
	return f.issueErr
}

func (f *fakeUC) RegisterChannel(_ context.Context, in usecase.RegisterChannelInput) (entity.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.registerErr != nil {
		return "", f.registerErr
	}
	f.registered = append(f.registered, in)
	return entity.Identity(in.Phone + "@c.us"), nil
}

func (f *fakeUC) UnregisterChannel(_ context.Context, ch entity.Channel) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.removed = append(f.removed, ch)
}

func (f *fakeUC) HandleInboundMessage(ctx context.Context, in usecase.InboundMessageInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inbound = append(f.inbound, in)
	f.inboundCIDs = append(f.inboundCIDs, correlationID(ctx))
	return f.inboundErr
}

func (f *fakeUC) snapshot() (registered []usecase.RegisterChannelInput, removed []entity.Channel) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]usecase.RegisterChannelInput(nil), f.registered...), append([]entity.Channel(nil), f.removed...)
}

type fakeMessage struct {
	body    []byte
	headers []messaging.Header
}

func (m *fakeMessage) Body() []byte { return m.body }
func (m *fakeMessage) Headers() []messaging.Header { return m.headers }
func (m *fakeMessage) ID() string { return "1" }
func (m *fakeMessage) Topic() string { return "whatsapp_inbound_message" }
func (m *fakeMessage) Timestamp() time.Time { return time.Time{} }
func (m *fakeMessage) Ack(context.Context) error { return nil }
func (m *fakeMessage) Nack(context.Context) error { return nil }
