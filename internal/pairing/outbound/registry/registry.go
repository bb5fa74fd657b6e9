package registry

import (
	"context"
	"sync"

	"github.com/shandysiswandi/otpbridge/internal/pairing/entity"
)

type Channel = entity.Channel

// Registry maps identities to their live channel.
//
// Each identity has at most one channel and each channel serves at most one
// identity. Closing a replaced channel is left to its owner.
type Registry struct {
	mu         sync.RWMutex
	byIdentity map[entity.Identity]Channel
	byChannel  map[Channel]entity.Identity
}

func New() *Registry {
	return &Registry{
		byIdentity: make(map[entity.Identity]Channel),
		byChannel:  make(map[Channel]entity.Identity),
	}
}

// Register points identity at ch. A channel already registered under another
// identity is moved.
func (r *Registry) Register(identity entity.Identity, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byChannel[ch]; ok && prev != identity {
		delete(r.byIdentity, prev)
	}
	if old, ok := r.byIdentity[identity]; ok && old != ch {
		delete(r.byChannel, old)
	}

	r.byIdentity[identity] = ch
	r.byChannel[ch] = identity
}

// Unregister drops ch. A channel that was already replaced leaves the
// current registration of its former identity untouched.
func (r *Registry) Unregister(ch Channel) (entity.Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	identity, ok := r.byChannel[ch]
	if !ok {
		return "", false
	}
	delete(r.byChannel, ch)
	if r.byIdentity[identity] == ch {
		delete(r.byIdentity, identity)
	}
	return identity, true
}

// Notify pushes payload to the channel registered for identity.
func (r *Registry) Notify(ctx context.Context, identity entity.Identity, payload any) bool {
	r.mu.RLock()
	ch, ok := r.byIdentity[identity]
	r.mu.RUnlock()

	if !ok {
		return false
	}
	return ch.Push(ctx, payload)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byIdentity)
}
