package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shandysiswandi/otpbridge/internal/pairing/entity"
	"github.com/shandysiswandi/otpbridge/internal/pkg/clock"
)

const DefaultTTL = 5 * time.Minute

// Credential keeps at most one code per identity in memory.
//
// Expiry is evaluated on read, so an entry past its ExpiresAt never verifies
// even if Sweep has not removed it yet.
type Credential struct {
	clock clock.Clocker
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[entity.Identity]entity.Credential
}

func New(clk clock.Clocker, ttl time.Duration) *Credential {
	if clk == nil {
		clk = clock.New()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Credential{
		clock:   clk,
		ttl:     ttl,
		entries: make(map[entity.Identity]entity.Credential),
	}
}

// Save stores code for identity, replacing any previous entry.
func (c *Credential) Save(_ context.Context, identity entity.Identity, code string) entity.Credential {
	now := c.clock.Now()
	cred := entity.Credential{
		Identity:  identity,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	c.entries[identity] = cred
	c.mu.Unlock()

	return cred
}

// Verify reports whether identity holds a live entry equal to code.
// The entry is left in place.
func (c *Credential) Verify(_ context.Context, identity entity.Identity, code string) bool {
	c.mu.RLock()
	cred, ok := c.entries[identity]
	c.mu.RUnlock()

	return ok && cred.Live(c.clock.Now()) && cred.Code == code
}

// Sweep removes expired entries and returns how many were removed.
func (c *Credential) Sweep(_ context.Context) int {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, cred := range c.entries {
		if !cred.Live(now) {
			delete(c.entries, id)
			removed++
		}
	}
	return removed
}

// Run calls Sweep every interval until ctx is done.
func (c *Credential) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := c.Sweep(ctx); n > 0 {
				slog.DebugContext(ctx, "swept expired credentials", "removed", n)
			}
		}
	}
}

func (c *Credential) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
