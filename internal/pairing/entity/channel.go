package entity

import "context"

// Channel is a realtime connection that accepts payloads without blocking.
type Channel interface {
	// Push queues payload for delivery and reports whether it was accepted.
	Push(ctx context.Context, payload any) bool
}
