package redis

// Package redis provides the optional single-use enforcement for selection
// tickets. The base protocol is stateless and idempotent on replay; this
// guard is the opt-in stricter mode for deployments that want a presented
// ticket to burn after first use.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghollosi/next-sub004/internal/ports"
)

const defaultGuardTTL = time.Minute

// TicketGuard marks ticket IDs as used with a TTL matching the ticket's
// remaining lifetime. Implements ports.TicketGuard.
type TicketGuard struct {
	client redis.UniversalClient
	prefix string
}

var _ ports.TicketGuard = (*TicketGuard)(nil)

// NewTicketGuard creates a new TicketGuard.
func NewTicketGuard(client redis.UniversalClient) *TicketGuard {
	return &TicketGuard{
		client: client,
		prefix: "ticket-used:",
	}
}

// NewTicketGuardWithPrefix creates a TicketGuard with a custom key prefix.
func NewTicketGuardWithPrefix(client redis.UniversalClient, prefix string) *TicketGuard {
	return &TicketGuard{
		client: client,
		prefix: prefix,
	}
}

// FirstUse atomically marks the ticket as used and reports whether this
// presentation was the first. The key expires with the ticket, so the
// guard holds no state beyond the ticket's own lifetime.
func (g *TicketGuard) FirstUse(ctx context.Context, ticketID string, ttl time.Duration) (bool, error) {
	if ticketID == "" {
		return false, errors.New("ticket ID cannot be empty")
	}
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}

	first, err := g.client.SetNX(ctx, g.prefix+ticketID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return first, nil
}
