package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T) (*TicketGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTicketGuard(client), mr
}

func TestFirstUse_FirstPresentation(t *testing.T) {
	guard, _ := newTestGuard(t)

	first, err := guard.FirstUse(context.Background(), "ticket-1", time.Minute)

	require.NoError(t, err)
	assert.True(t, first)
}

func TestFirstUse_SecondPresentationIsRejected(t *testing.T) {
	guard, _ := newTestGuard(t)
	ctx := context.Background()

	first, err := guard.FirstUse(ctx, "ticket-1", time.Minute)
	require.NoError(t, err)
	require.True(t, first)

	second, err := guard.FirstUse(ctx, "ticket-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, second)
}

func TestFirstUse_DistinctTicketsAreIndependent(t *testing.T) {
	guard, _ := newTestGuard(t)
	ctx := context.Background()

	first, err := guard.FirstUse(ctx, "ticket-1", time.Minute)
	require.NoError(t, err)
	require.True(t, first)

	other, err := guard.FirstUse(ctx, "ticket-2", time.Minute)
	require.NoError(t, err)
	assert.True(t, other)
}

func TestFirstUse_KeyExpiresWithTicket(t *testing.T) {
	guard, mr := newTestGuard(t)
	ctx := context.Background()

	first, err := guard.FirstUse(ctx, "ticket-1", 30*time.Second)
	require.NoError(t, err)
	require.True(t, first)

	// After the ticket's own lifetime the mark is gone; at that point the
	// codec rejects the ticket anyway, so nothing leaks through.
	mr.FastForward(31 * time.Second)

	again, err := guard.FirstUse(ctx, "ticket-1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, again)
}

func TestFirstUse_EmptyTicketID(t *testing.T) {
	guard, _ := newTestGuard(t)

	_, err := guard.FirstUse(context.Background(), "", time.Minute)

	require.Error(t, err)
}

func TestFirstUse_NonPositiveTTLDefaults(t *testing.T) {
	guard, mr := newTestGuard(t)

	first, err := guard.FirstUse(context.Background(), "ticket-1", 0)
	require.NoError(t, err)
	require.True(t, first)

	ttl := mr.TTL("ticket-used:ticket-1")
	assert.Equal(t, defaultGuardTTL, ttl)
}
