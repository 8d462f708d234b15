package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghollosi/next-sub004/internal/domain/identity"
	"github.com/ghollosi/next-sub004/internal/ports"
)

func TestMemoryAccountDirectory_MatchesNormalizedEmail(t *testing.T) {
	t.Parallel()

	dir := NewMemoryAccountDirectory()
	dir.Add(identity.KindCustomer, ports.AccountRecord{
		AccountID: "cus-1",
		Email:     "Pat@Example.com",
	})
	dir.Add(identity.KindTenantAdmin, ports.AccountRecord{
		AccountID: "adm-1",
		Email:     "pat@example.com",
	})

	got, err := dir.FindActiveByEmail(context.Background(), identity.KindCustomer, "  PAT@example.COM ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "cus-1", got[0].AccountID)

	got, err = dir.FindActiveByEmail(context.Background(), identity.KindCustomer, "other@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryAccountDirectory_HangKindRespectsContext(t *testing.T) {
	t.Parallel()

	dir := NewMemoryAccountDirectory()
	dir.HangKind(identity.KindCustomer)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := dir.FindActiveByEmail(ctx, identity.KindCustomer, "pat@example.com")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryTicketGuard_SingleUse(t *testing.T) {
	t.Parallel()

	guard := NewMemoryTicketGuard()

	first, err := guard.FirstUse(context.Background(), "t-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := guard.FirstUse(context.Background(), "t-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, again)
}
