package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghollosi/next-sub004/internal/domain/identity"
	apperrors "github.com/ghollosi/next-sub004/internal/errors"
	mocksauth "github.com/ghollosi/next-sub004/internal/mocks/auth"
	"github.com/ghollosi/next-sub004/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newResolver(dir ports.AccountDirectory, timeout time.Duration) *CredentialResolver {
	return NewCredentialResolver(ResolverOptions{
		Directory:     dir,
		Verifier:      mocksauth.PlainVerifier{},
		LookupTimeout: timeout,
		Logger:        discardLogger(),
	})
}

func TestResolve_EmptyInputRejected(t *testing.T) {
	t.Parallel()

	resolver := newResolver(mocksauth.NewMemoryAccountDirectory(), 0)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret"},
		{"whitespace email", "   ", "secret"},
		{"empty password", "pat@example.com", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := resolver.Resolve(context.Background(), tc.email, tc.password)
			assert.True(t, apperrors.IsInvalidCredentials(err))
		})
	}
}

func TestResolve_NoMatchYieldsGenericRejection(t *testing.T) {
	t.Parallel()

	dir := mocksauth.NewMemoryAccountDirectory()
	dir.Add(identity.KindCustomer, ports.AccountRecord{
		AccountID:    "cus-1",
		Email:        "pat@example.com",
		PasswordHash: "right",
	})
	resolver := newResolver(dir, 0)

	// Wrong password and unknown email must be indistinguishable.
	_, errWrongPassword := resolver.Resolve(context.Background(), "pat@example.com", "wrong")
	_, errUnknownEmail := resolver.Resolve(context.Background(), "nobody@example.com", "right")

	require.True(t, apperrors.IsInvalidCredentials(errWrongPassword))
	require.True(t, apperrors.IsInvalidCredentials(errUnknownEmail))
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestResolve_CollectsAcrossKindsInPriorityOrder(t *testing.T) {
	t.Parallel()

	dir := mocksauth.NewMemoryAccountDirectory()
	dir.Add(identity.KindCustomer, ports.AccountRecord{
		AccountID:    "cus-1",
		Email:        "pat@example.com",
		DisplayName:  "Pat (customer)",
		PasswordHash: "secret",
	})
	dir.Add(identity.KindPlatformOperator, ports.AccountRecord{
		AccountID:    "op-1",
		Email:        "pat@example.com",
		DisplayName:  "Pat (operator)",
		PasswordHash: "secret",
	})
	dir.Add(identity.KindTenantAdmin, ports.AccountRecord{
		AccountID:    "adm-1",
		Email:        "pat@example.com",
		DisplayName:  "Pat (admin)",
		PasswordHash: "other-password",
	})
	resolver := newResolver(dir, 0)

	got, err := resolver.Resolve(context.Background(), "PAT@example.com", "secret")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Fixed priority: platform-operator before customer, regardless of
	// completion order of the concurrent lookups.
	assert.Equal(t, identity.KindPlatformOperator, got[0].Kind)
	assert.Equal(t, "op-1", got[0].AccountID)
	assert.Equal(t, identity.KindCustomer, got[1].Kind)
	assert.Equal(t, "cus-1", got[1].AccountID)
}

func TestResolve_DuplicateRecordsDeduped(t *testing.T) {
	t.Parallel()

	dir := mocksauth.NewMemoryAccountDirectory()
	rec := ports.AccountRecord{
		AccountID:    "cus-1",
		Email:        "pat@example.com",
		PasswordHash: "secret",
	}
	dir.Add(identity.KindCustomer, rec)
	dir.Add(identity.KindCustomer, rec)
	resolver := newResolver(dir, 0)

	got, err := resolver.Resolve(context.Background(), "pat@example.com", "secret")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestResolve_SkipsAccountsWithoutCredential(t *testing.T) {
	t.Parallel()

	dir := mocksauth.NewMemoryAccountDirectory()
	dir.Add(identity.KindCustomer, ports.AccountRecord{
		AccountID: "cus-invited",
		Email:     "pat@example.com",
		// No password hash: invited but never activated.
	})
	resolver := newResolver(dir, 0)

	_, err := resolver.Resolve(context.Background(), "pat@example.com", "")
	assert.True(t, apperrors.IsInvalidCredentials(err))

	_, err = resolver.Resolve(context.Background(), "pat@example.com", "anything")
	assert.True(t, apperrors.IsInvalidCredentials(err))
}

func TestResolve_FailedKindDegradesOnlyItself(t *testing.T) {
	t.Parallel()

	dir := mocksauth.NewMemoryAccountDirectory()
	dir.Add(identity.KindCustomer, ports.AccountRecord{
		AccountID:    "cus-1",
		Email:        "pat@example.com",
		PasswordHash: "secret",
	})
	dir.FailKind(identity.KindTenantAdmin, errors.New("connection refused"))
	resolver := newResolver(dir, 0)

	got, err := resolver.Resolve(context.Background(), "pat@example.com", "secret")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, identity.KindCustomer, got[0].Kind)
}

func TestResolve_SlowKindTimesOutWithoutBlockingOthers(t *testing.T) {
	t.Parallel()

	dir := mocksauth.NewMemoryAccountDirectory()
	dir.Add(identity.KindCustomer, ports.AccountRecord{
		AccountID:    "cus-1",
		Email:        "pat@example.com",
		PasswordHash: "secret",
	})
	dir.HangKind(identity.KindPartnerContact)
	resolver := newResolver(dir, 50*time.Millisecond)

	start := time.Now()
	got, err := resolver.Resolve(context.Background(), "pat@example.com", "secret")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestResolve_AllKindsDegradedStillGenericRejection(t *testing.T) {
	t.Parallel()

	dir := mocksauth.NewMemoryAccountDirectory()
	for _, kind := range identity.AllKinds() {
		dir.FailKind(kind, errors.New("store down"))
	}
	resolver := newResolver(dir, 0)

	_, err := resolver.Resolve(context.Background(), "pat@example.com", "secret")
	assert.True(t, apperrors.IsInvalidCredentials(err))
}
