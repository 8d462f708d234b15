package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ghollosi/next-sub004/internal/domain/identity"
	apperrors "github.com/ghollosi/next-sub004/internal/errors"
	"github.com/ghollosi/next-sub004/internal/observability/metrics"
	"github.com/ghollosi/next-sub004/internal/observability/statsd"
	"github.com/ghollosi/next-sub004/internal/ports"
)

const defaultLookupTimeout = 3 * time.Second

// ResolverOptions groups dependencies for CredentialResolver.
type ResolverOptions struct {
	Directory     ports.AccountDirectory
	Verifier      ports.PasswordVerifier
	LookupTimeout time.Duration
	Logger        *slog.Logger
	Metrics       statsd.Sink
}

// CredentialResolver resolves one email/password pair against every account
// kind and collects the kinds that verified. It holds no mutable state and
// is safe for concurrent use.
type CredentialResolver struct {
	directory     ports.AccountDirectory
	verifier      ports.PasswordVerifier
	lookupTimeout time.Duration
	logger        *slog.Logger
	metrics       statsd.Sink
}

// NewCredentialResolver constructs a new CredentialResolver.
func NewCredentialResolver(opts ResolverOptions) *CredentialResolver {
	timeout := opts.LookupTimeout
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialResolver{
		directory:     opts.Directory,
		verifier:      opts.Verifier,
		lookupTimeout: timeout,
		logger:        logger,
		metrics:       opts.Metrics,
	}
}

// Resolve normalizes the email, fans out across every account kind
// concurrently, verifies the password per returned account, and returns the
// verified candidates in fixed kind-priority order.
//
// Every kind is always evaluated; finding a match in one kind must not
// short-circuit the rest, or legitimate multi-kind ambiguity gets hidden.
// Password verification is deliberately slow, so the fan-out keeps total
// latency at the max of per-kind costs rather than their sum.
//
// Zero verified candidates yields the single generic InvalidCredentials —
// regardless of whether the email was unknown, the password wrong, or the
// email known under other kinds only.
func (r *CredentialResolver) Resolve(ctx context.Context, email, password string) ([]identity.Candidate, error) {
	normalized := identity.NormalizeEmail(email)
	if normalized == "" || password == "" {
		return nil, apperrors.InvalidCredentials()
	}

	kinds := identity.AllKinds()
	perKind := make([][]identity.Candidate, len(kinds))

	var g errgroup.Group
	for i, kind := range kinds {
		g.Go(func() error {
			perKind[i] = r.resolveKind(ctx, kind, normalized, password)
			return nil
		})
	}
	// Goroutines never return errors; a degraded kind contributes zero
	// candidates and is logged inside resolveKind.
	_ = g.Wait()

	merged := make([]identity.Candidate, 0, 2)
	for _, candidates := range perKind {
		merged = append(merged, candidates...)
	}
	merged = identity.Dedupe(merged)

	if len(merged) == 0 {
		return nil, apperrors.InvalidCredentials()
	}
	return merged, nil
}

// resolveKind looks up one kind and verifies every returned account.
// Store failures and timeouts degrade to "no match for that kind"; they
// must never abort the overall resolution, and never silently: each one is
// logged and counted.
func (r *CredentialResolver) resolveKind(
	ctx context.Context,
	kind identity.Kind,
	email, password string,
) []identity.Candidate {
	kctx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	records, err := r.directory.FindActiveByEmail(kctx, kind, email)
	if err != nil {
		r.logger.WarnContext(ctx, "account lookup degraded",
			"kind", kind,
			"error", err,
		)
		metrics.EmitLookupDegraded(r.metrics, kind)
		return nil
	}

	var out []identity.Candidate
	for _, rec := range records {
		if rec.PasswordHash == "" {
			// Not yet activated: skipped, not an error.
			continue
		}
		if !r.verifier.Verify(rec.PasswordHash, password) {
			continue
		}
		out = append(out, identity.Candidate{
			Kind:        kind,
			AccountID:   rec.AccountID,
			Email:       rec.Email,
			DisplayName: rec.DisplayName,
			Scope:       rec.Scope,
		})
	}
	return out
}
