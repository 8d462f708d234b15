package ports

// Package ports defines interfaces (hexagonal ports) for the credential
// resolution and session issuance flow. Implementations live in
// internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	"github.com/ghollosi/next-sub004/internal/domain/identity"
)

// AccountRecord is the raw per-kind row returned by the directory before
// password verification. PasswordHash is empty when the account has no
// usable credential yet (e.g., invited but not activated); such accounts
// are skipped by the resolver, never treated as errors.
type AccountRecord struct {
	AccountID    string
	Email        string
	DisplayName  string
	PasswordHash string
	Scope        identity.ScopeContext
}

// AccountDirectory looks up active, non-deleted accounts of a single kind
// by normalized email. It is the narrow read contract over the per-kind
// account stores.
type AccountDirectory interface {
	FindActiveByEmail(ctx context.Context, kind identity.Kind, email string) ([]AccountRecord, error)
}

// PasswordVerifier compares a plaintext password against a stored salted
// hash in constant time.
type PasswordVerifier interface {
	Verify(storedHash, password string) bool
}

// AuditEvent classifies a terminal login outcome.
type AuditEvent string

const (
	AuditLoginFailed    AuditEvent = "login_failed"
	AuditLoginSucceeded AuditEvent = "login_succeeded"
	AuditRoleSelected   AuditEvent = "role_selected"
)

// AuditEntry is one append-only record of a terminal login outcome. It must
// never carry a password or password hash.
type AuditEntry struct {
	ID         string
	Event      AuditEvent
	Email      string
	Kind       identity.Kind // empty on failure
	AccountID  string        // empty on failure
	Reason     string        // coarse failure reason, empty on success
	RemoteAddr string
	UserAgent  string
	OccurredAt time.Time
}

// AuditSink appends login outcome records. Entries are never mutated or
// deleted by this subsystem.
type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// Session is the externally visible result of a resolved login: a token
// pair bound to exactly one candidate identity, plus the informational
// post-login redirect hint.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime, seconds
	RedirectURL  string
}

// SessionIssuer mints a token pair scoped to exactly one candidate
// identity. Failure indicates signing-key misconfiguration and is fatal for
// the request, not a credentials problem.
type SessionIssuer interface {
	Issue(candidate identity.Candidate) (Session, error)
}

// Ticket is the decoded form of a selection ticket: the full candidate set
// of one ambiguous login, self-contained and stateless.
type Ticket struct {
	ID         string
	Email      string
	Candidates []identity.Candidate
	ExpiresAt  time.Time
}

// TicketCodec encodes tickets into signed opaque strings and verifies and
// decodes them back. Decode must reject expired or tampered input.
type TicketCodec interface {
	Encode(t Ticket) (string, error)
	Decode(raw string) (Ticket, error)
}

// TicketGuard optionally enforces single-use selection tickets. The default
// deployment runs without one; re-presenting a valid ticket is then
// idempotent by design.
type TicketGuard interface {
	// FirstUse marks the ticket ID as used and reports whether this was the
	// first presentation.
	FirstUse(ctx context.Context, ticketID string, ttl time.Duration) (bool, error)
}
