package auth

// Package auth contains simple hand-written test doubles for the login
// ports. These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"
	"time"

	"github.com/ghollosi/next-sub004/internal/domain/identity"
	"github.com/ghollosi/next-sub004/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AccountDirectory = (*MemoryAccountDirectory)(nil)
	_ ports.PasswordVerifier = PlainVerifier{}
	_ ports.AuditSink        = (*CapturingAuditSink)(nil)
	_ ports.TicketGuard      = (*MemoryTicketGuard)(nil)
)

// MemoryAccountDirectory serves accounts from memory, keyed by kind. Lookups
// match on normalized email. Individual kinds can be failed or made to hang
// until context cancellation to exercise degraded resolution paths.
type MemoryAccountDirectory struct {
	mu       sync.Mutex
	accounts map[identity.Kind][]ports.AccountRecord
	failErr  map[identity.Kind]error
	hang     map[identity.Kind]bool
}

// NewMemoryAccountDirectory creates an empty in-memory directory.
func NewMemoryAccountDirectory() *MemoryAccountDirectory {
	return &MemoryAccountDirectory{
		accounts: make(map[identity.Kind][]ports.AccountRecord),
		failErr:  make(map[identity.Kind]error),
		hang:     make(map[identity.Kind]bool),
	}
}

// Add registers an account under the given kind.
func (d *MemoryAccountDirectory) Add(kind identity.Kind, rec ports.AccountRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.accounts[kind] = append(d.accounts[kind], rec)
}

// FailKind makes lookups of the given kind return err.
func (d *MemoryAccountDirectory) FailKind(kind identity.Kind, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failErr[kind] = err
}

// HangKind makes lookups of the given kind block until the context is done
// and then return the context error.
func (d *MemoryAccountDirectory) HangKind(kind identity.Kind) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.hang[kind] = true
}

func (d *MemoryAccountDirectory) FindActiveByEmail(ctx context.Context, kind identity.Kind, email string) ([]ports.AccountRecord, error) {
	d.mu.Lock()
	hang := d.hang[kind]
	err := d.failErr[kind]
	records := d.accounts[kind]
	d.mu.Unlock()

	if hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	normalized := identity.NormalizeEmail(email)
	var out []ports.AccountRecord
	for _, rec := range records {
		if identity.NormalizeEmail(rec.Email) == normalized {
			out = append(out, rec)
		}
	}
	return out, nil
}

// PlainVerifier treats the stored hash as the plaintext password itself.
// Never use outside tests.
type PlainVerifier struct{}

func (PlainVerifier) Verify(storedHash, password string) bool {
	return storedHash != "" && storedHash == password
}

// CapturingAuditSink records entries in memory for assertions. Setting Err
// makes every Record call fail with it.
type CapturingAuditSink struct {
	mu      sync.Mutex
	entries []ports.AuditEntry

	Err error
}

func (s *CapturingAuditSink) Record(_ context.Context, entry ports.AuditEntry) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// Entries returns a copy of everything recorded so far.
func (s *CapturingAuditSink) Entries() []ports.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.AuditEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// MemoryTicketGuard enforces single use in-process.
type MemoryTicketGuard struct {
	mu   sync.Mutex
	seen map[string]bool

	Err error
}

// NewMemoryTicketGuard creates an empty in-memory guard.
func NewMemoryTicketGuard() *MemoryTicketGuard {
	return &MemoryTicketGuard{seen: make(map[string]bool)}
}

func (g *MemoryTicketGuard) FirstUse(_ context.Context, ticketID string, _ time.Duration) (bool, error) {
	if g.Err != nil {
		return false, g.Err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seen[ticketID] {
		return false, nil
	}
	g.seen[ticketID] = true
	return true, nil
}
