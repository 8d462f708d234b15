package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ghollosi/next-sub004/internal/domain/identity"
	apperrors "github.com/ghollosi/next-sub004/internal/errors"
	"github.com/ghollosi/next-sub004/internal/observability/metrics"
	"github.com/ghollosi/next-sub004/internal/observability/statsd"
	"github.com/ghollosi/next-sub004/internal/ports"
)

const (
	defaultTicketTTL    = 5 * time.Minute
	defaultAuditTimeout = 2 * time.Second
)

// LoginServiceOptions groups dependencies for LoginService.
type LoginServiceOptions struct {
	Resolver *CredentialResolver
	Issuer   ports.SessionIssuer
	Tickets  ports.TicketCodec
	Audit    ports.AuditSink
	// Guard enables single-use ticket enforcement when non-nil. Without
	// one, re-presenting a valid ticket is idempotent by design.
	Guard        ports.TicketGuard
	TicketTTL    time.Duration
	AuditTimeout time.Duration
	Logger       *slog.Logger
	Metrics      statsd.Sink
}

// LoginService orchestrates the two-step login flow: credential resolution,
// ambiguity mediation, session issuance, and audit recording. Stateless
// between requests.
type LoginService struct {
	resolver     *CredentialResolver
	issuer       ports.SessionIssuer
	tickets      ports.TicketCodec
	audit        ports.AuditSink
	guard        ports.TicketGuard
	ticketTTL    time.Duration
	auditTimeout time.Duration
	logger       *slog.Logger
	metrics      statsd.Sink
}

// NewLoginService constructs a new LoginService.
func NewLoginService(opts LoginServiceOptions) *LoginService {
	ticketTTL := opts.TicketTTL
	if ticketTTL <= 0 {
		ticketTTL = defaultTicketTTL
	}
	auditTimeout := opts.AuditTimeout
	if auditTimeout <= 0 {
		auditTimeout = defaultAuditTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &LoginService{
		resolver:     opts.Resolver,
		issuer:       opts.Issuer,
		tickets:      opts.Tickets,
		audit:        opts.Audit,
		guard:        opts.Guard,
		ticketTTL:    ticketTTL,
		auditTimeout: auditTimeout,
		logger:       logger,
		metrics:      opts.Metrics,
	}
}

// RequestOrigin carries caller network context for audit entries.
type RequestOrigin struct {
	RemoteAddr string
	UserAgent  string
}

// LoginInput groups parameters for Login.
type LoginInput struct {
	Email    string
	Password string
	Origin   RequestOrigin
}

// LoginResult is either an immediate session (exactly one kind verified) or
// an ambiguous outcome carrying a selection ticket and the redacted
// candidate list.
type LoginResult struct {
	MultipleRoles   bool
	SelectedRole    *identity.Redacted
	Session         *ports.Session
	AvailableRoles  []identity.Redacted
	SelectionTicket string
}

// Login resolves credentials across all account kinds and mediates the
// result:
//
//	zero candidates  → InvalidCredentials (audited as a failed login)
//	one candidate    → immediate session (audited as a success)
//	two or more      → selection ticket, no session, no audit entry yet —
//	                   the transaction only reaches a terminal outcome at
//	                   SelectRole or not at all
func (s *LoginService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	start := time.Now()
	normalized := identity.NormalizeEmail(in.Email)

	candidates, err := s.resolver.Resolve(ctx, in.Email, in.Password)
	if err != nil {
		s.writeAudit(ctx, ports.AuditEntry{
			Event:      ports.AuditLoginFailed,
			Email:      normalized,
			Reason:     "credentials_rejected",
			RemoteAddr: in.Origin.RemoteAddr,
			UserAgent:  in.Origin.UserAgent,
		})
		metrics.EmitLoginOutcome(s.metrics, metrics.LoginOutcome{
			Outcome:  metrics.OutcomeRejected,
			Duration: time.Since(start),
		})
		return nil, err
	}

	if len(candidates) == 1 {
		chosen := candidates[0]
		sess, issueErr := s.issuer.Issue(chosen)
		if issueErr != nil {
			// No resolution outcome exists when signing fails; this is an
			// operational failure, logged instead of audited.
			s.logger.ErrorContext(ctx, "session issuance failed", "error", issueErr)
			return nil, issueErr
		}

		s.writeAudit(ctx, ports.AuditEntry{
			Event:      ports.AuditLoginSucceeded,
			Email:      normalized,
			Kind:       chosen.Kind,
			AccountID:  chosen.AccountID,
			RemoteAddr: in.Origin.RemoteAddr,
			UserAgent:  in.Origin.UserAgent,
		})
		metrics.EmitLoginOutcome(s.metrics, metrics.LoginOutcome{
			Outcome:  metrics.OutcomeSuccess,
			Kind:     chosen.Kind,
			Duration: time.Since(start),
		})

		redacted := chosen.Redact()
		return &LoginResult{
			SelectedRole: &redacted,
			Session:      &sess,
		}, nil
	}

	raw, encodeErr := s.tickets.Encode(ports.Ticket{
		ID:         uuid.NewString(),
		Email:      normalized,
		Candidates: candidates,
		ExpiresAt:  time.Now().Add(s.ticketTTL),
	})
	if encodeErr != nil {
		s.logger.ErrorContext(ctx, "selection ticket encoding failed", "error", encodeErr)
		return nil, encodeErr
	}

	metrics.EmitLoginOutcome(s.metrics, metrics.LoginOutcome{
		Outcome:    metrics.OutcomeAmbiguous,
		Candidates: len(candidates),
		Duration:   time.Since(start),
	})

	return &LoginResult{
		MultipleRoles:   true,
		AvailableRoles:  identity.RedactAll(candidates),
		SelectionTicket: raw,
	}, nil
}

// SelectRoleInput groups parameters for SelectRole.
type SelectRoleInput struct {
	Role            identity.Kind
	EntityID        string
	SelectionTicket string
	Origin          RequestOrigin
}

// SelectRoleResult contains the session for the chosen identity.
type SelectRoleResult struct {
	Session      ports.Session
	SelectedRole identity.Redacted
}

// SelectRole completes an ambiguous login. The ticket's signature and
// expiry are verified before its contents are trusted; an invalid or
// expired ticket means restarting the login from scratch, never a silent
// refresh. The chosen (role, entityId) pair must come from the ticket's own
// embedded candidate set — a pair that is a valid account elsewhere in the
// system but was not offered is rejected.
func (s *LoginService) SelectRole(ctx context.Context, in SelectRoleInput) (*SelectRoleResult, error) {
	ticket, err := s.tickets.Decode(in.SelectionTicket)
	if err != nil {
		return nil, err
	}

	if s.guard != nil {
		first, guardErr := s.guard.FirstUse(ctx, ticket.ID, time.Until(ticket.ExpiresAt))
		if guardErr != nil {
			// The guard is opt-in hardening, not an availability
			// dependency; fall back to the stateless semantics.
			s.logger.WarnContext(ctx, "ticket guard unavailable", "error", guardErr)
		} else if !first {
			return nil, apperrors.TicketInvalid(errors.New("ticket already used"))
		}
	}

	var chosen *identity.Candidate
	for i := range ticket.Candidates {
		c := ticket.Candidates[i]
		if c.Kind == in.Role && c.AccountID == in.EntityID {
			chosen = &c
			break
		}
	}
	if chosen == nil {
		return nil, apperrors.SelectionNotOffered()
	}

	sess, issueErr := s.issuer.Issue(*chosen)
	if issueErr != nil {
		s.logger.ErrorContext(ctx, "session issuance failed", "error", issueErr)
		return nil, issueErr
	}

	s.writeAudit(ctx, ports.AuditEntry{
		Event:      ports.AuditRoleSelected,
		Email:      ticket.Email,
		Kind:       chosen.Kind,
		AccountID:  chosen.AccountID,
		RemoteAddr: in.Origin.RemoteAddr,
		UserAgent:  in.Origin.UserAgent,
	})
	metrics.EmitLoginOutcome(s.metrics, metrics.LoginOutcome{
		Outcome: metrics.OutcomeSelected,
		Kind:    chosen.Kind,
	})

	return &SelectRoleResult{
		Session:      sess,
		SelectedRole: chosen.Redact(),
	}, nil
}

// writeAudit records one terminal outcome, best-effort. The write is
// detached from request cancellation: a caller disconnect must not lose an
// audit record for an outcome that already happened. A failed write is
// surfaced to operations via log and metric, never to the caller.
func (s *LoginService) writeAudit(ctx context.Context, entry ports.AuditEntry) {
	actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.auditTimeout)
	defer cancel()

	if err := s.audit.Record(actx, entry); err != nil {
		s.logger.ErrorContext(ctx, "audit write failed",
			"event", entry.Event,
			"error", err,
		)
		metrics.EmitAuditFailure(s.metrics)
	}
}
