package config

import "time"

// AuthConfig groups login flow and token configuration.
type AuthConfig struct {
	// TokenSecret signs access tokens, refresh tokens, and selection
	// tickets. Must be at least 32 bytes; the issuer rejects anything
	// shorter at startup.
	TokenSecret string `env:"AUTH_TOKEN_SECRET,required"`

	// Issuer is the JWT "iss" claim on everything this service signs.
	Issuer string `env:"AUTH_ISSUER" envDefault:"washauth"`

	// AccessTTL is the access token lifetime.
	AccessTTL time.Duration `env:"AUTH_ACCESS_TTL" envDefault:"1h"`

	// RefreshTTL is the refresh token lifetime. Must exceed AccessTTL.
	RefreshTTL time.Duration `env:"AUTH_REFRESH_TTL" envDefault:"720h"`

	// TicketTTL is the selection ticket lifetime. Tickets are short-lived:
	// they only bridge the gap between the two login phases.
	TicketTTL time.Duration `env:"AUTH_TICKET_TTL" envDefault:"5m"`

	// LookupTimeout bounds each per-kind account store lookup. A kind that
	// misses the deadline degrades to "no match" for that kind only.
	LookupTimeout time.Duration `env:"AUTH_LOOKUP_TIMEOUT" envDefault:"3s"`

	// AuditTimeout bounds the best-effort audit write.
	AuditTimeout time.Duration `env:"AUTH_AUDIT_TIMEOUT" envDefault:"2s"`

	// SingleUseTickets enables the Redis-backed single-use ticket guard.
	// Off by default: re-presenting a valid ticket is then idempotent.
	SingleUseTickets bool `env:"AUTH_SINGLE_USE_TICKETS" envDefault:"false"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.AccessTTL <= 0 {
		a.AccessTTL = time.Hour
	}
	if a.RefreshTTL <= a.AccessTTL {
		a.RefreshTTL = 720 * time.Hour
	}
	if a.TicketTTL <= 0 {
		a.TicketTTL = 5 * time.Minute
	}
	if a.LookupTimeout <= 0 {
		a.LookupTimeout = 3 * time.Second
	}
	if a.AuditTimeout <= 0 {
		a.AuditTimeout = 2 * time.Second
	}
}
