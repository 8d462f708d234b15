package identity

// Package identity contains domain-level types for cross-kind account
// resolution. It is pure and free of framework/adapter concerns.

import "strings"

// Kind is one of the closed set of account categories that can independently
// own credentials for the same email address.
type Kind string

const (
	KindPlatformOperator Kind = "platform-operator"
	KindTenantAdmin      Kind = "tenant-admin"
	KindLocationStaff    Kind = "location-staff"
	KindPartnerContact   Kind = "partner-contact"
	KindCustomer         Kind = "customer"
)

// kindOrder is the fixed resolution priority. Redacted candidate lists are
// rendered in this order so repeated identical logins produce identical
// responses.
var kindOrder = []Kind{
	KindPlatformOperator,
	KindTenantAdmin,
	KindLocationStaff,
	KindPartnerContact,
	KindCustomer,
}

// AllKinds returns every account kind in resolution priority order.
// Callers must not mutate the returned slice.
func AllKinds() []Kind {
	out := make([]Kind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// Valid reports whether k is a member of the closed kind enumeration.
func (k Kind) Valid() bool {
	for _, known := range kindOrder {
		if k == known {
			return true
		}
	}
	return false
}

// Priority returns the fixed ordering rank of the kind, lower first.
// Unknown kinds sort last.
func (k Kind) Priority() int {
	for i, known := range kindOrder {
		if k == known {
			return i
		}
	}
	return len(kindOrder)
}

// ScopeContext carries the kind-dependent attributes that bound what a
// session is authorized to act upon. Fields are empty when not applicable
// to the kind.
type ScopeContext struct {
	TenantID     string `json:"tenantId,omitempty"`
	TenantName   string `json:"tenantName,omitempty"`
	TenantSlug   string `json:"tenantSlug,omitempty"`
	LocationID   string `json:"locationId,omitempty"`
	LocationName string `json:"locationName,omitempty"`
	PartnerID    string `json:"partnerId,omitempty"`
	PartnerName  string `json:"partnerName,omitempty"`
}

// Candidate is a verified, in-memory match for one login attempt. It lives
// only for the duration of a login transaction (or inside a selection
// ticket) and is never persisted.
//
// A candidate is fully determined by (Kind, AccountID).
type Candidate struct {
	Kind        Kind         `json:"kind"`
	AccountID   string       `json:"accountId"`
	Email       string       `json:"email"`
	DisplayName string       `json:"displayName"`
	Scope       ScopeContext `json:"scope"`
}

// Redacted is the externally visible view of a candidate, stripped down to
// what a caller needs to render a role choice. It must never grow password
// material or internal-only columns.
type Redacted struct {
	Role        Kind         `json:"role"`
	EntityID    string       `json:"entityId"`
	DisplayName string       `json:"displayName"`
	Scope       ScopeContext `json:"scope"`
}

// Redact strips a candidate down to its externally visible view.
func (c Candidate) Redact() Redacted {
	return Redacted{
		Role:        c.Kind,
		EntityID:    c.AccountID,
		DisplayName: c.DisplayName,
		Scope:       c.Scope,
	}
}

// RedactAll redacts a candidate list, preserving order.
func RedactAll(candidates []Candidate) []Redacted {
	out := make([]Redacted, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Redact())
	}
	return out
}

// Dedupe collapses candidates sharing the same (Kind, AccountID) pair,
// keeping the first occurrence. Order is preserved.
func Dedupe(candidates []Candidate) []Candidate {
	type key struct {
		kind Kind
		id   string
	}
	seen := make(map[key]struct{}, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		k := key{kind: c.Kind, id: c.AccountID}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}
	return out
}

// NormalizeEmail canonicalizes an email for lookup: trimmed and case-folded.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
