package metrics

import (
	"time"

	"github.com/ghollosi/next-sub004/internal/domain/identity"
	"github.com/ghollosi/next-sub004/internal/observability/statsd"
)

// Login outcome values for metric tagging.
const (
	OutcomeSuccess   = "success"
	OutcomeAmbiguous = "ambiguous"
	OutcomeRejected  = "rejected"
	OutcomeSelected  = "selected"
)

// LoginOutcome captures one terminal (or ambiguous) login result for
// metric emission.
type LoginOutcome struct {
	Outcome    string
	Kind       identity.Kind // empty unless a single identity was resolved
	Candidates int
	Duration   time.Duration
}

// EmitLoginOutcome emits standardised login flow metrics.
func EmitLoginOutcome(sink statsd.Sink, in LoginOutcome) {
	if sink == nil {
		return
	}

	tags := map[string]string{"outcome": in.Outcome}
	if in.Kind != "" {
		tags["kind"] = string(in.Kind)
	}

	sink.Count("login.outcome", 1, tags)
	if in.Duration > 0 {
		sink.Timing("login.duration", in.Duration, tags)
	}
	if in.Candidates > 1 {
		sink.Count("login.ambiguous_candidates", int64(in.Candidates), nil)
	}
}

// EmitLookupDegraded counts a per-kind account store failure that was
// absorbed as "no match for that kind".
func EmitLookupDegraded(sink statsd.Sink, kind identity.Kind) {
	if sink == nil {
		return
	}
	sink.Count("login.lookup_degraded", 1, map[string]string{"kind": string(kind)})
}

// EmitAuditFailure counts a best-effort audit write that did not land.
// This is the operational side channel for audit sink unavailability.
func EmitAuditFailure(sink statsd.Sink) {
	if sink == nil {
		return
	}
	sink.Count("login.audit_write_failed", 1, nil)
}
