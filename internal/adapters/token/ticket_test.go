package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghollosi/next-sub004/internal/domain/identity"
	apperrors "github.com/ghollosi/next-sub004/internal/errors"
	"github.com/ghollosi/next-sub004/internal/ports"
)

func testCodec(t *testing.T) *TicketCodec {
	t.Helper()
	codec, err := NewTicketCodec(TicketConfig{Secret: testSecret, Issuer: "washauth"})
	require.NoError(t, err)
	return codec
}

func twoCandidateTicket(expiry time.Time) ports.Ticket {
	return ports.Ticket{
		Email: "b@x.com",
		Candidates: []identity.Candidate{
			{
				Kind:        identity.KindLocationStaff,
				AccountID:   "ls-1",
				Email:       "b@x.com",
				DisplayName: "Bea Staff",
				Scope:       identity.ScopeContext{TenantID: "t-1", LocationID: "loc-2", LocationName: "Debrecen"},
			},
			{
				Kind:        identity.KindCustomer,
				AccountID:   "cu-8",
				Email:       "b@x.com",
				DisplayName: "Bea",
			},
		},
		ExpiresAt: expiry,
	}
}

func TestTicketCodec_Roundtrip(t *testing.T) {
	codec := testCodec(t)
	expiry := time.Now().Add(5 * time.Minute)

	raw, err := codec.Encode(twoCandidateTicket(expiry))
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	decoded, err := codec.Decode(raw)
	require.NoError(t, err)

	assert.NotEmpty(t, decoded.ID, "an ID is generated when absent")
	assert.Equal(t, "b@x.com", decoded.Email)
	require.Len(t, decoded.Candidates, 2)
	assert.Equal(t, identity.KindLocationStaff, decoded.Candidates[0].Kind)
	assert.Equal(t, identity.KindCustomer, decoded.Candidates[1].Kind)
	assert.Equal(t, "loc-2", decoded.Candidates[0].Scope.LocationID)
	assert.WithinDuration(t, expiry, decoded.ExpiresAt, time.Second)
}

func TestTicketCodec_EncodeRejectsEmptyTickets(t *testing.T) {
	codec := testCodec(t)

	_, err := codec.Encode(ports.Ticket{ExpiresAt: time.Now().Add(time.Minute)})
	require.Error(t, err)

	tk := twoCandidateTicket(time.Time{})
	_, err = codec.Encode(tk)
	require.Error(t, err)
}

func TestTicketCodec_DecodeExpired(t *testing.T) {
	codec := testCodec(t)

	raw, err := codec.Encode(twoCandidateTicket(time.Now().Add(-time.Minute)))
	require.NoError(t, err)

	_, err = codec.Decode(raw)
	require.Error(t, err)
	assert.True(t, apperrors.IsTicketInvalid(err))
}

func TestTicketCodec_DecodeTampered(t *testing.T) {
	codec := testCodec(t)

	raw, err := codec.Encode(twoCandidateTicket(time.Now().Add(5 * time.Minute)))
	require.NoError(t, err)

	tampered := raw[:len(raw)-2] + "xx"
	_, err = codec.Decode(tampered)
	require.Error(t, err)
	assert.True(t, apperrors.IsTicketInvalid(err))
}

func TestTicketCodec_DecodeMissing(t *testing.T) {
	codec := testCodec(t)

	_, err := codec.Decode("")
	require.Error(t, err)
	assert.True(t, apperrors.IsTicketInvalid(err))
}

func TestTicketCodec_DecodeWrongSecret(t *testing.T) {
	codec := testCodec(t)
	other, err := NewTicketCodec(TicketConfig{Secret: "ffffffffffffffffffffffffffffffff", Issuer: "washauth"})
	require.NoError(t, err)

	raw, err := other.Encode(twoCandidateTicket(time.Now().Add(5 * time.Minute)))
	require.NoError(t, err)

	_, err = codec.Decode(raw)
	require.Error(t, err)
	assert.True(t, apperrors.IsTicketInvalid(err))
}

func TestTicketCodec_RejectsAccessTokenAsTicket(t *testing.T) {
	// Both families are signed with the same shared secret; the use marker
	// must keep an access token from doubling as a selection ticket.
	codec := testCodec(t)
	issuer, err := NewJWTIssuer(IssuerConfig{
		Secret:     testSecret,
		Issuer:     "washauth",
		AccessTTL:  time.Hour,
		RefreshTTL: 2 * time.Hour,
	})
	require.NoError(t, err)

	sess, err := issuer.Issue(identity.Candidate{
		Kind:      identity.KindCustomer,
		AccountID: "cu-1",
	})
	require.NoError(t, err)

	_, err = codec.Decode(sess.AccessToken)
	require.Error(t, err)
	assert.True(t, apperrors.IsTicketInvalid(err))
}

func TestTicketCodec_PreservesProvidedID(t *testing.T) {
	codec := testCodec(t)

	tk := twoCandidateTicket(time.Now().Add(5 * time.Minute))
	tk.ID = "ticket-123"

	raw, err := codec.Encode(tk)
	require.NoError(t, err)

	decoded, err := codec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "ticket-123", decoded.ID)
}
