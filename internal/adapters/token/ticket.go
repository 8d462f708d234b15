package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ghollosi/next-sub004/internal/domain/identity"
	apperrors "github.com/ghollosi/next-sub004/internal/errors"
	"github.com/ghollosi/next-sub004/internal/ports"
)

// TicketConfig holds selection ticket signing configuration. The ticket is
// stateless: everything needed to complete the selection is embedded in the
// signed payload, nothing is stored server-side.
type TicketConfig struct {
	Secret string
	Issuer string
}

type ticketClaims struct {
	Email      string               `json:"email"`
	Candidates []identity.Candidate `json:"candidates"`
	TokenUse   string               `json:"use"`
	jwt.RegisteredClaims
}

// TicketCodec signs and verifies selection tickets. Implements
// ports.TicketCodec.
type TicketCodec struct {
	cfg TicketConfig
}

var _ ports.TicketCodec = (*TicketCodec)(nil)

// NewTicketCodec validates the signing configuration up front.
func NewTicketCodec(cfg TicketConfig) (*TicketCodec, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, apperrors.SigningKey(fmt.Errorf("ticket secret must be at least %d bytes", minSecretLength))
	}
	return &TicketCodec{cfg: cfg}, nil
}

// Encode signs a ticket into an opaque string. The ticket ID is generated
// when absent so that an optional single-use guard has a stable key.
func (c *TicketCodec) Encode(t ports.Ticket) (string, error) {
	if len(t.Candidates) == 0 {
		return "", errors.New("ticket requires at least one candidate")
	}
	if t.ExpiresAt.IsZero() {
		return "", errors.New("ticket requires an expiry")
	}
	id := t.ID
	if id == "" {
		id = uuid.NewString()
	}

	claims := ticketClaims{
		Email:      t.Email,
		Candidates: t.Candidates,
		TokenUse:   useSelection,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.cfg.Issuer,
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(t.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.cfg.Secret))
	if err != nil {
		return "", apperrors.SigningKey(err)
	}
	return signed, nil
}

// Decode verifies signature and expiry and returns the embedded ticket.
// Every verification failure collapses into TicketInvalid; the caller must
// restart the login, there is no silent refresh.
func (c *TicketCodec) Decode(raw string) (ports.Ticket, error) {
	if raw == "" {
		return ports.Ticket{}, apperrors.TicketInvalid(errors.New("missing ticket"))
	}

	var claims ticketClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return []byte(c.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return ports.Ticket{}, apperrors.TicketInvalid(err)
	}
	if claims.TokenUse != useSelection {
		return ports.Ticket{}, apperrors.TicketInvalid(fmt.Errorf("unexpected token use %q", claims.TokenUse))
	}
	if len(claims.Candidates) == 0 {
		return ports.Ticket{}, apperrors.TicketInvalid(errors.New("ticket carries no candidates"))
	}

	return ports.Ticket{
		ID:         claims.ID,
		Email:      claims.Email,
		Candidates: claims.Candidates,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
