package token

// Package token implements session issuance and the selection ticket codec
// on top of golang-jwt. One canonical claims shape covers every account
// kind; downstream authorization switches on the kind claim instead of
// dispatching on per-kind token schemas.

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

// Token-use markers keep the three token families from being replayed as
// one another.
const (
	useAccess    = "access"
	useRefresh   = "refresh"
	useSelection = "role-selection"
)

const minSecretLength = 32

// IssuerConfig holds token issuance configuration.
type IssuerConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// SessionClaims is the canonical claims shape shared by access and refresh
// tokens, uniform across heterogeneous account kinds.
type SessionClaims struct {
	Kind        identity.Kind         `json:"kind"`
	DisplayName string                `json:"displayName"`
	Scope       identity.ScopeContext `json:"scope"`
	TokenUse    string                `json:"use"`
	jwt.RegisteredClaims
}

// JWTIssuer mints access/refresh token pairs bound to exactly one candidate
// identity. Implements ports.SessionIssuer.
type JWTIssuer struct {
	cfg IssuerConfig
}

var _ ports.SessionIssuer = (*JWTIssuer)(nil)

// NewJWTIssuer validates the signing configuration up front so that a
// misconfigured key aborts startup instead of failing per-request.
func NewJWTIssuer(cfg IssuerConfig) (*JWTIssuer, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, apperrors.SigningKey(fmt.Errorf("token secret must be at least %d bytes", minSecretLength))
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, apperrors.SigningKey(errors.New("token TTLs must be positive"))
	}
	if cfg.RefreshTTL <= cfg.AccessTTL {
		return nil, apperrors.SigningKey(errors.New("refresh TTL must exceed access TTL"))
	}
	return &JWTIssuer{cfg: cfg}, nil
}

// Issue mints the access/refresh pair for one candidate. The binding is
// immutable for the tokens' lifetime; both carry the same identity claims
// with independent expiry windows.
func (j *JWTIssuer) Issue(candidate identity.Candidate) (ports.Session, error) {
	now := time.Now()

	access, err := j.sign(candidate, useAccess, now, j.cfg.AccessTTL)
	if err != nil {
		return ports.Session{}, apperrors.SigningKey(err)
	}
	refresh, err := j.sign(candidate, useRefresh, now, j.cfg.RefreshTTL)
	if err != nil {
		return ports.Session{}, apperrors.SigningKey(err)
	}

	return ports.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(j.cfg.AccessTTL.Seconds()),
		RedirectURL:  RedirectTarget(candidate.Kind),
	}, nil
}

func (j *JWTIssuer) sign(c identity.Candidate, use string, now time.Time, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		Kind:        c.Kind,
		DisplayName: c.DisplayName,
		Scope:       c.Scope,
		TokenUse:    use,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.cfg.Issuer,
			Subject:   c.AccountID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.cfg.Secret))
}

// ParseAccessClaims verifies an access token and returns its claims.
// Refresh tokens and selection tickets are rejected even when validly
// signed. Intended for downstream services validating issued sessions.
func (j *JWTIssuer) ParseAccessClaims(raw string) (*SessionClaims, error) {
	return j.parse(raw, useAccess)
}

// ParseRefreshClaims verifies a refresh token and returns its claims.
func (j *JWTIssuer) ParseRefreshClaims(raw string) (*SessionClaims, error) {
	return j.parse(raw, useRefresh)
}

func (j *JWTIssuer) parse(raw, wantUse string) (*SessionClaims, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return []byte(j.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.TokenUse != wantUse {
		return nil, fmt.Errorf("unexpected token use %q", claims.TokenUse)
	}
	if !claims.Kind.Valid() {
		return nil, fmt.Errorf("unknown account kind %q", claims.Kind)
	}
	return &claims, nil
}
