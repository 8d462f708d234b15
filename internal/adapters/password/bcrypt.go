package password

// Package password implements the password verification port with bcrypt.
// Verification cost is intentionally high; callers are expected to run
// verifications concurrently per account kind, never serialized.

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/ghollosi/next-sub004/internal/ports"
)

// DefaultCost is the bcrypt work factor used when hashing new credentials.
const DefaultCost = 12

// BcryptVerifier verifies plaintext passwords against stored bcrypt hashes.
// The zero value is ready to use and safe for concurrent use.
type BcryptVerifier struct{}

var _ ports.PasswordVerifier = BcryptVerifier{}

// Verify reports whether password matches the stored hash. An empty or
// malformed stored hash never matches; bcrypt performs the comparison in
// constant time relative to the hash.
func (BcryptVerifier) Verify(storedHash, password string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

// Hash produces a bcrypt hash at the given cost. Cost values outside
// bcrypt's supported range fall back to DefaultCost. Used by dev seeding
// and tests; production hashes come from the account stores.
func Hash(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
