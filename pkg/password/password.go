// Package password provides one-way hashing and verification of user secrets.
//
// Hashing uses bcrypt with a per-call random salt, so two hashes of the same
// secret never compare equal. Verification swallows every failure shape
// (wrong secret, corrupted stored hash, truncated input) into a plain false;
// callers never see bcrypt's error values.
package password

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = bcrypt.DefaultCost

// Hasher hashes and verifies secrets at a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt hash of secret.
func (h *Hasher) Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether secret matches hash. A malformed or corrupted hash
// yields false, never an error.
func (h *Hasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
