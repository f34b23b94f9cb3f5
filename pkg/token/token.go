// Package token encodes and verifies the bearer tokens issued at login.
//
// A token is a compact HS256 JWT carrying the handle (sub) and role of the
// authenticated user, signed with a process-wide 256-bit key. Tokens carry no
// expiry: they stay valid until the signing key changes. Decode collapses
// every failure shape into ErrInvalidToken so callers cannot distinguish a
// forged signature from a malformed payload.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arthurv/ticketd/pkg/model"
)

// ErrInvalidToken is returned by Decode for any token that does not verify.
var ErrInvalidToken = errors.New("invalid token")

// KeySize is the required signing key length in bytes.
const KeySize = 32

// Claim is the identity fact set embedded in a token.
type Claim struct {
	Handle string
	Role   model.Role
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a fixed symmetric key. The key is
// read-only after construction, so a single Codec is safe for concurrent use.
type Codec struct {
	key []byte
}

// NewCodec returns a Codec for the given signing key.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, errors.New("token: signing key must be 32 bytes")
	}
	return &Codec{key: key}, nil
}

// Encode serializes the claim into a signed token string.
func (c *Codec) Encode(claim Claim) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: claim.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  claim.Handle,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
	return t.SignedString(c.key)
}

// Decode verifies tokenStr and returns the embedded claim. Any signature
// mismatch, structural malformation, or unexpected signing method yields
// ErrInvalidToken.
func (c *Codec) Decode(tokenStr string) (Claim, error) {
	var claims tokenClaims
	t, err := jwt.ParseWithClaims(
		tokenStr,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return c.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Strict base64 so no two distinct token strings decode to the same
		// signature bytes.
		jwt.WithStrictDecoding(),
	)
	if err != nil || !t.Valid {
		return Claim{}, ErrInvalidToken
	}

	if claims.Subject == "" {
		return Claim{}, ErrInvalidToken
	}
	role, err := model.RoleString(claims.Role)
	if err != nil {
		return Claim{}, ErrInvalidToken
	}

	return Claim{Handle: claims.Subject, Role: role}, nil
}
