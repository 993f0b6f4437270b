package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinHMACKeySize is the smallest key HS256 will accept (256 bits).
const MinHMACKeySize = 32

// HS256 signs and verifies flow handles with a single shared secret. The
// handles never leave this service, so there is no public key to publish.
type HS256 struct {
	key  []byte
	opts VerifyOptions

	// now is swapped in tests
	now func() time.Time
}

// NewHS256 returns an HS256 signer/verifier. key must be at least
// MinHMACKeySize bytes.
func NewHS256(key []byte, opts VerifyOptions) (*HS256, error) {
	if len(key) < MinHMACKeySize {
		return nil, ErrWeakKey
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &HS256{key: k, opts: opts, now: time.Now}, nil
}

func (h *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign encodes and signs the claims.
func (h *HS256) Sign(c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &c)
	s, err := tok.SignedString(h.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return s, nil
}

// Verify checks the signature and every claim requirement.
func (h *HS256) Verify(tokenStr string) (Claims, error) {
	// time-based claims are checked below with our own clock and leeway
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return h.key, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenMalformed):
		return Claims{}, ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		// also covers a valid signature made with a method we don't accept
		return Claims{}, ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return Claims{}, ErrAlgMismatch
	default:
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	if err := claims.ValidateIssuer(h.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(h.opts.Audience); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(h.now().UTC(), h.opts.Leeway); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateSubjects(); err != nil {
		return Claims{}, err
	}

	return claims, nil
}
