package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultFlowTTL is how long a flow handle stays valid without being refreshed.
const DefaultFlowTTL = 30 * time.Minute

// Claims identify one signup flow running on one device. The subject is the
// device id (it owns the persisted session token slot), SID the flow id.
type Claims struct {
	jwt.RegisteredClaims

	// Flow ID
	SID string `json:"sid,omitempty"`
}

// NewFlowClaims builds claims for a freshly issued flow handle.
func NewFlowClaims(deviceID, flowID string, ttl time.Duration, issuer string, audience []string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   deviceID,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID: flowID,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// DeviceID is the subject claim.
func (c *Claims) DeviceID() string { return c.Subject }

// FlowID is the sid claim.
func (c *Claims) FlowID() string { return c.SID }

// ValidateIssuer checks the issuer; an empty expectation accepts anything.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience requires at least one of expected to be present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry checks exp and nbf against now, allowing leeway either way.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Add(leeway).Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}

// ValidateSubjects requires both the device and flow ids to be present.
func (c *Claims) ValidateSubjects() error {
	if c.Subject == "" || c.SID == "" {
		return ErrInvalidClaim
	}
	return nil
}
