package service

import (
	"fmt"
	"time"

	"github.com/delveng/signup/pkg/cryptox"
	"github.com/delveng/signup/pkg/jwtx"
)

const (
	HandleIssuer   = "delveng-signup"
	HandleAudience = "signup-api"
)

// FlowHandle is the bearer token a browser uses to address its flow.
type FlowHandle struct {
	Token     string
	FlowID    string
	DeviceID  string
	ExpiresAt time.Time
}

// Handles issues and verifies flow handles.
type Handles struct {
	hs  *jwtx.HS256
	ttl time.Duration
}

// NewHandles derives the signing key from secret.
func NewHandles(secret []byte, ttl time.Duration) (*Handles, error) {
	if ttl <= 0 {
		ttl = jwtx.DefaultFlowTTL
	}

	key, err := cryptox.DeriveKey(secret, cryptox.PurposeFlowHandles, jwtx.MinHMACKeySize)
	if err != nil {
		return nil, err
	}
	hs, err := jwtx.NewHS256(key, jwtx.VerifyOptions{
		Issuer:   HandleIssuer,
		Audience: []string{HandleAudience},
		Leeway:   5 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return &Handles{hs: hs, ttl: ttl}, nil
}

func (h *Handles) Issue(deviceID, flowID string, now time.Time) (FlowHandle, error) {
	claims := jwtx.NewFlowClaims(deviceID, flowID, h.ttl, HandleIssuer, []string{HandleAudience}, now)
	tok, err := h.hs.Sign(claims)
	if err != nil {
		return FlowHandle{}, fmt.Errorf("issue flow handle: %w", err)
	}
	return FlowHandle{Token: tok, FlowID: flowID, DeviceID: deviceID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (h *Handles) Verify(token string) (jwtx.Claims, error) { return h.hs.Verify(token) }

// Verifier is used by the HTTP authentication middleware.
func (h *Handles) Verifier() jwtx.Verifier { return h.hs }
