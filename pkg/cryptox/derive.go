package cryptox

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Key purposes. Each purpose yields an independent key from the same secret.
const (
	PurposeFlowHandles   = "signup/flow-handles/v1"
	PurposeSessionTokens = "signup/session-tokens/v1"
)

// ErrEmptySecret is returned when no key material is supplied.
var ErrEmptySecret = errors.New("cryptox: empty secret")

// DeriveKey expands secret into a size byte key bound to purpose.
func DeriveKey(secret []byte, purpose string, size int) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	r := hkdf.New(sha256.New, secret, nil, []byte(purpose))
	key := make([]byte, size)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("cryptox: derive %s: %w", purpose, err)
	}
	return key, nil
}
