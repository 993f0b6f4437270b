package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Drivers implement it and expose
// one sub-repository per table so a Tx can hand out the same repositories.
type Store interface {
	SessionTokens() SessionTokens
	Attempts() Attempts

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// SessionTokens holds at most one sealed registration API token per device.
type SessionTokens interface {
	// GetSessionToken returns ErrNotFound when the device has no token.
	GetSessionToken(ctx context.Context, deviceID string) ([]byte, error)

	// PutSessionToken inserts or replaces the device's token.
	PutSessionToken(ctx context.Context, deviceID string, sealed []byte) error

	// DeleteSessionToken is a no-op for unknown devices.
	DeleteSessionToken(ctx context.Context, deviceID string) error
}

// Outcome classifies how a registration attempt ended.
type Outcome string

const (
	OutcomeAccepted       Outcome = "accepted"
	OutcomeRejected       Outcome = "rejected"
	OutcomeInvalidFields  Outcome = "invalid_fields"
	OutcomeExchangeFailed Outcome = "exchange_failed"
	OutcomeNetworkError   Outcome = "network_error"
)

// Attempt is one submission to the registration API. It never carries
// passwords or tokens.
type Attempt struct {
	ID        string
	FlowID    string
	DeviceID  string
	Email     string
	Origin    string
	Outcome   Outcome
	CreatedAt time.Time
}

type Attempts interface {
	RecordAttempt(ctx context.Context, a Attempt) error

	// ListAttemptsByEmail returns attempts newest first.
	ListAttemptsByEmail(ctx context.Context, email string, limit int) ([]Attempt, error)
}
