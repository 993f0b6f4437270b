package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/delveng/signup/internal/signup/store"
	"github.com/delveng/signup/pkg/cryptox"
	"github.com/delveng/signup/pkg/regsdk"
	"github.com/delveng/signup/pkg/slogx"
)

// TokenSlots persists one registration API session token per device, sealed
// with a key derived from the service secret.
type TokenSlots struct {
	Store  store.Store
	sealer *cryptox.Sealer
}

func NewTokenSlots(st store.Store, secret []byte) (*TokenSlots, error) {
	key, err := cryptox.DeriveKey(secret, cryptox.PurposeSessionTokens, 32)
	if err != nil {
		return nil, err
	}
	sealer, err := cryptox.NewSealer(key)
	if err != nil {
		return nil, err
	}
	return &TokenSlots{Store: st, sealer: sealer}, nil
}

// Slot returns the device's slot as a regsdk.TokenStore.
func (t *TokenSlots) Slot(deviceID string) regsdk.TokenStore {
	return &deviceSlot{slots: t, deviceID: deviceID}
}

type deviceSlot struct {
	slots    *TokenSlots
	deviceID string
}

func (d *deviceSlot) Get(ctx context.Context) (string, error) {
	sealed, err := d.slots.Store.SessionTokens().GetSessionToken(ctx, d.deviceID)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	// sealed under the device id, so a row moved to another device won't open
	plain, err := d.slots.sealer.Open(sealed, []byte(d.deviceID))
	if err != nil {
		return "", fmt.Errorf("open session token: %w", err)
	}
	return string(plain), nil
}

func (d *deviceSlot) Set(ctx context.Context, token string) error {
	if token == "" {
		return d.Clear(ctx)
	}
	sealed, err := d.slots.sealer.Seal([]byte(token), []byte(d.deviceID))
	if err != nil {
		return err
	}
	if err := d.slots.Store.SessionTokens().PutSessionToken(ctx, d.deviceID, sealed); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("session token stored",
		slog.String("device_id", d.deviceID),
		slog.String("token_fp", cryptox.FingerprintToken(token)),
	)
	return nil
}

func (d *deviceSlot) Clear(ctx context.Context) error {
	if err := d.slots.Store.SessionTokens().DeleteSessionToken(ctx, d.deviceID); err != nil {
		return err
	}
	slogx.FromContext(ctx).Debug("session token cleared", slog.String("device_id", d.deviceID))
	return nil
}
