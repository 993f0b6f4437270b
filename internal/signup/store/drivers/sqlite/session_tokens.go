package sqlite

import (
	"context"
)

type sessionTokensRepo struct {
	db dbtx
}

func (r *sessionTokensRepo) GetSessionToken(ctx context.Context, deviceID string) ([]byte, error) {
	var sealed []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT sealed FROM session_tokens WHERE device_id = ?`, deviceID,
	).Scan(&sealed)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return sealed, nil
}

func (r *sessionTokensRepo) PutSessionToken(ctx context.Context, deviceID string, sealed []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_tokens (device_id, sealed) VALUES (?, ?)
		ON CONFLICT (device_id) DO UPDATE
		SET sealed = excluded.sealed, updated_at = CURRENT_TIMESTAMP`,
		deviceID, sealed,
	)
	return err
}

func (r *sessionTokensRepo) DeleteSessionToken(ctx context.Context, deviceID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE device_id = ?`, deviceID)
	return err
}
