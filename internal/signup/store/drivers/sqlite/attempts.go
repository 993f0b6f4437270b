package sqlite

import (
	"context"
	"fmt"

	"github.com/delveng/signup/internal/signup/store"
)

type attemptsRepo struct {
	db dbtx
}

func (r *attemptsRepo) RecordAttempt(ctx context.Context, a store.Attempt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO registration_attempts (id, flow_id, device_id, email, origin, outcome, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.FlowID, a.DeviceID, a.Email, a.Origin, string(a.Outcome), a.CreatedAt.UTC(),
	)
	return err
}

func (r *attemptsRepo) ListAttemptsByEmail(ctx context.Context, email string, limit int) ([]store.Attempt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, flow_id, device_id, email, origin, outcome, created_at
		FROM registration_attempts
		WHERE email = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`,
		email, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Attempt
	for rows.Next() {
		var (
			a       store.Attempt
			outcome string
		)
		if err := rows.Scan(&a.ID, &a.FlowID, &a.DeviceID, &a.Email, &a.Origin, &outcome, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Outcome = store.Outcome(outcome)
		out = append(out, a)
	}
	return out, rows.Err()
}
