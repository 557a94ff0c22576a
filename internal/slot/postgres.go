package slot

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PostgresRepository stores slot values in the portal_slots table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a Postgres-backed implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, visitorID, key string) (string, error) {
	const query = `
        SELECT value FROM portal_slots
        WHERE visitor_id=$1 AND slot_key=$2 AND (expires_at IS NULL OR expires_at > NOW())`

	var value string
	if err := r.db.QueryRowContext(ctx, query, visitorID, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *PostgresRepository) Set(ctx context.Context, visitorID, key, value string, ttl time.Duration) error {
	const query = `
        INSERT INTO portal_slots (visitor_id, slot_key, value, expires_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW())
        ON CONFLICT (visitor_id, slot_key)
        DO UPDATE SET value=EXCLUDED.value, expires_at=EXCLUDED.expires_at, updated_at=NOW()`

	var expires sql.NullTime
	if ttl > 0 {
		expires = sql.NullTime{Time: time.Now().Add(ttl).UTC(), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query, visitorID, key, value, expires)
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, visitorID, key string) error {
	const query = `DELETE FROM portal_slots WHERE visitor_id=$1 AND slot_key=$2`

	_, err := r.db.ExecContext(ctx, query, visitorID, key)
	return err
}
