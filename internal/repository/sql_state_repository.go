package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

// SQLStateRepository stores persisted client state in the client_state table.
type SQLStateRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLStateRepository constructs the repository.
func NewSQLStateRepository(db *sqlx.DB) *SQLStateRepository {
	return &SQLStateRepository{db: db, now: time.Now}
}

type stateRow struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Get loads the value for key into dest.
func (r *SQLStateRepository) Get(ctx context.Context, key string, dest interface{}) error {
	const query = `SELECT key, value, updated_at FROM client_state WHERE key = $1`
	var row stateRow
	if err := r.db.GetContext(ctx, &row, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrStateMiss
		}
		return fmt.Errorf("get client state %s: %w", key, err)
	}
	if err := json.Unmarshal(row.Value, dest); err != nil {
		return fmt.Errorf("unmarshal state %s: %w", key, err)
	}
	return nil
}

// Set upserts the value for key.
func (r *SQLStateRepository) Set(ctx context.Context, key string, value interface{}) error {
	const query = `INSERT INTO client_state (key, value, updated_at)
VALUES (:key, :value, :updated_at)
ON CONFLICT (key)
DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state %s: %w", key, err)
	}
	row := stateRow{Key: key, Value: payload, UpdatedAt: r.now().UTC()}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("upsert client state %s: %w", key, err)
	}
	return nil
}

// Delete removes the row for key.
func (r *SQLStateRepository) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM client_state WHERE key = $1`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete client state %s: %w", key, err)
	}
	return nil
}

// Close releases the database handle.
func (r *SQLStateRepository) Close() error {
	return r.db.Close()
}
