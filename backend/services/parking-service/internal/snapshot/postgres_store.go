package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PostgresStore keeps the snapshot as a single JSONB row, upserted on save.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a postgres-backed store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the snapshot table if needed.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS state_snapshots (
			id INT PRIMARY KEY CHECK (id = 1),
			data JSONB NOT NULL,
			saved_at TIMESTAMPTZ NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("snapshot: ensure schema: %w", err)
	}
	return nil
}

// Save upserts the single snapshot row.
func (s *PostgresStore) Save(ctx context.Context, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}

	const query = `
		INSERT INTO state_snapshots (id, data, saved_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET
			data = EXCLUDED.data,
			saved_at = EXCLUDED.saved_at
	`
	if _, err := s.db.ExecContext(ctx, query, data, state.SavedAt); err != nil {
		return fmt.Errorf("snapshot: save: %w", err)
	}
	return nil
}

// Load reads the snapshot row; no row means ErrNoSnapshot.
func (s *PostgresStore) Load(ctx context.Context) (State, error) {
	const query = `SELECT data FROM state_snapshots WHERE id = 1`

	var data []byte
	err := s.db.QueryRowContext(ctx, query).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return State{}, ErrNoSnapshot
	}
	if err != nil {
		return State{}, fmt.Errorf("snapshot: load: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	return state, nil
}
