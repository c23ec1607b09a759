package store

import (
	"context"
	"database/sql"
	"fmt"
)

// sequencer hands out the sequence number shared by answer and LLM events,
// so a history listing can interleave both tables in the order they were
// written.
type sequencer struct {
	db *sql.DB
}

func newSequencer(db *sql.DB) (*sequencer, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS event_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		last INTEGER NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create event_sequence: %w", err)
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO event_sequence (id, last) VALUES (1, 0)`); err != nil {
		return nil, fmt.Errorf("seed event_sequence: %w", err)
	}
	return &sequencer{db: db}, nil
}

// insert bumps the sequence and runs write in the same transaction. A
// failed write rolls the bump back, leaving no gap.
func (s *sequencer) insert(ctx context.Context, write func(tx *sql.Tx, seq int64) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	if err := tx.QueryRowContext(ctx,
		`UPDATE event_sequence SET last = last + 1 WHERE id = 1 RETURNING last`,
	).Scan(&seq); err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if err := write(tx, seq); err != nil {
		return err
	}
	return tx.Commit()
}
