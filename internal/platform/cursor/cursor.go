// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cursor records, per queue, the highest sequence_id the consumer has
successfully routed, in the sir_cursor table created by migration
0001_sir_cursor. It exists purely for operator visibility on the admin HTTP
surface (GET /admin/cursor); the router and consumer never consult it, since
the design is idempotent under reordering for upserts.
*/
package cursor

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/catalogsync/sir/internal/platform/dberr"
)

// Entry is one queue's bookkeeping row.
type Entry struct {
	Queue      string
	SequenceID int64
	UpdatedAt  time.Time
}

// Store records and reports per-queue sequence-id progress.
type Store struct {
	db *pgxpool.Pool
}

// NewStore wraps a connection pool as a Store.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Advance records queue's latest successfully-routed sequence_id, as long
// as it is not older than whatever is already stored — out-of-order
// delivery across queues is expected and must not regress the cursor.
func (s *Store) Advance(ctx context.Context, queue string, sequenceID int64) error {
	const query = `
		INSERT INTO sir_cursor (queue, sequence_id, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (queue) DO UPDATE
		SET sequence_id = EXCLUDED.sequence_id, updated_at = now()
		WHERE sir_cursor.sequence_id < EXCLUDED.sequence_id
	`

	if _, err := s.db.Exec(ctx, query, queue, sequenceID); err != nil {
		return dberr.Wrap(err, "cursor_advance")
	}
	return nil
}

// List returns every queue's current cursor entry, ordered by queue name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	const query = `SELECT queue, sequence_id, updated_at FROM sir_cursor ORDER BY queue`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "cursor_list")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Queue, &e.SequenceID, &e.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "cursor_scan")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "cursor_iterate")
	}

	return entries, nil
}

// Get returns one queue's cursor entry, or ok=false if the queue has never
// advanced.
func (s *Store) Get(ctx context.Context, queue string) (Entry, bool, error) {
	const query = `SELECT queue, sequence_id, updated_at FROM sir_cursor WHERE queue = $1`

	var e Entry
	err := s.db.QueryRow(ctx, query, queue).Scan(&e.Queue, &e.SequenceID, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, dberr.Wrap(err, "cursor_get")
	}

	return e, true, nil
}
