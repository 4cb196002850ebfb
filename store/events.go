package store

import (
	"context"
	"database/sql"
)

// EventRecord is one cached calendar event row.
type EventRecord struct {
	UID         string
	Path        string
	Summary     string
	Description string
	Status      string
	Start       string // stable lexicographic ISO-like form
	End         string
}

// EventCondition filters ListEvents/CountEvents.
type EventCondition struct {
	StartableSince string // "" means no lower bound
}

// Pager bounds a paged query.
type Pager struct {
	Limit  int
	Offset int
}

// UpsertEvent inserts or replaces an event row by UID.
func (s *Store) UpsertEvent(ctx context.Context, e EventRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (uid, path, summary, description, status, start, "end")
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			path = excluded.path,
			summary = excluded.summary,
			description = excluded.description,
			status = excluded.status,
			start = excluded.start,
			"end" = excluded."end"
	`, e.UID, e.Path, e.Summary, e.Description, e.Status, e.Start, e.End)
	return err
}

// GetEvent returns the event row for uid, or (EventRecord{}, false, nil)
// if none exists.
func (s *Store) GetEvent(ctx context.Context, uid string) (EventRecord, bool, error) {
	var e EventRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT uid, path, summary, description, status, start, "end" FROM events WHERE uid = ?
	`, uid).Scan(&e.UID, &e.Path, &e.Summary, &e.Description, &e.Status, &e.Start, &e.End)
	if err == sql.ErrNoRows {
		return EventRecord{}, false, nil
	}
	if err != nil {
		return EventRecord{}, false, err
	}
	return e, true, nil
}

// ListEvents returns events matching cond, ordered by start ascending,
// paged by pager.
func (s *Store) ListEvents(ctx context.Context, cond EventCondition, pager Pager) ([]EventRecord, error) {
	query := `SELECT uid, path, summary, description, status, start, "end" FROM events WHERE 1=1`
	var args []any
	if cond.StartableSince != "" {
		query += ` AND start >= ?`
		args = append(args, cond.StartableSince)
	}
	query += ` ORDER BY start ASC LIMIT ? OFFSET ?`
	args = append(args, limitOrDefault(pager.Limit), pager.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventRecord
	for rows.Next() {
		var e EventRecord
		if err := rows.Scan(&e.UID, &e.Path, &e.Summary, &e.Description, &e.Status, &e.Start, &e.End); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountEvents returns the count of events matching cond.
func (s *Store) CountEvents(ctx context.Context, cond EventCondition) (int, error) {
	query := `SELECT COUNT(*) FROM events WHERE 1=1`
	var args []any
	if cond.StartableSince != "" {
		query += ` AND start >= ?`
		args = append(args, cond.StartableSince)
	}
	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func limitOrDefault(n int) int {
	if n <= 0 {
		return 1000
	}
	return n
}
