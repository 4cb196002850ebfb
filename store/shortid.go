package store

import (
	"context"
	"database/sql"
)

// GetOrAssignShortID returns the short ID for uid, assigning the
// smallest free positive integer if uid has none yet. Never reassigns
// an existing UID's short ID. Race-safe: a concurrent insert for the
// same UID is resolved by falling back to a SELECT after a no-op
// INSERT ON CONFLICT.
func (s *Store) GetOrAssignShortID(ctx context.Context, uid string, kind string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT short_id FROM short_ids WHERE uid = ?`, uid).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO short_ids (uid, kind)
		VALUES (?, ?)
		ON CONFLICT(uid) DO NOTHING
		RETURNING short_id
	`, uid, kind).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	// Another connection won the race between our SELECT and INSERT;
	// the row now exists under a short_id we didn't allocate.
	err = s.db.QueryRowContext(ctx, `SELECT short_id FROM short_ids WHERE uid = ?`, uid).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByShortID reverse-looks-up the UID and kind for a short ID.
func (s *Store) GetByShortID(ctx context.Context, shortID int64) (uid string, kind string, found bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT uid, kind FROM short_ids WHERE short_id = ?`, shortID).Scan(&uid, &kind)
	if err == sql.ErrNoRows {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	return uid, kind, true, nil
}

// TruncateShortIDs clears the table; future allocations restart from
// the smallest free ROWID (SQLite reuses ROWIDs for tables without
// AUTOINCREMENT after a full delete).
func (s *Store) TruncateShortIDs(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM short_ids`)
	return err
}
