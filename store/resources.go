package store

import (
	"context"
	"database/sql"
)

// ResourceRecord maps a (uid, backend_kind) pair to the backend's
// opaque resource identifier and JSON-encoded backend-specific
// metadata (typically an ETag and last-seen CTag — see §4.J).
type ResourceRecord struct {
	UID         string
	BackendKind string
	ResourceID  string
	Metadata    string // raw JSON
}

// UpsertResource inserts or replaces a resource row by its composite key.
func (s *Store) UpsertResource(ctx context.Context, r ResourceRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO resources (uid, backend_kind, resource_id, metadata)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(uid, backend_kind) DO UPDATE SET
			resource_id = excluded.resource_id,
			metadata = excluded.metadata
	`, r.UID, r.BackendKind, r.ResourceID, r.Metadata)
	return err
}

// GetResource returns the resource row for (uid, backendKind).
func (s *Store) GetResource(ctx context.Context, uid, backendKind string) (ResourceRecord, bool, error) {
	var r ResourceRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT uid, backend_kind, resource_id, metadata FROM resources WHERE uid = ? AND backend_kind = ?
	`, uid, backendKind).Scan(&r.UID, &r.BackendKind, &r.ResourceID, &r.Metadata)
	if err == sql.ErrNoRows {
		return ResourceRecord{}, false, nil
	}
	if err != nil {
		return ResourceRecord{}, false, err
	}
	return r, true, nil
}

// ListResourcesByBackend returns every resource row for a given
// backend_kind, used by sync to enumerate locally-known hrefs.
func (s *Store) ListResourcesByBackend(ctx context.Context, backendKind string) ([]ResourceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT uid, backend_kind, resource_id, metadata FROM resources WHERE backend_kind = ?
	`, backendKind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ResourceRecord
	for rows.Next() {
		var r ResourceRecord
		if err := rows.Scan(&r.UID, &r.BackendKind, &r.ResourceID, &r.Metadata); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteResource removes a resource row, used when sync observes the
// backend resource disappeared.
func (s *Store) DeleteResource(ctx context.Context, uid, backendKind string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM resources WHERE uid = ? AND backend_kind = ?`, uid, backendKind)
	return err
}
