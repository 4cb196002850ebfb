package caldav

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aimcal/aim/store"
)

// resourceMeta is the JSON shape persisted in the resources table's
// metadata column (§4.J).
type resourceMeta struct {
	ETag         string `json:"etag"`
	LastSeenCTag string `json:"last_seen_ctag"`
}

// SyncResult summarizes one SyncCalendar pass.
type SyncResult struct {
	Unchanged bool
	Added     int
	Modified  int
	Deleted   int
}

// Ingest is called once per fetched remote object during sync so the
// caller can parse the iCalendar body and upsert the right local rows
// (events vs. todos is the caller's decision, not this package's).
type Ingest func(ctx context.Context, obj Object) error

// SyncCalendar runs the six-step CalDAV sync model against one
// calendar collection, storing resource bindings under backendKind in
// the local store. ingest is invoked for every added or modified
// object; it is the caller's job to parse the object, upsert it into
// the events/todos tables and only then record its resource binding
// (RecordResource), so a crash mid-sync never records a binding for an
// object that was never actually stored locally. SyncCalendar itself
// records no bindings; it only deletes those whose resource is gone.
// The REPORT is skipped (Unchanged) only when every known binding's
// recorded CTag equals the collection's current CTag.
func (c *Client) SyncCalendar(ctx context.Context, db *store.Store, calendarPath, backendKind, compType string, ingest Ingest) (SyncResult, error) {
	ms, err := c.propfind(ctx, c.resolve(calendarPath), "0", propfindReqNames{CTag: &struct{}{}})
	if err != nil {
		return SyncResult{}, fmt.Errorf("caldav: ctag propfind: %w", err)
	}
	var remoteCTag string
	for _, resp := range ms.Responses {
		if p, ok := resp.okProp(); ok && p.CTag != "" {
			remoteCTag = p.CTag
			break
		}
	}

	known, err := db.ListResourcesByBackend(ctx, backendKind)
	if err != nil {
		return SyncResult{}, fmt.Errorf("caldav: list known resources: %w", err)
	}
	byPath := make(map[string]store.ResourceRecord, len(known))
	for _, r := range known {
		byPath[r.ResourceID] = r
	}
	if remoteCTag != "" && len(known) > 0 {
		allMatch := true
		for _, r := range known {
			var meta resourceMeta
			if err := json.Unmarshal([]byte(r.Metadata), &meta); err != nil || meta.LastSeenCTag != remoteCTag {
				allMatch = false
				break
			}
		}
		if allMatch {
			return SyncResult{Unchanged: true}, nil
		}
	}

	objs, err := c.Query(ctx, calendarPath, compType, TimeRange{})
	if err != nil {
		return SyncResult{}, fmt.Errorf("caldav: calendar-query: %w", err)
	}

	var changed []string
	seen := make(map[string]bool, len(objs))
	result := SyncResult{}
	for _, o := range objs {
		seen[o.Path] = true
		existing, ok := byPath[o.Path]
		if ok {
			var meta resourceMeta
			_ = json.Unmarshal([]byte(existing.Metadata), &meta)
			if meta.ETag == o.ETag {
				continue
			}
			result.Modified++
		} else {
			result.Added++
		}
		changed = append(changed, o.Path)
	}

	for path, r := range byPath {
		if !seen[path] {
			if err := db.DeleteResource(ctx, r.UID, backendKind); err != nil {
				return result, fmt.Errorf("caldav: delete stale resource %s: %w", path, err)
			}
			result.Deleted++
		}
	}

	if len(changed) == 0 {
		return result, nil
	}

	fetched, err := c.Multiget(ctx, calendarPath, changed)
	if err != nil {
		return result, fmt.Errorf("caldav: multiget: %w", err)
	}

	for _, o := range fetched {
		if err := ingest(ctx, o); err != nil {
			return result, fmt.Errorf("caldav: ingest %s: %w", o.Path, err)
		}
	}

	return result, nil
}

// RecordResource persists the (uid, backendKind) -> (path, etag, ctag)
// binding after a successful ingest, per §4.J. Callers invoke this from
// inside their Ingest function once the parsed object's UID is known.
func RecordResource(ctx context.Context, db *store.Store, uid, backendKind, path, etag, ctag string) error {
	meta, err := json.Marshal(resourceMeta{ETag: etag, LastSeenCTag: ctag})
	if err != nil {
		return err
	}
	return db.UpsertResource(ctx, store.ResourceRecord{
		UID:         uid,
		BackendKind: backendKind,
		ResourceID:  path,
		Metadata:    string(meta),
	})
}

// Push uploads a local change to the remote resource, using the stored
// ETag as the If-Match precondition (or If-None-Match: * for a brand
// new resource with no stored ETag yet). On success it returns the
// ETag to persist via RecordResource.
func (c *Client) Push(ctx context.Context, path string, data []byte, knownETag string) (string, error) {
	ifNone := ""
	ifMatch := knownETag
	if knownETag == "" {
		ifNone = "*"
	}
	return c.Put(ctx, path, data, ifMatch, ifNone)
}
