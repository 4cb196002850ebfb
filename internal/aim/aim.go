// Package aim is the composition root: it wires the local store, the
// CalDAV client, configuration, and credentials together behind the
// command surface a CLI or daemon collaborator calls into, so that
// surface itself can stay thin.
package aim

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aimcal/aim/caldav"
	"github.com/aimcal/aim/config"
	"github.com/aimcal/aim/credentials"
	"github.com/aimcal/aim/ical"
	"github.com/aimcal/aim/ical/span"
	"github.com/aimcal/aim/ical/value"
	"github.com/aimcal/aim/store"
)

// nowUTC converts the wall clock to a value.DateTime in UTC, the form
// DTSTAMP and Completed timestamps take.
func nowUTC() (value.DateTime, error) {
	t := time.Now().UTC()
	d, err := value.ParseDate(t.Format("20060102"), span.Span{})
	if err != nil {
		return value.DateTime{}, err
	}
	tm, err := value.ParseTime(t.Format("150405")+"Z", span.Span{})
	if err != nil {
		return value.DateTime{}, err
	}
	return value.DateTime{Date: d, Time: tm, Zone: value.ZoneUTC}, nil
}

// Aim is the only package allowed to import both store and caldav —
// it is where the local persistence layer and the CalDAV protocol
// layer meet.
type Aim struct {
	cfg    *config.Config
	store  *store.Store
	caldav *caldav.Client
	logger zerolog.Logger
}

// Open wires a new Aim instance: opens (and migrates) the local store
// at cfg.DatabasePath, and — if a CalDAV base URL is configured —
// resolves its secret via creds and builds a caldav.Client.
func Open(ctx context.Context, cfg *config.Config, creds *credentials.Manager, logger zerolog.Logger) (*Aim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("aim: invalid config: %w", err)
	}

	dsn := cfg.DatabasePath()
	if cfg.StateDir == "" {
		dsn = ":memory:"
	}
	db, err := store.Open(dsn, logger)
	if err != nil {
		return nil, fmt.Errorf("aim: open store: %w", err)
	}

	a := &Aim{cfg: cfg, store: db, logger: logger}

	if cfg.CalDAV.BaseURL != "" {
		auth, err := resolveAuth(ctx, cfg.CalDAV.Auth, creds)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("aim: resolve caldav credentials: %w", err)
		}
		a.caldav = caldav.NewClient(caldav.ClientConfig{
			BaseURL: cfg.CalDAV.BaseURL,
			Auth:    auth,
			Timeout: cfg.Timeout(),
		}, logger)
	}

	return a, nil
}

func resolveAuth(ctx context.Context, cfg config.AuthConfig, creds *credentials.Manager) (caldav.Auth, error) {
	switch cfg.Kind {
	case "", "none":
		return caldav.Auth{Kind: caldav.AuthNone}, nil
	case "basic":
		secret, err := creds.Get(ctx, cfg.Username)
		if err != nil {
			return caldav.Auth{}, err
		}
		return caldav.Auth{Kind: caldav.AuthBasic, Username: cfg.Username, Password: secret.Value}, nil
	case "bearer":
		secret, err := creds.Get(ctx, cfg.Username)
		if err != nil {
			return caldav.Auth{}, err
		}
		return caldav.Auth{Kind: caldav.AuthBearer, Token: secret.Value}, nil
	default:
		return caldav.Auth{}, fmt.Errorf("aim: unknown auth kind %q", cfg.Kind)
	}
}

// Close releases the store and CalDAV client's resources.
func (a *Aim) Close() error {
	if a.caldav != nil {
		a.caldav.Close()
	}
	return a.store.Close()
}

// ListEvents returns events matching cond, ordered by start, paged.
func (a *Aim) ListEvents(ctx context.Context, cond store.EventCondition, pager store.Pager) ([]store.EventRecord, error) {
	return a.store.ListEvents(ctx, cond, pager)
}

// GetEvent returns the event for uid, or nil if none exists.
func (a *Aim) GetEvent(ctx context.Context, uid string) (*store.EventRecord, error) {
	rec, found, err := a.store.GetEvent(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &rec, nil
}

// MarkDone resolves idOrUID (a short ID or a UID) to a todo, flips its
// status to COMPLETED, and stamps Completed at now.
func (a *Aim) MarkDone(ctx context.Context, idOrUID string) error {
	uid, err := a.resolveTodoUID(ctx, idOrUID)
	if err != nil {
		return err
	}
	todo, found, err := a.store.GetTodo(ctx, uid)
	if err != nil {
		return fmt.Errorf("aim: get todo %s: %w", uid, err)
	}
	if !found {
		return fmt.Errorf("aim: todo %s not found", uid)
	}
	now, err := nowUTC()
	if err != nil {
		return fmt.Errorf("aim: mark done: %w", err)
	}
	todo.Status = "COMPLETED"
	todo.Completed = now.String()
	return a.store.UpsertTodo(ctx, todo)
}

// resolveTodoUID treats idOrUID as a short ID if it parses as one,
// falling back to treating it as a UID directly.
func (a *Aim) resolveTodoUID(ctx context.Context, idOrUID string) (string, error) {
	var shortID int64
	if _, err := fmt.Sscanf(idOrUID, "%d", &shortID); err == nil {
		uid, _, found, err := a.store.GetByShortID(ctx, shortID)
		if err != nil {
			return "", fmt.Errorf("aim: resolve short id %s: %w", idOrUID, err)
		}
		if found {
			return uid, nil
		}
	}
	return idOrUID, nil
}

// TodoPatch describes a partial update to a todo; zero-value fields
// are left unchanged except where noted.
type TodoPatch struct {
	UID             string
	Summary         *string
	Description     *string
	Due             *string
	Priority        *int
	PercentComplete *int
	Status          *string
}

// UpsertTodo applies patch to the stored todo (creating it if patch.UID
// is new), allocates a short ID if one doesn't exist yet, and returns
// the resulting row.
func (a *Aim) UpsertTodo(ctx context.Context, patch TodoPatch) (*store.TodoRecord, error) {
	if patch.UID == "" {
		patch.UID = uuid.New().String()
	}
	rec, _, err := a.store.GetTodo(ctx, patch.UID)
	if err != nil {
		return nil, fmt.Errorf("aim: get todo: %w", err)
	}
	rec.UID = patch.UID
	if patch.Summary != nil {
		rec.Summary = *patch.Summary
	}
	if patch.Description != nil {
		rec.Description = *patch.Description
	}
	if patch.Due != nil {
		rec.Due = *patch.Due
	}
	if patch.Priority != nil {
		rec.Priority = *patch.Priority
	}
	if patch.PercentComplete != nil {
		rec.Percent = *patch.PercentComplete
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if rec.Status == "" {
		rec.Status = "NEEDS-ACTION"
	}

	if err := a.store.UpsertTodo(ctx, rec); err != nil {
		return nil, fmt.Errorf("aim: upsert todo: %w", err)
	}
	if _, err := a.store.GetOrAssignShortID(ctx, rec.UID, "todo"); err != nil {
		return nil, fmt.Errorf("aim: assign short id: %w", err)
	}
	return &rec, nil
}

// EventDraft carries the fields a caller supplies when drafting a new
// event; UID and DTStamp are filled in by DraftEvent if absent.
type EventDraft struct {
	UID         string
	Summary     string
	Description string
	Location    string
	DTStart     value.DateTime
	DTEnd       *value.DateTime
}

// DraftEvent fills in UID (a fresh uuid.New() if absent) and DTStamp
// (now, UTC) and returns a typed event ready for formatting or
// ingestion. It does not persist the event.
func (a *Aim) DraftEvent(ctx context.Context, draft EventDraft) (*ical.VEvent, error) {
	uid := draft.UID
	if uid == "" {
		uid = uuid.New().String()
	}
	now, err := nowUTC()
	if err != nil {
		return nil, fmt.Errorf("aim: draft event: %w", err)
	}
	return &ical.VEvent{
		UID:         uid,
		DTStamp:     now,
		DTStart:     &draft.DTStart,
		DTEnd:       draft.DTEnd,
		Summary:     draft.Summary,
		Description: draft.Description,
		Location:    draft.Location,
	}, nil
}
