package aim

import (
	"context"
	"fmt"

	"github.com/aimcal/aim/caldav"
	"github.com/aimcal/aim/ical"
)

// DiscoverCalendars runs OPTIONS capability discovery followed by
// principal/calendar-home-set/calendar-collection PROPFINDs against
// the configured CalDAV backend.
func (a *Aim) DiscoverCalendars(ctx context.Context) ([]caldav.Calendar, error) {
	if a.caldav == nil {
		return nil, fmt.Errorf("aim: no caldav backend configured")
	}

	caps, err := a.caldav.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("aim: discover capabilities: %w", err)
	}
	if !caps.CalendarAccess {
		return nil, fmt.Errorf("aim: server does not advertise calendar-access")
	}

	homeSet := a.cfg.CalDAV.CalendarHome
	if homeSet == "" {
		principal, err := a.caldav.Principal(ctx)
		if err != nil {
			return nil, fmt.Errorf("aim: discover principal: %w", err)
		}
		homeSet, err = a.caldav.CalendarHomeSet(ctx, principal)
		if err != nil {
			return nil, fmt.Errorf("aim: discover calendar-home-set: %w", err)
		}
	}

	return a.caldav.ListCalendars(ctx, homeSet)
}

// SyncChanges summarizes one SyncCalendar call.
type SyncChanges struct {
	Unchanged bool
	Added     int
	Modified  int
	Deleted   int
}

// SyncCalendar runs the six-step sync model (§4.K) against one
// calendar collection, parsing and upserting every changed object into
// the local store and recording its resource binding. Bindings are
// recorded without a CTag, so the unchanged-collection check in
// caldav.SyncCalendar never matches: every call runs the calendar-query
// REPORT and Unchanged is never reported.
func (a *Aim) SyncCalendar(ctx context.Context, calendarPath, compType string) (SyncChanges, error) {
	if a.caldav == nil {
		return SyncChanges{}, fmt.Errorf("aim: no caldav backend configured")
	}

	result, err := a.caldav.SyncCalendar(ctx, a.store, calendarPath, "caldav", compType, func(ctx context.Context, obj caldav.Object) error {
		return a.ingestRemoteObject(ctx, calendarPath, obj)
	})
	if err != nil {
		return SyncChanges{}, err
	}
	return SyncChanges{
		Unchanged: result.Unchanged,
		Added:     result.Added,
		Modified:  result.Modified,
		Deleted:   result.Deleted,
	}, nil
}

func (a *Aim) ingestRemoteObject(ctx context.Context, calendarPath string, obj caldav.Object) error {
	doc, parseErrs, fatal := ical.Parse(obj.Data)
	if fatal != nil {
		return fmt.Errorf("parse %s: %w", obj.Path, fatal)
	}
	if len(parseErrs) > 0 {
		a.logger.Warn().Str("path", obj.Path).Int("errors", len(parseErrs)).Msg("sync: parse diagnostics")
	}

	var uid string
	for _, cal := range doc.Calendars {
		for _, ev := range cal.Events {
			if err := a.store.UpsertEvent(ctx, eventRecordFromVEvent(ev, obj.Path)); err != nil {
				return fmt.Errorf("upsert event %s: %w", ev.UID, err)
			}
			if _, err := a.store.GetOrAssignShortID(ctx, ev.UID, "event"); err != nil {
				return err
			}
			uid = ev.UID
		}
		for _, td := range cal.Todos {
			if err := a.store.UpsertTodo(ctx, todoRecordFromVTodo(td, obj.Path)); err != nil {
				return fmt.Errorf("upsert todo %s: %w", td.UID, err)
			}
			if _, err := a.store.GetOrAssignShortID(ctx, td.UID, "todo"); err != nil {
				return err
			}
			uid = td.UID
		}
	}
	if uid == "" {
		return fmt.Errorf("sync: %s contained no VEVENT/VTODO", obj.Path)
	}

	return caldav.RecordResource(ctx, a.store, uid, "caldav", obj.Path, obj.ETag, "")
}
