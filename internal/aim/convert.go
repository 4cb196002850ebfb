package aim

import (
	"github.com/aimcal/aim/ical"
	"github.com/aimcal/aim/store"
)

func eventRecordFromVEvent(ev *ical.VEvent, path string) store.EventRecord {
	return store.EventRecord{
		UID:         ev.UID,
		Path:        path,
		Summary:     ev.Summary,
		Description: ev.Description,
		Status:      ev.Status,
		Start:       dateTimeString(ev.DTStart),
		End:         dateTimeString(ev.DTEnd),
	}
}

func todoRecordFromVTodo(td *ical.VTodo, path string) store.TodoRecord {
	rec := store.TodoRecord{
		UID:         td.UID,
		Path:        path,
		Description: td.Description,
		Status:      td.Status,
		Summary:     td.Summary,
		Due:         dateTimeString(td.Due),
	}
	if td.Completed != nil {
		rec.Completed = td.Completed.String()
	}
	if td.Priority != nil {
		rec.Priority = int(*td.Priority)
	}
	if td.PercentComplete != nil {
		rec.Percent = int(*td.PercentComplete)
	}
	return rec
}
