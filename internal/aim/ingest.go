package aim

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aimcal/aim/ical"
	"github.com/aimcal/aim/ical/value"
)

// ingestWorkers bounds how many .ics files IngestDirectory parses
// concurrently; file I/O and parsing both benefit from overlap, but an
// unbounded fan-out risks exhausting file descriptors on large trees.
const ingestWorkers = 8

// IngestFailure records one file that failed to ingest without
// aborting the rest of the walk.
type IngestFailure struct {
	Path string
	Err  error
}

// IngestReport summarizes one IngestDirectory pass.
type IngestReport struct {
	Parsed   int
	Events   int
	Todos    int
	Failures []IngestFailure
}

// IngestDirectory walks path for *.ics files, parses each one, and
// upserts its events and todos into the local store. One goroutine is
// spawned per file, bounded by ingestWorkers; IngestDirectory joins all
// of them before returning so callers see a deterministic view. A
// per-file parse or upsert failure is collected into the report rather
// than aborting the walk.
func (a *Aim) IngestDirectory(ctx context.Context, path string) (IngestReport, error) {
	var files []string
	err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(p) == ".ics" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return IngestReport{}, fmt.Errorf("aim: walk %s: %w", path, err)
	}

	var (
		mu     sync.Mutex
		report IngestReport
		sem    = make(chan struct{}, ingestWorkers)
		wg     sync.WaitGroup
	)

	for _, f := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(f string) {
			defer wg.Done()
			defer func() { <-sem }()

			events, todos, err := a.ingestFile(ctx, f)

			mu.Lock()
			defer mu.Unlock()
			report.Parsed++
			report.Events += events
			report.Todos += todos
			if err != nil {
				report.Failures = append(report.Failures, IngestFailure{Path: f, Err: err})
			}
		}(f)
	}
	wg.Wait()

	return report, nil
}

func (a *Aim) ingestFile(ctx context.Context, path string) (events, todos int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("read: %w", err)
	}

	doc, parseErrs, fatal := ical.Parse(data)
	if fatal != nil {
		return 0, 0, fmt.Errorf("parse: %w", fatal)
	}
	if len(parseErrs) > 0 {
		a.logger.Warn().Str("path", path).Int("errors", len(parseErrs)).Msg("ingest: parse diagnostics")
	}

	for _, cal := range doc.Calendars {
		for _, ev := range cal.Events {
			if err := a.store.UpsertEvent(ctx, eventRecordFromVEvent(ev, path)); err != nil {
				return events, todos, fmt.Errorf("upsert event %s: %w", ev.UID, err)
			}
			if _, err := a.store.GetOrAssignShortID(ctx, ev.UID, "event"); err != nil {
				return events, todos, fmt.Errorf("assign short id for event %s: %w", ev.UID, err)
			}
			events++
		}
		for _, td := range cal.Todos {
			if err := a.store.UpsertTodo(ctx, todoRecordFromVTodo(td, path)); err != nil {
				return events, todos, fmt.Errorf("upsert todo %s: %w", td.UID, err)
			}
			if _, err := a.store.GetOrAssignShortID(ctx, td.UID, "todo"); err != nil {
				return events, todos, fmt.Errorf("assign short id for todo %s: %w", td.UID, err)
			}
			todos++
		}
	}
	return events, todos, nil
}

func dateTimeString(dt *value.DateTime) string {
	if dt == nil {
		return ""
	}
	return dt.String()
}
