package store

import (
	"context"
	"database/sql"
	"fmt"
)

// TodoRecord is one cached to-do row.
type TodoRecord struct {
	UID         string
	Path        string
	Completed   string
	Description string
	Percent     int
	Priority    int
	Status      string
	Summary     string
	Due         string
}

// TodoCondition filters ListTodos/CountTodos.
type TodoCondition struct {
	Status    string // "" means no filter
	DueBefore string // "" means no filter
}

// TodoSortKey selects the ORDER BY column for ListTodos.
type TodoSortKey string

const (
	SortByDue      TodoSortKey = "due"
	SortByPriority TodoSortKey = "priority"
)

// TodoSort controls ordering. NoneLast places priority 0 ("unspecified")
// after every real priority, using the `(priority + 9) % 10` comparator
// so 0 sorts as if it were 10.
type TodoSort struct {
	Key      TodoSortKey
	Desc     bool
	NoneLast bool
}

func (s TodoSort) orderBy() string {
	col := "due"
	if s.Key == SortByPriority {
		if s.NoneLast {
			col = "((priority + 9) % 10)"
		} else {
			col = "priority"
		}
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", col, dir)
}

// UpsertTodo inserts or replaces a todo row by UID.
func (s *Store) UpsertTodo(ctx context.Context, t TodoRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (uid, path, completed, description, percent, priority, status, summary, due)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			path = excluded.path,
			completed = excluded.completed,
			description = excluded.description,
			percent = excluded.percent,
			priority = excluded.priority,
			status = excluded.status,
			summary = excluded.summary,
			due = excluded.due
	`, t.UID, t.Path, t.Completed, t.Description, t.Percent, t.Priority, t.Status, t.Summary, t.Due)
	return err
}

// GetTodo returns the todo row for uid, or (TodoRecord{}, false, nil) if
// none exists.
func (s *Store) GetTodo(ctx context.Context, uid string) (TodoRecord, bool, error) {
	var t TodoRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT uid, path, completed, description, percent, priority, status, summary, due
		FROM todos WHERE uid = ?
	`, uid).Scan(&t.UID, &t.Path, &t.Completed, &t.Description, &t.Percent, &t.Priority, &t.Status, &t.Summary, &t.Due)
	if err == sql.ErrNoRows {
		return TodoRecord{}, false, nil
	}
	if err != nil {
		return TodoRecord{}, false, err
	}
	return t, true, nil
}

// ListTodos returns todos matching cond, ordered per sort, paged by pager.
func (s *Store) ListTodos(ctx context.Context, cond TodoCondition, sort TodoSort, pager Pager) ([]TodoRecord, error) {
	query := `SELECT uid, path, completed, description, percent, priority, status, summary, due FROM todos WHERE 1=1`
	var args []any
	if cond.Status != "" {
		query += ` AND status = ?`
		args = append(args, cond.Status)
	}
	if cond.DueBefore != "" {
		query += ` AND due != '' AND due < ?`
		args = append(args, cond.DueBefore)
	}
	query += ` ORDER BY ` + sort.orderBy() + ` LIMIT ? OFFSET ?`
	args = append(args, limitOrDefault(pager.Limit), pager.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TodoRecord
	for rows.Next() {
		var t TodoRecord
		if err := rows.Scan(&t.UID, &t.Path, &t.Completed, &t.Description, &t.Percent, &t.Priority, &t.Status, &t.Summary, &t.Due); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CountTodos returns the count of todos matching cond.
func (s *Store) CountTodos(ctx context.Context, cond TodoCondition) (int, error) {
	query := `SELECT COUNT(*) FROM todos WHERE 1=1`
	var args []any
	if cond.Status != "" {
		query += ` AND status = ?`
		args = append(args, cond.Status)
	}
	if cond.DueBefore != "" {
		query += ` AND due != '' AND due < ?`
		args = append(args, cond.DueBefore)
	}
	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}
