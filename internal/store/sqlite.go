// Package store persists task snapshots in a local SQLite database. It is
// the caller-owned persistence boundary around the scoring engine: records
// pass validation first, get stored here, and are loaded back as the
// immutable snapshot a scoring run consumes.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/taskrank/taskrank/internal/task"
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    id              TEXT PRIMARY KEY,
    title           TEXT NOT NULL,
    due_date        TEXT,
    estimated_hours REAL NOT NULL,
    importance      INTEGER NOT NULL,
    created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS task_deps (
    task_id    TEXT NOT NULL,
    depends_on TEXT NOT NULL,
    PRIMARY KEY (task_id, depends_on)
);
`

// Store is a SQLite-backed task repository in WAL mode.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at dbPath, enables WAL mode and
// busy timeout, and creates the schema tables if they do not exist.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// One connection: SQLite has a single writer, and a single pooled
	// connection keeps PRAGMA setup consistent.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTasks upserts a batch of validated tasks and their dependency edges in
// one transaction. Tasks arriving without an ID are assigned one; the stored
// tasks (with IDs) are returned.
func (s *Store) SaveTasks(ctx context.Context, tasks []task.Task) ([]task.Task, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	const upsert = `
		INSERT INTO tasks (id, title, due_date, estimated_hours, importance)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			due_date = excluded.due_date,
			estimated_hours = excluded.estimated_hours,
			importance = excluded.importance`

	saved := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		var due any
		if t.DueDate != nil {
			due = t.DueDate.Format(task.DateLayout)
		}
		if _, err := tx.ExecContext(ctx, upsert, t.ID, t.Title, due, t.EstimatedHours, t.Importance); err != nil {
			return nil, fmt.Errorf("store: save task %q: %w", t.ID, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM task_deps WHERE task_id = ?", t.ID); err != nil {
			return nil, fmt.Errorf("store: clear deps for %q: %w", t.ID, err)
		}
		for _, dep := range t.DependsOn {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO task_deps (task_id, depends_on) VALUES (?, ?)", t.ID, dep); err != nil {
				return nil, fmt.Errorf("store: save dep %q->%q: %w", t.ID, dep, err)
			}
		}
		saved = append(saved, t)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return saved, nil
}

// LoadAll returns every stored task with its dependency list, ordered by
// creation time so snapshots are stable across calls.
func (s *Store) LoadAll(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, due_date, estimated_hours, importance FROM tasks ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("store: load tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	index := make(map[string]int)
	for rows.Next() {
		var t task.Task
		var due sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &due, &t.EstimatedHours, &t.Importance); err != nil {
			return nil, fmt.Errorf("store: scan task: %w", err)
		}
		if due.Valid {
			parsed, err := time.Parse(task.DateLayout, due.String)
			if err != nil {
				return nil, fmt.Errorf("store: task %q has corrupt due date %q: %w", t.ID, due.String, err)
			}
			t.DueDate = &parsed
		}
		index[t.ID] = len(tasks)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate tasks: %w", err)
	}

	deps, err := s.db.QueryContext(ctx,
		"SELECT task_id, depends_on FROM task_deps ORDER BY task_id, depends_on")
	if err != nil {
		return nil, fmt.Errorf("store: load deps: %w", err)
	}
	defer deps.Close()

	for deps.Next() {
		var id, dep string
		if err := deps.Scan(&id, &dep); err != nil {
			return nil, fmt.Errorf("store: scan dep: %w", err)
		}
		if i, ok := index[id]; ok {
			tasks[i].DependsOn = append(tasks[i].DependsOn, dep)
		}
	}
	if err := deps.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate deps: %w", err)
	}

	return tasks, nil
}

// DeleteAll removes every task and dependency edge.
func (s *Store) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM task_deps"); err != nil {
		return fmt.Errorf("store: delete deps: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("store: delete tasks: %w", err)
	}
	return nil
}
