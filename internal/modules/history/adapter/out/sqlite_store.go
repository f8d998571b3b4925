package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stillpoint/internal/modules/history/domain"
	historyout "stillpoint/internal/modules/history/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteRecordStore struct {
	db *sql.DB
}

func NewSQLiteRecordStore(dbPath string) (historyout.Projector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteRecordStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteRecordStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  started_at TEXT NOT NULL,
  planned_seconds INTEGER NOT NULL,
  ended_at TEXT NOT NULL,
  actual_seconds INTEGER NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) Upsert(ctx context.Context, record domain.Record) error {
	const stmt = `
INSERT INTO sessions (id, started_at, planned_seconds, ended_at, actual_seconds)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  started_at=excluded.started_at,
  planned_seconds=excluded.planned_seconds,
  ended_at=excluded.ended_at,
  actual_seconds=excluded.actual_seconds;
`
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		record.StartedAt.Format(time.RFC3339),
		int64(record.PlannedDuration.Seconds()),
		record.EndedAt.Format(time.RFC3339),
		int64(record.ActualDuration.Seconds()),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) DeleteAll(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions`)
	if err != nil {
		return 0, fmt.Errorf("delete all sessions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted sessions: %w", err)
	}
	return int(affected), nil
}

func (s *SQLiteRecordStore) List(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, started_at, planned_seconds, ended_at, actual_seconds
FROM sessions ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			record             domain.Record
			startedAt, endedAt string
			planned, actual    int64
		)
		if err := rows.Scan(&record.ID, &startedAt, &planned, &endedAt, &actual); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if record.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("parse session start: %w", err)
		}
		if record.EndedAt, err = time.Parse(time.RFC3339, endedAt); err != nil {
			return nil, fmt.Errorf("parse session end: %w", err)
		}
		record.PlannedDuration = time.Duration(planned) * time.Second
		record.ActualDuration = time.Duration(actual) * time.Second
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteRecordStore) StartDates(ctx context.Context) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT started_at FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("query session start dates: %w", err)
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan start date: %w", err)
		}
		started, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("parse start date: %w", err)
		}
		starts = append(starts, started)
	}
	return starts, rows.Err()
}
