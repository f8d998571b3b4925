package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stillpoint/internal/modules/history/domain"
	historyout "stillpoint/internal/modules/history/port/out"
	"stillpoint/internal/platform/markdown"
)

// MarkdownNoteStore writes one note per session under
// sessions/YYYY/MM/DD/. Paths are deterministic per record so rewriting the
// same record is idempotent.
type MarkdownNoteStore struct {
	basePath string
}

func NewMarkdownNoteStore(basePath string) historyout.NoteStore {
	return &MarkdownNoteStore{basePath: basePath}
}

func (s *MarkdownNoteStore) Write(ctx context.Context, record domain.Record) (string, error) {
	meta := map[string]any{
		"schema_version":     domain.SchemaVersion,
		"id":                 record.ID,
		"started_at":         record.StartedAt.Format(time.RFC3339),
		"ended_at":           record.EndedAt.Format(time.RFC3339),
		"planned_seconds":    int(record.PlannedDuration.Seconds()),
		"actual_seconds":     int(record.ActualDuration.Seconds()),
		"completed":          record.Completed(),
		"completion_percent": record.CompletionPercent(),
	}
	body := fmt.Sprintf("# Sit %s\n\n- Planned: %s\n- Actual: %s\n- Completed: %t\n",
		record.StartedAt.Format("2006-01-02 15:04"),
		record.PlannedDuration.Round(time.Second),
		record.ActualDuration.Round(time.Second),
		record.Completed(),
	)
	return s.write(record, meta, body)
}

func (s *MarkdownNoteStore) WriteMinimal(ctx context.Context, record domain.Record) (string, error) {
	meta := map[string]any{
		"id":             record.ID,
		"started_at":     record.StartedAt.Format(time.RFC3339),
		"actual_seconds": int(record.ActualDuration.Seconds()),
	}
	return s.write(record, meta, "")
}

func (s *MarkdownNoteStore) write(record domain.Record, meta map[string]any, body string) (string, error) {
	date := record.StartedAt
	dir := filepath.Join(s.basePath, "sessions", date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session note dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), shortID(record.ID))
	path := filepath.Join(dir, name)

	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
