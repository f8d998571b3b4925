package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"stillpoint/internal/modules/timer/domain"
	apperrors "stillpoint/internal/platform/errors"
)

// FileActiveStore keeps the in-flight session as a single JSON file.
// Save is atomic (temp file then rename) so a crash mid-write never
// leaves a truncated state behind.
type FileActiveStore struct {
	path string
}

func NewFileActiveStore(path string) *FileActiveStore {
	return &FileActiveStore{path: path}
}

func (s *FileActiveStore) Save(_ context.Context, session domain.ActiveSession) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode active session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write active session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit active session: %w", err)
	}
	return nil
}

func (s *FileActiveStore) Load(_ context.Context) (domain.ActiveSession, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ActiveSession{}, apperrors.ErrNoActiveSession
		}
		return domain.ActiveSession{}, fmt.Errorf("read active session: %w", err)
	}
	var session domain.ActiveSession
	if err := json.Unmarshal(data, &session); err != nil {
		return domain.ActiveSession{}, fmt.Errorf("decode active session: %w", err)
	}
	if session.SchemaVersion != domain.SchemaVersion {
		return domain.ActiveSession{}, fmt.Errorf("%w: unsupported state schema %d", apperrors.ErrInvalidInput, session.SchemaVersion)
	}
	return session, nil
}

func (s *FileActiveStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}
