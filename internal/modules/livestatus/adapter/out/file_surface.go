package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"stillpoint/internal/modules/livestatus/domain"
	livestatusout "stillpoint/internal/modules/livestatus/port/out"
)

// FileSurface renders the live countdown as an atomically-replaced JSON
// file that external widgets poll. Write-then-rename keeps readers from
// ever observing a torn state.
type FileSurface struct {
	path string
}

func NewFileSurface(path string) livestatusout.Surface {
	return &FileSurface{path: path}
}

func (s *FileSurface) Open(ctx context.Context, state domain.State) error {
	return s.write(state)
}

func (s *FileSurface) Update(ctx context.Context, state domain.State) error {
	return s.write(state)
}

func (s *FileSurface) End(_ context.Context, state domain.State) error {
	if err := s.write(state); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("release live status surface: %w", err)
	}
	return nil
}

func (s *FileSurface) write(state domain.State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create live status dir: %w", err)
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal live status: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write live status: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("publish live status: %w", err)
	}
	return nil
}
