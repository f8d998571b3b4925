package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"stillpoint/internal/modules/companion/dto"
	companionout "stillpoint/internal/modules/companion/port/out"
)

// JSONLChannel appends snapshots to a local JSONL spool, the stand-in for
// the watch connectivity transport.
type JSONLChannel struct {
	mu   sync.Mutex
	path string
}

func NewJSONLChannel(path string) companionout.Channel {
	return &JSONLChannel{path: path}
}

func (c *JSONLChannel) Send(_ context.Context, snapshot dto.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal telemetry snapshot: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create telemetry dir: %w", err)
	}
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open telemetry spool: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write telemetry snapshot: %w", err)
	}
	return nil
}
