package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"stillpoint/internal/modules/health/dto"
	healthout "stillpoint/internal/modules/health/port/out"
)

type healthEvent struct {
	Time    time.Time           `json:"time"`
	Kind    string              `json:"kind"`
	Session *dto.MindfulSession `json:"session,omitempty"`
	Mood    *dto.MoodEntry      `json:"mood,omitempty"`
}

// JSONLSink appends health entries to an append-only JSONL log, the local
// stand-in for the platform health store.
type JSONLSink struct {
	mu   sync.Mutex
	path string
}

func NewJSONLSink(path string) healthout.Sink {
	return &JSONLSink{path: path}
}

func (s *JSONLSink) WriteMindfulSession(_ context.Context, session dto.MindfulSession) error {
	return s.append(healthEvent{Time: time.Now().UTC(), Kind: "mindful_session", Session: &session})
}

func (s *JSONLSink) WriteMoodEntry(_ context.Context, entry dto.MoodEntry) error {
	return s.append(healthEvent{Time: time.Now().UTC(), Kind: "mood", Mood: &entry})
}

func (s *JSONLSink) append(event healthEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal health event: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create health log dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open health log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write health event: %w", err)
	}
	return nil
}
