package usecase_test

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	adapterout "stillpoint/internal/modules/health/adapter/out"
	"stillpoint/internal/modules/health/usecase"
	"stillpoint/internal/platform/clock"
	apperrors "stillpoint/internal/platform/errors"
)

func TestLogMoodAppendsOneLinePerEntry(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "health.jsonl")
	uc := usecase.NewInteractor(clock.SystemClock{}, adapterout.NewJSONLSink(path))
	ctx := context.Background()

	if err := uc.LogMood(ctx, 4, "calm after sitting"); err != nil {
		t.Fatalf("log mood: %v", err)
	}
	if err := uc.LogMood(ctx, 2, ""); err != nil {
		t.Fatalf("log second mood: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open health log: %v", err)
	}
	defer f.Close()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		var event map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines, err)
		}
		if event["kind"] != "mood" {
			t.Fatalf("unexpected event kind %v", event["kind"])
		}
	}
	if lines != 2 {
		t.Fatalf("expected 2 log lines, got %d", lines)
	}
}

func TestLogMoodRejectsOutOfRangeRating(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(clock.SystemClock{}, adapterout.NewJSONLSink(filepath.Join(t.TempDir(), "health.jsonl")))

	for _, rating := range []int{0, 6, -1} {
		if err := uc.LogMood(context.Background(), rating, ""); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("rating %d: expected invalid input, got %v", rating, err)
		}
	}
}
