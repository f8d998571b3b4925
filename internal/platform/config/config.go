package config

import (
	"fmt"
	"path/filepath"
)

// Config holds the filesystem layout under the stillpoint base directory.
type Config struct {
	BasePath      string
	DBPath        string
	PrefsPath     string
	ActivePath    string
	StatusPath    string
	HealthLogPath string
	TelemetryPath string

	// NotifierBinary is the alert-service plugin executable. Empty means
	// alerts are delivered through the in-process log notifier.
	NotifierBinary string
}

func New(basePath, notifierBinary string) (Config, error) {
	if basePath == "" {
		return Config{}, fmt.Errorf("base path is required")
	}
	return Config{
		BasePath:       basePath,
		DBPath:         filepath.Join(basePath, "stillpoint.db"),
		PrefsPath:      filepath.Join(basePath, "prefs.yaml"),
		ActivePath:     filepath.Join(basePath, "active-session.json"),
		StatusPath:     filepath.Join(basePath, "live-status.json"),
		HealthLogPath:  filepath.Join(basePath, "health.jsonl"),
		TelemetryPath:  filepath.Join(basePath, "telemetry.jsonl"),
		NotifierBinary: notifierBinary,
	}, nil
}
