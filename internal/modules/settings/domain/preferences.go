package domain

import "fmt"

// Preferences is the user's notification configuration, persisted as YAML
// in the stillpoint base directory.
type Preferences struct {
	Enabled  bool     `yaml:"enabled"`
	Interval string   `yaml:"interval"`
	Markers  []string `yaml:"markers"`
}

var validIntervals = map[string]struct{}{
	"none": {}, "1m": {}, "2m": {}, "5m": {}, "10m": {},
}

var validMarkers = map[string]struct{}{
	"25pct": {}, "50pct": {}, "75pct": {}, "2min-left": {}, "1min-left": {},
}

func Default() Preferences {
	return Preferences{
		Enabled:  true,
		Interval: "none",
		Markers:  []string{"50pct"},
	}
}

func (p Preferences) Validate() error {
	if _, ok := validIntervals[p.Interval]; !ok {
		return fmt.Errorf("unsupported interval %q (none|1m|2m|5m|10m)", p.Interval)
	}
	for _, marker := range p.Markers {
		if _, ok := validMarkers[marker]; !ok {
			return fmt.Errorf("unsupported marker %q (25pct|50pct|75pct|2min-left|1min-left)", marker)
		}
	}
	return nil
}
