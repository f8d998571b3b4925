package out

import (
	"context"

	"stillpoint/internal/modules/alerts/domain"
	alertsout "stillpoint/internal/modules/alerts/port/out"
	settingsin "stillpoint/internal/modules/settings/port/in"
)

// SettingsPreferencesSource bridges the settings module into the alert
// facade's read-only preferences view.
type SettingsPreferencesSource struct {
	settings settingsin.Usecase
}

func NewSettingsPreferencesSource(settings settingsin.Usecase) alertsout.PreferencesSource {
	return &SettingsPreferencesSource{settings: settings}
}

func (s *SettingsPreferencesSource) Load(ctx context.Context) (domain.Preferences, error) {
	prefs, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Preferences{}, err
	}
	markers := make([]domain.Marker, 0, len(prefs.Markers))
	for _, marker := range prefs.Markers {
		markers = append(markers, domain.Marker(marker))
	}
	return domain.Preferences{
		Enabled:  prefs.Enabled,
		Interval: domain.IntervalType(prefs.Interval),
		Markers:  markers,
	}, nil
}
