package usecase

import (
	"context"
	"fmt"

	"stillpoint/internal/modules/settings/dto"
	settingsin "stillpoint/internal/modules/settings/port/in"
	settingsout "stillpoint/internal/modules/settings/port/out"
	apperrors "stillpoint/internal/platform/errors"
)

type Interactor struct {
	store settingsout.Store
}

func NewInteractor(store settingsout.Store) settingsin.Usecase {
	return &Interactor{store: store}
}

func (i *Interactor) Get(ctx context.Context) (dto.PreferencesOutput, error) {
	prefs, err := i.store.Load(ctx)
	if err != nil {
		return dto.PreferencesOutput{}, err
	}
	return dto.PreferencesOutput{Enabled: prefs.Enabled, Interval: prefs.Interval, Markers: prefs.Markers}, nil
}

// Set applies a partial update: only the fields present in the input
// change.
func (i *Interactor) Set(ctx context.Context, input dto.SetInput) (dto.PreferencesOutput, error) {
	prefs, err := i.store.Load(ctx)
	if err != nil {
		return dto.PreferencesOutput{}, err
	}
	if input.Enabled != nil {
		prefs.Enabled = *input.Enabled
	}
	if input.Interval != nil {
		prefs.Interval = *input.Interval
	}
	if input.Markers != nil {
		prefs.Markers = input.Markers
	}
	if err := prefs.Validate(); err != nil {
		return dto.PreferencesOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := i.store.Save(ctx, prefs); err != nil {
		return dto.PreferencesOutput{}, err
	}
	return dto.PreferencesOutput{Enabled: prefs.Enabled, Interval: prefs.Interval, Markers: prefs.Markers}, nil
}
