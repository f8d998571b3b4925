package out

import (
	"context"

	"stillpoint/internal/modules/settings/domain"
)

// Store is the key-value style preferences persistence boundary. Load
// returns defaults when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (domain.Preferences, error)
	Save(ctx context.Context, prefs domain.Preferences) error
}
