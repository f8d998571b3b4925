package out

import (
	"context"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"stillpoint/internal/modules/alerts/domain"
	alertsout "stillpoint/internal/modules/alerts/port/out"
)

// LogNotifier is the in-process alert service used when no notifier plugin
// is configured. It keeps the pending set in memory and reports each
// request to the log.
type LogNotifier struct {
	mu      sync.Mutex
	pending map[string]domain.Alert
	logger  hclog.Logger
}

func NewLogNotifier(logger hclog.Logger) *LogNotifier {
	return &LogNotifier{pending: make(map[string]domain.Alert), logger: logger}
}

var _ alertsout.Service = (*LogNotifier)(nil)

func (n *LogNotifier) Authorization(context.Context) (domain.AuthorizationStatus, error) {
	return domain.AuthorizationAuthorized, nil
}

func (n *LogNotifier) Schedule(_ context.Context, alert domain.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending[alert.ID] = alert
	n.logger.Debug("alert scheduled", "id", alert.ID, "offset", alert.Offset)
	return nil
}

func (n *LogNotifier) Cancel(_ context.Context, ids []string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, id := range ids {
		delete(n.pending, id)
	}
	n.logger.Debug("alerts cancelled", "count", len(ids))
	return nil
}

// Pending returns the IDs of alerts still scheduled.
func (n *LogNotifier) Pending() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	ids := make([]string, 0, len(n.pending))
	for id := range n.pending {
		ids = append(ids, id)
	}
	return ids
}
