package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	notifierrpc "stillpoint/internal/modules/alerts/adapter/out/rpc"
	"stillpoint/internal/modules/alerts/domain"
	alertsout "stillpoint/internal/modules/alerts/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// PluginNotifier drives an external notifier plugin binary over gRPC. Each
// call connects, invokes, and tears down; alert traffic is sparse enough
// that a persistent connection is not worth managing.
type PluginNotifier struct {
	binary string
}

func NewPluginNotifier(binary string) alertsout.Service {
	return &PluginNotifier{binary: binary}
}

func (p *PluginNotifier) Authorization(ctx context.Context) (domain.AuthorizationStatus, error) {
	client, closeFn, err := p.connect()
	if err != nil {
		return domain.AuthorizationNotDetermined, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.Authorization(callCtx)
	if err != nil {
		return domain.AuthorizationNotDetermined, fmt.Errorf("query notifier authorization: %w", err)
	}
	switch domain.AuthorizationStatus(response.Status) {
	case domain.AuthorizationAuthorized, domain.AuthorizationDenied, domain.AuthorizationNotDetermined:
		return domain.AuthorizationStatus(response.Status), nil
	default:
		return domain.AuthorizationNotDetermined, fmt.Errorf("unknown authorization status %q", response.Status)
	}
}

func (p *PluginNotifier) Schedule(ctx context.Context, alert domain.Alert) error {
	client, closeFn, err := p.connect()
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.Schedule(callCtx, &notifierrpc.ScheduleRequest{
		ID:            alert.ID,
		FireOffsetSec: int64(alert.Offset.Seconds()),
		Title:         alert.Title,
		Body:          alert.Body,
	}); err != nil {
		return fmt.Errorf("schedule alert: %w", err)
	}
	return nil
}

func (p *PluginNotifier) Cancel(ctx context.Context, ids []string) error {
	client, closeFn, err := p.connect()
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.Cancel(callCtx, &notifierrpc.CancelRequest{IDs: ids}); err != nil {
		return fmt.Errorf("cancel alerts: %w", err)
	}
	return nil
}

func (p *PluginNotifier) connect() (notifierrpc.NotifierClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  notifierrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          notifierrpc.PluginMap(nil),
		Cmd:              exec.Command(p.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start notifier plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(notifierrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense notifier plugin: %w", err)
	}
	typed, ok := raw.(notifierrpc.NotifierClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("notifier rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
