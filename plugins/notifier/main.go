// Reference notifier plugin. It accepts every request and prints what a
// platform notifier would deliver; real plugins bridge to the host OS
// notification facility.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/go-plugin"

	notifierrpc "stillpoint/internal/modules/alerts/adapter/out/rpc"
)

type server struct {
	mu      sync.Mutex
	pending map[string]*notifierrpc.ScheduleRequest
}

func (s *server) Authorization(_ context.Context, _ *notifierrpc.Empty) (*notifierrpc.AuthorizationResponse, error) {
	return &notifierrpc.AuthorizationResponse{Status: "authorized"}, nil
}

func (s *server) Schedule(_ context.Context, in *notifierrpc.ScheduleRequest) (*notifierrpc.Empty, error) {
	if in.ID == "" {
		return nil, fmt.Errorf("alert id is required")
	}
	s.mu.Lock()
	s.pending[in.ID] = in
	s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "notifier: scheduled %s at +%ds: %s\n", in.ID, in.FireOffsetSec, in.Title)
	return &notifierrpc.Empty{}, nil
}

func (s *server) Cancel(_ context.Context, in *notifierrpc.CancelRequest) (*notifierrpc.Empty, error) {
	s.mu.Lock()
	for _, id := range in.IDs {
		delete(s.pending, id)
	}
	s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "notifier: cancelled %d alert(s)\n", len(in.IDs))
	return &notifierrpc.Empty{}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifierrpc.HandshakeConfig,
		Plugins:         notifierrpc.PluginMap(&server{pending: map[string]*notifierrpc.ScheduleRequest{}}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
