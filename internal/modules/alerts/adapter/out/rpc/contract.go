// Package rpc defines the stillpoint notifier plugin contract: a minimal
// JSON-over-gRPC service carried by hashicorp/go-plugin. Notifier plugins
// bridge to whatever local notification facility the host platform offers.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey        = "notifier"
	serviceName         = "stillpoint.notifier.v1.Notifier"
	jsonCodecName       = "json"
	methodAuthorization = "/" + serviceName + "/Authorization"
	methodSchedule      = "/" + serviceName + "/Schedule"
	methodCancel        = "/" + serviceName + "/Cancel"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "STILLPOINT_NOTIFIER",
	MagicCookieValue: "stillpoint",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type AuthorizationResponse struct {
	Status string `json:"status"`
}

type ScheduleRequest struct {
	ID            string `json:"id"`
	FireOffsetSec int64  `json:"fire_offset_sec"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}

type CancelRequest struct {
	IDs []string `json:"ids"`
}

type NotifierServer interface {
	Authorization(ctx context.Context, in *Empty) (*AuthorizationResponse, error)
	Schedule(ctx context.Context, in *ScheduleRequest) (*Empty, error)
	Cancel(ctx context.Context, in *CancelRequest) (*Empty, error)
}

type NotifierClient interface {
	Authorization(ctx context.Context) (*AuthorizationResponse, error)
	Schedule(ctx context.Context, in *ScheduleRequest) (*Empty, error)
	Cancel(ctx context.Context, in *CancelRequest) (*Empty, error)
}

type notifierClient struct {
	conn *grpc.ClientConn
}

func NewNotifierClient(conn *grpc.ClientConn) NotifierClient {
	return &notifierClient{conn: conn}
}

func (c *notifierClient) Authorization(ctx context.Context) (*AuthorizationResponse, error) {
	out := &AuthorizationResponse{}
	if err := c.conn.Invoke(ctx, methodAuthorization, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *notifierClient) Schedule(ctx context.Context, in *ScheduleRequest) (*Empty, error) {
	out := &Empty{}
	if err := c.conn.Invoke(ctx, methodSchedule, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *notifierClient) Cancel(ctx context.Context, in *CancelRequest) (*Empty, error) {
	out := &Empty{}
	if err := c.conn.Invoke(ctx, methodCancel, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterNotifierServer(server grpc.ServiceRegistrar, impl NotifierServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*NotifierServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Authorization",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Authorization(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodAuthorization}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Authorization(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Schedule",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &ScheduleRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Schedule(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodSchedule}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*ScheduleRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Schedule(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Cancel",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &CancelRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Cancel(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodCancel}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*CancelRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Cancel(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/notifier-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl NotifierServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterNotifierServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewNotifierClient(conn), nil
}

func PluginMap(impl NotifierServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
