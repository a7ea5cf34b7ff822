package grpc

import (
	"context"

	"github.com/dmitrijs2005/pchela/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "pchela.loyalty.LoyaltyService"

// Full method names.
const (
	MethodRegister     = "/" + ServiceName + "/Register"
	MethodMe           = "/" + ServiceName + "/Me"
	MethodPlaceOrder   = "/" + ServiceName + "/PlaceOrder"
	MethodDeleteMe     = "/" + ServiceName + "/DeleteMe"
	MethodListProfiles = "/" + ServiceName + "/ListProfiles"
	MethodMenu         = "/" + ServiceName + "/Menu"
)

// LoyaltyServiceServer is implemented by GRPCServer. Every request and
// response body is a google.protobuf.Struct.
type LoyaltyServiceServer interface {
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Me(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PlaceOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteMe(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListProfiles(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Menu(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type structMethod func(LoyaltyServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name, fullMethod string, call structMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LoyaltyServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LoyaltyServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// LoyaltyServiceDesc describes the service for grpc.Server.RegisterService.
var LoyaltyServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LoyaltyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Register", MethodRegister, LoyaltyServiceServer.Register),
		unaryMethod("Me", MethodMe, LoyaltyServiceServer.Me),
		unaryMethod("PlaceOrder", MethodPlaceOrder, LoyaltyServiceServer.PlaceOrder),
		unaryMethod("DeleteMe", MethodDeleteMe, LoyaltyServiceServer.DeleteMe),
		unaryMethod("ListProfiles", MethodListProfiles, LoyaltyServiceServer.ListProfiles),
		unaryMethod("Menu", MethodMenu, LoyaltyServiceServer.Menu),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pchela/loyalty.proto",
}

// Client calls LoyaltyService over a connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with in and returns the decoded response.
func (c *Client) Call(ctx context.Context, method string, in map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AccessTokenInterceptor attaches the token returned by token to every
// outgoing call. An empty token is not sent.
func AccessTokenInterceptor(token func() string) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		if t := token(); t != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, t)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}
