package familyv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	FamilyService_Join_FullMethodName      = "/family.FamilyService/Join"
	FamilyService_GetFamily_FullMethodName = "/family.FamilyService/GetFamily"
)

// FamilyServiceClient is the client API for FamilyService.
type FamilyServiceClient interface {
	Join(ctx context.Context, in *NodeInfo, opts ...grpc.CallOption) (*FamilyView, error)
	GetFamily(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*FamilyView, error)
}

type familyServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFamilyServiceClient(cc grpc.ClientConnInterface) FamilyServiceClient {
	return &familyServiceClient{cc}
}

func (c *familyServiceClient) Join(ctx context.Context, in *NodeInfo, opts ...grpc.CallOption) (*FamilyView, error) {
	out := new(FamilyView)
	if err := c.cc.Invoke(ctx, FamilyService_Join_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *familyServiceClient) GetFamily(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*FamilyView, error) {
	out := new(FamilyView)
	if err := c.cc.Invoke(ctx, FamilyService_GetFamily_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// FamilyServiceServer is the server API for FamilyService.
type FamilyServiceServer interface {
	Join(context.Context, *NodeInfo) (*FamilyView, error)
	GetFamily(context.Context, *Empty) (*FamilyView, error)
}

// UnimplementedFamilyServiceServer can be embedded to have forward compatible implementations.
type UnimplementedFamilyServiceServer struct{}

func (UnimplementedFamilyServiceServer) Join(context.Context, *NodeInfo) (*FamilyView, error) {
	return nil, status.Error(codes.Unimplemented, "method Join not implemented")
}

func (UnimplementedFamilyServiceServer) GetFamily(context.Context, *Empty) (*FamilyView, error) {
	return nil, status.Error(codes.Unimplemented, "method GetFamily not implemented")
}

func RegisterFamilyServiceServer(s grpc.ServiceRegistrar, srv FamilyServiceServer) {
	s.RegisterService(&FamilyService_ServiceDesc, srv)
}

func _FamilyService_Join_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(NodeInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FamilyServiceServer).Join(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FamilyService_Join_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FamilyServiceServer).Join(ctx, req.(*NodeInfo))
	}
	return interceptor(ctx, in, info, handler)
}

func _FamilyService_GetFamily_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FamilyServiceServer).GetFamily(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FamilyService_GetFamily_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FamilyServiceServer).GetFamily(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// FamilyService_ServiceDesc is the grpc.ServiceDesc for FamilyService.
var FamilyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "family.FamilyService",
	HandlerType: (*FamilyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Join", Handler: _FamilyService_Join_Handler},
		{MethodName: "GetFamily", Handler: _FamilyService_GetFamily_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "family/v1/family.proto",
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
