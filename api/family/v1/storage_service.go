package familyv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	StorageService_Store_FullMethodName    = "/family.StorageService/Store"
	StorageService_Retrieve_FullMethodName = "/family.StorageService/Retrieve"
)

// StorageServiceClient is the client API for StorageService.
type StorageServiceClient interface {
	Store(ctx context.Context, in *StoredMessage, opts ...grpc.CallOption) (*StoreResult, error)
	Retrieve(ctx context.Context, in *MessageId, opts ...grpc.CallOption) (*StoredMessage, error)
}

type storageServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewStorageServiceClient(cc grpc.ClientConnInterface) StorageServiceClient {
	return &storageServiceClient{cc}
}

func (c *storageServiceClient) Store(ctx context.Context, in *StoredMessage, opts ...grpc.CallOption) (*StoreResult, error) {
	out := new(StoreResult)
	if err := c.cc.Invoke(ctx, StorageService_Store_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageServiceClient) Retrieve(ctx context.Context, in *MessageId, opts ...grpc.CallOption) (*StoredMessage, error) {
	out := new(StoredMessage)
	if err := c.cc.Invoke(ctx, StorageService_Retrieve_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// StorageServiceServer is the server API for StorageService.
type StorageServiceServer interface {
	Store(context.Context, *StoredMessage) (*StoreResult, error)
	Retrieve(context.Context, *MessageId) (*StoredMessage, error)
}

// UnimplementedStorageServiceServer can be embedded to have forward compatible implementations.
type UnimplementedStorageServiceServer struct{}

func (UnimplementedStorageServiceServer) Store(context.Context, *StoredMessage) (*StoreResult, error) {
	return nil, status.Error(codes.Unimplemented, "method Store not implemented")
}

func (UnimplementedStorageServiceServer) Retrieve(context.Context, *MessageId) (*StoredMessage, error) {
	return nil, status.Error(codes.Unimplemented, "method Retrieve not implemented")
}

func RegisterStorageServiceServer(s grpc.ServiceRegistrar, srv StorageServiceServer) {
	s.RegisterService(&StorageService_ServiceDesc, srv)
}

func _StorageService_Store_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(StoredMessage)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServiceServer).Store(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorageService_Store_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorageServiceServer).Store(ctx, req.(*StoredMessage))
	}
	return interceptor(ctx, in, info, handler)
}

func _StorageService_Retrieve_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(MessageId)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServiceServer).Retrieve(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StorageService_Retrieve_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StorageServiceServer).Retrieve(ctx, req.(*MessageId))
	}
	return interceptor(ctx, in, info, handler)
}

// StorageService_ServiceDesc is the grpc.ServiceDesc for StorageService.
var StorageService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "family.StorageService",
	HandlerType: (*StorageServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Store", Handler: _StorageService_Store_Handler},
		{MethodName: "Retrieve", Handler: _StorageService_Retrieve_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "family/v1/family.proto",
}
