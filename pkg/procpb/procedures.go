// Package procpb describes the Procedures gRPC service: named remote
// procedures whose parameters and result rows travel as google.protobuf.Struct.
package procpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "learnplatform.procedures.v1.Procedures"

const (
	CreateStd             = "create_std"
	CreateIns             = "create_ins"
	GetRoleByWallet       = "get_role_by_wallet"
	GetRelativeCourseData = "get_relative_course_data"
)

// ErrorInfo reasons attached to AlreadyExists.
const (
	ReasonWalletTaken   = "WALLET_TAKEN"
	ReasonUsernameTaken = "USERNAME_TAKEN"
	ReasonUserExists    = "USER_EXISTS"
	ErrorDomain         = "procedures.learnplatform"
)

// APIKeyHeader is the metadata key carrying the anon API key.
const APIKeyHeader = "apikey"

func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

type ProceduresClient interface {
	CreateStd(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateIns(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetRoleByWallet(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetRelativeCourseData(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type proceduresClient struct {
	cc grpc.ClientConnInterface
}

func NewProceduresClient(cc grpc.ClientConnInterface) ProceduresClient {
	return &proceduresClient{cc}
}

func (c *proceduresClient) call(ctx context.Context, name string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *proceduresClient) CreateStd(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, CreateStd, in, opts)
}

func (c *proceduresClient) CreateIns(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, CreateIns, in, opts)
}

func (c *proceduresClient) GetRoleByWallet(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, GetRoleByWallet, in, opts)
}

func (c *proceduresClient) GetRelativeCourseData(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, GetRelativeCourseData, in, opts)
}

type ProceduresServer interface {
	CreateStd(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateIns(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRoleByWallet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRelativeCourseData(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedProceduresServer can be embedded to have forward compatible implementations.
type UnimplementedProceduresServer struct{}

func (UnimplementedProceduresServer) CreateStd(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method create_std not implemented")
}

func (UnimplementedProceduresServer) CreateIns(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method create_ins not implemented")
}

func (UnimplementedProceduresServer) GetRoleByWallet(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method get_role_by_wallet not implemented")
}

func (UnimplementedProceduresServer) GetRelativeCourseData(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method get_relative_course_data not implemented")
}

func RegisterProceduresServer(s grpc.ServiceRegistrar, srv ProceduresServer) {
	s.RegisterService(&Procedures_ServiceDesc, srv)
}

type procedure func(ProceduresServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func handler(name string, call procedure) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ProceduresServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(name),
		}
		h := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ProceduresServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, h)
	}
}

var Procedures_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProceduresServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: CreateStd, Handler: handler(CreateStd, ProceduresServer.CreateStd)},
		{MethodName: CreateIns, Handler: handler(CreateIns, ProceduresServer.CreateIns)},
		{MethodName: GetRoleByWallet, Handler: handler(GetRoleByWallet, ProceduresServer.GetRoleByWallet)},
		{MethodName: GetRelativeCourseData, Handler: handler(GetRelativeCourseData, ProceduresServer.GetRelativeCourseData)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "learnplatform/procedures/v1/procedures.proto",
}
