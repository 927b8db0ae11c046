package remote

import (
	"context"

	"google.golang.org/grpc"
)

// serviceName identifies the worker RPC service. There is no .proto file
// behind this name; the service descriptor below is written by hand because
// this module has no protobuf-codegen toolchain available.
const serviceName = "opencuckoo.compute.v1.Worker"

// workerService is implemented by anything that can execute the three
// kernels on behalf of a remote caller. Server implements it by calling the
// internal solver packages directly, as the CPU reference backend does.
type workerService interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	Count(ctx context.Context, req *CountRequest) (*CountResponse, error)
	Trim(ctx context.Context, req *TrimRequest) (*TrimResponse, error)
	Capabilities(ctx context.Context, req *struct{}) (*CapabilitiesResponse, error)
}

func generateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(GenerateRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(workerService).Generate(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Generate"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(workerService).Generate(ctx, req.(*GenerateRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func countHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(CountRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(workerService).Count(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Count"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(workerService).Count(ctx, req.(*CountRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func trimHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(TrimRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(workerService).Trim(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Trim"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(workerService).Trim(ctx, req.(*TrimRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func capabilitiesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := new(struct{})
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(workerService).Capabilities(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Capabilities"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(workerService).Capabilities(ctx, req.(*struct{}))
	}
	return interceptor(ctx, req, info, handler)
}

// serviceDesc is the hand-written grpc.ServiceDesc normally emitted by
// protoc-gen-go-grpc from a .proto file.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*workerService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Generate", Handler: generateHandler},
		{MethodName: "Count", Handler: countHandler},
		{MethodName: "Trim", Handler: trimHandler},
		{MethodName: "Capabilities", Handler: capabilitiesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "opencuckoo/compute/worker.proto",
}

// RegisterWorkerServer attaches a workerService implementation to a running
// grpc.Server.
func RegisterWorkerServer(s *grpc.Server, srv workerService) {
	s.RegisterService(&serviceDesc, srv)
}
