package agentserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "mancala.agent.v1.AgentService"

const (
	chooseActionMethod = "/" + ServiceName + "/ChooseAction"
	evaluateMethod     = "/" + ServiceName + "/Evaluate"
	statsMethod        = "/" + ServiceName + "/Stats"
)

// AgentServiceServer is the server API for the agent service. Requests and
// responses are google.protobuf.Struct documents so the service needs no
// generated message types.
type AgentServiceServer interface {
	// ChooseAction takes {"player", "rows", "explore"} and returns
	// {"side", "hole", "value"}.
	ChooseAction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// Evaluate takes {"player", "rows"} and returns the learned value of
	// every legal action plus the greedy choice.
	Evaluate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// Stats reports table size, hyper-parameters and training progress.
	Stats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterAgentServiceServer registers srv with s.
func RegisterAgentServiceServer(s grpc.ServiceRegistrar, srv AgentServiceServer) {
	s.RegisterService(&AgentService_ServiceDesc, srv)
}

func _AgentService_ChooseAction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AgentServiceServer).ChooseAction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: chooseActionMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AgentServiceServer).ChooseAction(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _AgentService_Evaluate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AgentServiceServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: evaluateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AgentServiceServer).Evaluate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _AgentService_Stats_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AgentServiceServer).Stats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: statsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AgentServiceServer).Stats(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// AgentService_ServiceDesc is the grpc.ServiceDesc for the agent service.
var AgentService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AgentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ChooseAction", Handler: _AgentService_ChooseAction_Handler},
		{MethodName: "Evaluate", Handler: _AgentService_Evaluate_Handler},
		{MethodName: "Stats", Handler: _AgentService_Stats_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFile,
}
