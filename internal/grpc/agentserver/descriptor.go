package agentserver

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// protoFile is the path of api/proto/mancala/agent/v1/agent.proto relative
// to the proto root. It is also the ServiceDesc metadata, which is how gRPC
// reflection finds the descriptor.
const protoFile = "mancala/agent/v1/agent.proto"

func agentFileDescriptor() *descriptorpb.FileDescriptorProto {
	structName := "." + string((&structpb.Struct{}).ProtoReflect().Descriptor().FullName())
	emptyName := "." + string((&emptypb.Empty{}).ProtoReflect().Descriptor().FullName())

	method := func(name, in, out string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(in),
			OutputType: proto.String(out),
		}
	}

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(protoFile),
		Package: proto.String("mancala.agent.v1"),
		Syntax:  proto.String("proto3"),
		Dependency: []string{
			structpb.File_google_protobuf_struct_proto.Path(),
			emptypb.File_google_protobuf_empty_proto.Path(),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("AgentService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("ChooseAction", structName, structName),
				method("Evaluate", structName, structName),
				method("Stats", emptyName, structName),
			},
		}},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/mitchelldurbincs/MancalaReinforcementLearning/internal/grpc/agentserver"),
		},
	}
}

// registerFileDescriptor adds the service descriptor to files unless a file
// with the same path is already there.
func registerFileDescriptor(files *protoregistry.Files) (protoreflect.FileDescriptor, error) {
	if fd, err := files.FindFileByPath(protoFile); err == nil {
		return fd, nil
	}
	fd, err := protodesc.NewFile(agentFileDescriptor(), files)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", protoFile, err)
	}
	if err := files.RegisterFile(fd); err != nil {
		return nil, fmt.Errorf("register %s: %w", protoFile, err)
	}
	return fd, nil
}

func init() {
	if _, err := registerFileDescriptor(protoregistry.GlobalFiles); err != nil {
		panic(err)
	}
}
