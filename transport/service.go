// Package transport exposes authservice.Service as a gRPC service.
// The method contracts and message shapes follow the specification's
// section 6 exactly; the Marshal/Unmarshal step uses the JSON codec
// registered in codec.go rather than a protoc-generated one, per the
// specification's explicit decision to leave the exact protobuf
// framing unspecified.
package transport

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/chaumpedersen/zkpauth/authservice"
	"github.com/chaumpedersen/zkpauth/wire"
)

// AuthServer is the interface grpc.ServiceDesc dispatches against --
// the same role protoc-gen-go-grpc's generated server interface would
// play, had this repository run protoc.
type AuthServer interface {
	signUp(ctx context.Context, req *wire.SignUpRequest) (*wire.SignUpResponse, error)
	commit(ctx context.Context, req *wire.CommitRequest) (*wire.CommitResponse, error)
	authenticate(ctx context.Context, req *wire.AuthRequest) (*wire.AuthResponse, error)
}

// Server adapts an *authservice.Service to gRPC's unary handler
// signature.
type Server struct {
	svc *authservice.Service
	log *zap.Logger
}

// NewServer wraps svc for gRPC serving.
func NewServer(svc *authservice.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log}
}

// Register attaches the Auth service to s.
func Register(s *grpc.Server, srv *Server) {
	s.RegisterService(&serviceDesc, srv)
}

func (s *Server) signUp(ctx context.Context, req *wire.SignUpRequest) (*wire.SignUpResponse, error) {
	resp, err := s.svc.SignUp(ctx, *req)
	return &resp, err
}

func (s *Server) commit(ctx context.Context, req *wire.CommitRequest) (*wire.CommitResponse, error) {
	resp, err := s.svc.Commit(ctx, *req)
	return &resp, err
}

func (s *Server) authenticate(ctx context.Context, req *wire.AuthRequest) (*wire.AuthResponse, error) {
	resp, err := s.svc.Authenticate(ctx, *req)
	return &resp, err
}

func signUpHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wire.SignUpRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Server).signUp(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/auth.Auth/SignUp"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(*Server).signUp(ctx, req.(*wire.SignUpRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func commitHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wire.CommitRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Server).commit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/auth.Auth/Commit"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(*Server).commit(ctx, req.(*wire.CommitRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func authenticateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wire.AuthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(*Server).authenticate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/auth.Auth/Authenticate"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(*Server).authenticate(ctx, req.(*wire.AuthRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// serviceDesc mirrors what protoc-gen-go-grpc would emit for a
// service with three unary methods named SignUp, Commit and
// Authenticate under the "auth.Auth" service name.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: "auth.Auth",
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SignUp", Handler: signUpHandler},
		{MethodName: "Commit", Handler: commitHandler},
		{MethodName: "Authenticate", Handler: authenticateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auth.proto",
}
