package grpc

// proto.go defines the gRPC server interface derived from
// baantk/borrower/v1/borrower.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// BorrowerServiceServer is the server API for BorrowerService.
// It mirrors the proto-generated interface from baantk.borrower.v1.BorrowerService.
type BorrowerServiceServer interface {
	SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmitApplicationResponse, error)
	GetBorrower(context.Context, *GetBorrowerRequest) (*GetBorrowerResponse, error)
	DecideApplication(context.Context, *DecideApplicationRequest) (*DecideApplicationResponse, error)
	SignContract(context.Context, *SignContractRequest) (*SignContractResponse, error)
	RecordPayment(context.Context, *RecordPaymentRequest) (*RecordPaymentResponse, error)
	RunOverdueSweep(context.Context, *RunOverdueSweepRequest) (*RunOverdueSweepResponse, error)
	mustEmbedUnimplementedBorrowerServiceServer()
}

// UnimplementedBorrowerServiceServer provides forward-compatible default implementations.
type UnimplementedBorrowerServiceServer struct{}

func (UnimplementedBorrowerServiceServer) SubmitApplication(context.Context, *SubmitApplicationRequest) (*SubmitApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitApplication not implemented")
}
func (UnimplementedBorrowerServiceServer) GetBorrower(context.Context, *GetBorrowerRequest) (*GetBorrowerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBorrower not implemented")
}
func (UnimplementedBorrowerServiceServer) DecideApplication(context.Context, *DecideApplicationRequest) (*DecideApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DecideApplication not implemented")
}
func (UnimplementedBorrowerServiceServer) SignContract(context.Context, *SignContractRequest) (*SignContractResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SignContract not implemented")
}
func (UnimplementedBorrowerServiceServer) RecordPayment(context.Context, *RecordPaymentRequest) (*RecordPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordPayment not implemented")
}
func (UnimplementedBorrowerServiceServer) RunOverdueSweep(context.Context, *RunOverdueSweepRequest) (*RunOverdueSweepResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunOverdueSweep not implemented")
}
func (UnimplementedBorrowerServiceServer) mustEmbedUnimplementedBorrowerServiceServer() {}

// RegisterBorrowerServiceServer registers the BorrowerServiceServer with the gRPC server.
func RegisterBorrowerServiceServer(s *grpclib.Server, srv BorrowerServiceServer) {
	s.RegisterService(&_BorrowerService_serviceDesc, srv)
}

var _BorrowerService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "baantk.borrower.v1.BorrowerService",
	HandlerType: (*BorrowerServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "SubmitApplication", Handler: _BorrowerService_SubmitApplication_Handler},
		{MethodName: "GetBorrower", Handler: _BorrowerService_GetBorrower_Handler},
		{MethodName: "DecideApplication", Handler: _BorrowerService_DecideApplication_Handler},
		{MethodName: "SignContract", Handler: _BorrowerService_SignContract_Handler},
		{MethodName: "RecordPayment", Handler: _BorrowerService_RecordPayment_Handler},
		{MethodName: "RunOverdueSweep", Handler: _BorrowerService_RunOverdueSweep_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _BorrowerService_SubmitApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BorrowerServiceServer).SubmitApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/baantk.borrower.v1.BorrowerService/SubmitApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BorrowerServiceServer).SubmitApplication(ctx, req.(*SubmitApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BorrowerService_GetBorrower_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetBorrowerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BorrowerServiceServer).GetBorrower(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/baantk.borrower.v1.BorrowerService/GetBorrower",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BorrowerServiceServer).GetBorrower(ctx, req.(*GetBorrowerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BorrowerService_DecideApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DecideApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BorrowerServiceServer).DecideApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/baantk.borrower.v1.BorrowerService/DecideApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BorrowerServiceServer).DecideApplication(ctx, req.(*DecideApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BorrowerService_SignContract_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SignContractRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BorrowerServiceServer).SignContract(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/baantk.borrower.v1.BorrowerService/SignContract",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BorrowerServiceServer).SignContract(ctx, req.(*SignContractRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BorrowerService_RecordPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RecordPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BorrowerServiceServer).RecordPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/baantk.borrower.v1.BorrowerService/RecordPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BorrowerServiceServer).RecordPayment(ctx, req.(*RecordPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _BorrowerService_RunOverdueSweep_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RunOverdueSweepRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BorrowerServiceServer).RunOverdueSweep(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/baantk.borrower.v1.BorrowerService/RunOverdueSweep",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BorrowerServiceServer).RunOverdueSweep(ctx, req.(*RunOverdueSweepRequest))
	}
	return interceptor(ctx, in, info, handler)
}
