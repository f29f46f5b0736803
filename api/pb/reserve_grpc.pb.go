package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ReserveService_Deposit_FullMethodName           = "/makerbook.ReserveService/Deposit"
	ReserveService_Withdraw_FullMethodName          = "/makerbook.ReserveService/Withdraw"
	ReserveService_SubmitOrder_FullMethodName       = "/makerbook.ReserveService/SubmitOrder"
	ReserveService_SubmitOrderBatch_FullMethodName  = "/makerbook.ReserveService/SubmitOrderBatch"
	ReserveService_UpdateOrder_FullMethodName       = "/makerbook.ReserveService/UpdateOrder"
	ReserveService_UpdateOrderBatch_FullMethodName  = "/makerbook.ReserveService/UpdateOrderBatch"
	ReserveService_CancelOrder_FullMethodName       = "/makerbook.ReserveService/CancelOrder"
	ReserveService_GetConversionRate_FullMethodName = "/makerbook.ReserveService/GetConversionRate"
	ReserveService_Trade_FullMethodName             = "/makerbook.ReserveService/Trade"
	ReserveService_GetBook_FullMethodName           = "/makerbook.ReserveService/GetBook"
	ReserveService_GetLimits_FullMethodName         = "/makerbook.ReserveService/GetLimits"
)

// ReserveServiceClient is the client API for ReserveService.
type ReserveServiceClient interface {
	Deposit(ctx context.Context, in *DepositRequest, opts ...grpc.CallOption) (*FundsResponse, error)
	Withdraw(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*FundsResponse, error)
	SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*SubmitOrderResponse, error)
	SubmitOrderBatch(ctx context.Context, in *SubmitOrderBatchRequest, opts ...grpc.CallOption) (*SubmitOrderBatchResponse, error)
	UpdateOrder(ctx context.Context, in *UpdateOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	UpdateOrderBatch(ctx context.Context, in *UpdateOrderBatchRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	CancelOrder(ctx context.Context, in *CancelOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	GetConversionRate(ctx context.Context, in *GetRateRequest, opts ...grpc.CallOption) (*GetRateResponse, error)
	Trade(ctx context.Context, in *TradeRequest, opts ...grpc.CallOption) (*TradeResponse, error)
	GetBook(ctx context.Context, in *BookRequest, opts ...grpc.CallOption) (*BookResponse, error)
	GetLimits(ctx context.Context, in *LimitsRequest, opts ...grpc.CallOption) (*LimitsResponse, error)
}

type reserveServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewReserveServiceClient(cc grpc.ClientConnInterface) ReserveServiceClient {
	return &reserveServiceClient{cc}
}

func (c *reserveServiceClient) Deposit(ctx context.Context, in *DepositRequest, opts ...grpc.CallOption) (*FundsResponse, error) {
	out := new(FundsResponse)
	if err := c.cc.Invoke(ctx, ReserveService_Deposit_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reserveServiceClient) Withdraw(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*FundsResponse, error) {
	out := new(FundsResponse)
	if err := c.cc.Invoke(ctx, ReserveService_Withdraw_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reserveServiceClient) SubmitOrder(ctx context.Context, in *SubmitOrderRequest, opts ...grpc.CallOption) (*SubmitOrderResponse, error) {
	out := new(SubmitOrderResponse)
	if err := c.cc.Invoke(ctx, ReserveService_SubmitOrder_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reserveServiceClient) SubmitOrderBatch(ctx context.Context, in *SubmitOrderBatchRequest, opts ...grpc.CallOption) (*SubmitOrderBatchResponse, error) {
	out := new(SubmitOrderBatchResponse)
	if err := c.cc.Invoke(ctx, ReserveService_SubmitOrderBatch_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reserveServiceClient) UpdateOrder(ctx context.Context, in *UpdateOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	out := new(OrderResponse)
	if err := c.cc.Invoke(ctx, ReserveService_UpdateOrder_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reserveServiceClient) UpdateOrderBatch(ctx context.Context, in *UpdateOrderBatchRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	out := new(OrderResponse)
	if err := c.cc.Invoke(ctx, ReserveService_UpdateOrderBatch_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reserveServiceClient) CancelOrder(ctx context.Context, in *CancelOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	out := new(OrderResponse)
	if err := c.cc.Invoke(ctx, ReserveService_CancelOrder_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reserveServiceClient) GetConversionRate(ctx context.Context, in *GetRateRequest, opts ...grpc.CallOption) (*GetRateResponse, error) {
	out := new(GetRateResponse)
	if err := c.cc.Invoke(ctx, ReserveService_GetConversionRate_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reserveServiceClient) Trade(ctx context.Context, in *TradeRequest, opts ...grpc.CallOption) (*TradeResponse, error) {
	out := new(TradeResponse)
	if err := c.cc.Invoke(ctx, ReserveService_Trade_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reserveServiceClient) GetBook(ctx context.Context, in *BookRequest, opts ...grpc.CallOption) (*BookResponse, error) {
	out := new(BookResponse)
	if err := c.cc.Invoke(ctx, ReserveService_GetBook_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reserveServiceClient) GetLimits(ctx context.Context, in *LimitsRequest, opts ...grpc.CallOption) (*LimitsResponse, error) {
	out := new(LimitsResponse)
	if err := c.cc.Invoke(ctx, ReserveService_GetLimits_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ReserveServiceServer is the server API for ReserveService.
// All implementations must embed UnimplementedReserveServiceServer.
type ReserveServiceServer interface {
	Deposit(context.Context, *DepositRequest) (*FundsResponse, error)
	Withdraw(context.Context, *WithdrawRequest) (*FundsResponse, error)
	SubmitOrder(context.Context, *SubmitOrderRequest) (*SubmitOrderResponse, error)
	SubmitOrderBatch(context.Context, *SubmitOrderBatchRequest) (*SubmitOrderBatchResponse, error)
	UpdateOrder(context.Context, *UpdateOrderRequest) (*OrderResponse, error)
	UpdateOrderBatch(context.Context, *UpdateOrderBatchRequest) (*OrderResponse, error)
	CancelOrder(context.Context, *CancelOrderRequest) (*OrderResponse, error)
	GetConversionRate(context.Context, *GetRateRequest) (*GetRateResponse, error)
	Trade(context.Context, *TradeRequest) (*TradeResponse, error)
	GetBook(context.Context, *BookRequest) (*BookResponse, error)
	GetLimits(context.Context, *LimitsRequest) (*LimitsResponse, error)
	mustEmbedUnimplementedReserveServiceServer()
}

// UnimplementedReserveServiceServer must be embedded for forward
// compatibility.
type UnimplementedReserveServiceServer struct{}

func (UnimplementedReserveServiceServer) Deposit(context.Context, *DepositRequest) (*FundsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Deposit not implemented")
}
func (UnimplementedReserveServiceServer) Withdraw(context.Context, *WithdrawRequest) (*FundsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Withdraw not implemented")
}
func (UnimplementedReserveServiceServer) SubmitOrder(context.Context, *SubmitOrderRequest) (*SubmitOrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitOrder not implemented")
}
func (UnimplementedReserveServiceServer) SubmitOrderBatch(context.Context, *SubmitOrderBatchRequest) (*SubmitOrderBatchResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitOrderBatch not implemented")
}
func (UnimplementedReserveServiceServer) UpdateOrder(context.Context, *UpdateOrderRequest) (*OrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateOrder not implemented")
}
func (UnimplementedReserveServiceServer) UpdateOrderBatch(context.Context, *UpdateOrderBatchRequest) (*OrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateOrderBatch not implemented")
}
func (UnimplementedReserveServiceServer) CancelOrder(context.Context, *CancelOrderRequest) (*OrderResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CancelOrder not implemented")
}
func (UnimplementedReserveServiceServer) GetConversionRate(context.Context, *GetRateRequest) (*GetRateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetConversionRate not implemented")
}
func (UnimplementedReserveServiceServer) Trade(context.Context, *TradeRequest) (*TradeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Trade not implemented")
}
func (UnimplementedReserveServiceServer) GetBook(context.Context, *BookRequest) (*BookResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBook not implemented")
}
func (UnimplementedReserveServiceServer) GetLimits(context.Context, *LimitsRequest) (*LimitsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLimits not implemented")
}
func (UnimplementedReserveServiceServer) mustEmbedUnimplementedReserveServiceServer() {}

func RegisterReserveServiceServer(s grpc.ServiceRegistrar, srv ReserveServiceServer) {
	s.RegisterService(&ReserveService_ServiceDesc, srv)
}

func _ReserveService_Deposit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DepositRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReserveServiceServer).Deposit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReserveService_Deposit_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReserveServiceServer).Deposit(ctx, req.(*DepositRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReserveService_Withdraw_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(WithdrawRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReserveServiceServer).Withdraw(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReserveService_Withdraw_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReserveServiceServer).Withdraw(ctx, req.(*WithdrawRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReserveService_SubmitOrder_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReserveServiceServer).SubmitOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReserveService_SubmitOrder_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReserveServiceServer).SubmitOrder(ctx, req.(*SubmitOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReserveService_SubmitOrderBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitOrderBatchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReserveServiceServer).SubmitOrderBatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReserveService_SubmitOrderBatch_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReserveServiceServer).SubmitOrderBatch(ctx, req.(*SubmitOrderBatchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReserveService_UpdateOrder_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReserveServiceServer).UpdateOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReserveService_UpdateOrder_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReserveServiceServer).UpdateOrder(ctx, req.(*UpdateOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReserveService_UpdateOrderBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateOrderBatchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReserveServiceServer).UpdateOrderBatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReserveService_UpdateOrderBatch_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReserveServiceServer).UpdateOrderBatch(ctx, req.(*UpdateOrderBatchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReserveService_CancelOrder_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CancelOrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReserveServiceServer).CancelOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReserveService_CancelOrder_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReserveServiceServer).CancelOrder(ctx, req.(*CancelOrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReserveService_GetConversionRate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetRateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReserveServiceServer).GetConversionRate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReserveService_GetConversionRate_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReserveServiceServer).GetConversionRate(ctx, req.(*GetRateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReserveService_Trade_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(TradeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReserveServiceServer).Trade(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReserveService_Trade_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReserveServiceServer).Trade(ctx, req.(*TradeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReserveService_GetBook_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(BookRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReserveServiceServer).GetBook(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReserveService_GetBook_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReserveServiceServer).GetBook(ctx, req.(*BookRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ReserveService_GetLimits_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LimitsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ReserveServiceServer).GetLimits(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReserveService_GetLimits_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReserveServiceServer).GetLimits(ctx, req.(*LimitsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ReserveService_ServiceDesc is the grpc.ServiceDesc for ReserveService.
var ReserveService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "makerbook.ReserveService",
	HandlerType: (*ReserveServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Deposit", Handler: _ReserveService_Deposit_Handler},
		{MethodName: "Withdraw", Handler: _ReserveService_Withdraw_Handler},
		{MethodName: "SubmitOrder", Handler: _ReserveService_SubmitOrder_Handler},
		{MethodName: "SubmitOrderBatch", Handler: _ReserveService_SubmitOrderBatch_Handler},
		{MethodName: "UpdateOrder", Handler: _ReserveService_UpdateOrder_Handler},
		{MethodName: "UpdateOrderBatch", Handler: _ReserveService_UpdateOrderBatch_Handler},
		{MethodName: "CancelOrder", Handler: _ReserveService_CancelOrder_Handler},
		{MethodName: "GetConversionRate", Handler: _ReserveService_GetConversionRate_Handler},
		{MethodName: "Trade", Handler: _ReserveService_Trade_Handler},
		{MethodName: "GetBook", Handler: _ReserveService_GetBook_Handler},
		{MethodName: "GetLimits", Handler: _ReserveService_GetLimits_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/pb/reserve.proto",
}
