// Hand-maintained bindings for reserve.proto, in the pre-APIv2
// generated shape: the messages implement the legacy proto.Message
// interface and the runtime derives their descriptors from the struct
// tags, so the gRPC codec serializes them without generated
// reflection state. Regenerate with protoc once the build pipeline
// carries it; field numbers must stay in sync with the proto file.
package pb

import (
	"fmt"
)

// -------------------- Enums --------------------

type Direction int32

const (
	Direction_TOKEN_TO_ETH Direction = 0
	Direction_ETH_TO_TOKEN Direction = 1
)

type Asset int32

const (
	Asset_TOKEN Asset = 0
	Asset_ETH   Asset = 1
	Asset_KNC   Asset = 2
)

// -------------------- Messages --------------------

type DepositRequest struct {
	Maker  string `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Asset  Asset  `protobuf:"varint,2,opt,name=asset,proto3" json:"asset,omitempty"`
	Amount string `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

type WithdrawRequest struct {
	Maker  string `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Asset  Asset  `protobuf:"varint,2,opt,name=asset,proto3" json:"asset,omitempty"`
	Amount string `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

type FundsResponse struct {
	Status string `protobuf:"bytes,1,opt,name=status,proto3" json:"status,omitempty"`
}

type SubmitOrderRequest struct {
	Maker string    `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Dir   Direction `protobuf:"varint,2,opt,name=dir,proto3" json:"dir,omitempty"`
	Src   string    `protobuf:"bytes,3,opt,name=src,proto3" json:"src,omitempty"`
	Dst   string    `protobuf:"bytes,4,opt,name=dst,proto3" json:"dst,omitempty"`
	Hint  uint32    `protobuf:"varint,5,opt,name=hint,proto3" json:"hint,omitempty"`
}

type SubmitOrderResponse struct {
	Status  string `protobuf:"bytes,1,opt,name=status,proto3" json:"status,omitempty"`
	OrderId uint32 `protobuf:"varint,2,opt,name=order_id,json=orderId,proto3" json:"order_id,omitempty"`
}

type SubmitOrderBatchRequest struct {
	Maker       string    `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Dir         Direction `protobuf:"varint,2,opt,name=dir,proto3" json:"dir,omitempty"`
	Srcs        []string  `protobuf:"bytes,3,rep,name=srcs,proto3" json:"srcs,omitempty"`
	Dsts        []string  `protobuf:"bytes,4,rep,name=dsts,proto3" json:"dsts,omitempty"`
	Hints       []uint32  `protobuf:"varint,5,rep,packed,name=hints,proto3" json:"hints,omitempty"`
	IsAfterPrev []bool    `protobuf:"varint,6,rep,packed,name=is_after_prev,json=isAfterPrev,proto3" json:"is_after_prev,omitempty"`
}

type SubmitOrderBatchResponse struct {
	Status   string   `protobuf:"bytes,1,opt,name=status,proto3" json:"status,omitempty"`
	OrderIds []uint32 `protobuf:"varint,2,rep,packed,name=order_ids,json=orderIds,proto3" json:"order_ids,omitempty"`
}

type UpdateOrderRequest struct {
	Maker   string    `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Dir     Direction `protobuf:"varint,2,opt,name=dir,proto3" json:"dir,omitempty"`
	OrderId uint32    `protobuf:"varint,3,opt,name=order_id,json=orderId,proto3" json:"order_id,omitempty"`
	Src     string    `protobuf:"bytes,4,opt,name=src,proto3" json:"src,omitempty"`
	Dst     string    `protobuf:"bytes,5,opt,name=dst,proto3" json:"dst,omitempty"`
	Hint    uint32    `protobuf:"varint,6,opt,name=hint,proto3" json:"hint,omitempty"`
}

type UpdateOrderBatchRequest struct {
	Maker    string    `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Dir      Direction `protobuf:"varint,2,opt,name=dir,proto3" json:"dir,omitempty"`
	OrderIds []uint32  `protobuf:"varint,3,rep,packed,name=order_ids,json=orderIds,proto3" json:"order_ids,omitempty"`
	Srcs     []string  `protobuf:"bytes,4,rep,name=srcs,proto3" json:"srcs,omitempty"`
	Dsts     []string  `protobuf:"bytes,5,rep,name=dsts,proto3" json:"dsts,omitempty"`
	Hints    []uint32  `protobuf:"varint,6,rep,packed,name=hints,proto3" json:"hints,omitempty"`
}

type CancelOrderRequest struct {
	Maker   string    `protobuf:"bytes,1,opt,name=maker,proto3" json:"maker,omitempty"`
	Dir     Direction `protobuf:"varint,2,opt,name=dir,proto3" json:"dir,omitempty"`
	OrderId uint32    `protobuf:"varint,3,opt,name=order_id,json=orderId,proto3" json:"order_id,omitempty"`
}

type OrderResponse struct {
	Status string `protobuf:"bytes,1,opt,name=status,proto3" json:"status,omitempty"`
}

type GetRateRequest struct {
	Src    Asset  `protobuf:"varint,1,opt,name=src,proto3" json:"src,omitempty"`
	Dst    Asset  `protobuf:"varint,2,opt,name=dst,proto3" json:"dst,omitempty"`
	SrcQty string `protobuf:"bytes,3,opt,name=src_qty,json=srcQty,proto3" json:"src_qty,omitempty"`
}

type GetRateResponse struct {
	Rate string `protobuf:"bytes,1,opt,name=rate,proto3" json:"rate,omitempty"`
}

type TradeRequest struct {
	Caller         string `protobuf:"bytes,1,opt,name=caller,proto3" json:"caller,omitempty"`
	Src            Asset  `protobuf:"varint,2,opt,name=src,proto3" json:"src,omitempty"`
	SrcAmount      string `protobuf:"bytes,3,opt,name=src_amount,json=srcAmount,proto3" json:"src_amount,omitempty"`
	Dst            Asset  `protobuf:"varint,4,opt,name=dst,proto3" json:"dst,omitempty"`
	Recipient      string `protobuf:"bytes,5,opt,name=recipient,proto3" json:"recipient,omitempty"`
	ConversionRate string `protobuf:"bytes,6,opt,name=conversion_rate,json=conversionRate,proto3" json:"conversion_rate,omitempty"`
	Validate       bool   `protobuf:"varint,7,opt,name=validate,proto3" json:"validate,omitempty"`
	AttachedWei    string `protobuf:"bytes,8,opt,name=attached_wei,json=attachedWei,proto3" json:"attached_wei,omitempty"`
}

type FillEntry struct {
	OrderId  uint32 `protobuf:"varint,1,opt,name=order_id,json=orderId,proto3" json:"order_id,omitempty"`
	Maker    string `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker,omitempty"`
	TakenSrc string `protobuf:"bytes,3,opt,name=taken_src,json=takenSrc,proto3" json:"taken_src,omitempty"`
	PaidDst  string `protobuf:"bytes,4,opt,name=paid_dst,json=paidDst,proto3" json:"paid_dst,omitempty"`
	Removed  bool   `protobuf:"varint,5,opt,name=removed,proto3" json:"removed,omitempty"`
}

type TradeResponse struct {
	Status    string       `protobuf:"bytes,1,opt,name=status,proto3" json:"status,omitempty"`
	DstAmount string       `protobuf:"bytes,2,opt,name=dst_amount,json=dstAmount,proto3" json:"dst_amount,omitempty"`
	Fills     []*FillEntry `protobuf:"bytes,3,rep,name=fills,proto3" json:"fills,omitempty"`
}

type BookRequest struct {
	Dir Direction `protobuf:"varint,1,opt,name=dir,proto3" json:"dir,omitempty"`
}

type OrderEntry struct {
	Id    uint32 `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Maker string `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker,omitempty"`
	Src   string `protobuf:"bytes,3,opt,name=src,proto3" json:"src,omitempty"`
	Dst   string `protobuf:"bytes,4,opt,name=dst,proto3" json:"dst,omitempty"`
}

type BookResponse struct {
	Orders []*OrderEntry `protobuf:"bytes,1,rep,name=orders,proto3" json:"orders,omitempty"`
}

type LimitsRequest struct{}

type LimitsResponse struct {
	MinOrderSizeUsd    int64  `protobuf:"varint,1,opt,name=min_order_size_usd,json=minOrderSizeUsd,proto3" json:"min_order_size_usd,omitempty"`
	MaxOrdersPerTrade  int32  `protobuf:"varint,2,opt,name=max_orders_per_trade,json=maxOrdersPerTrade,proto3" json:"max_orders_per_trade,omitempty"`
	MinNewOrderWei     string `protobuf:"bytes,3,opt,name=min_new_order_wei,json=minNewOrderWei,proto3" json:"min_new_order_wei,omitempty"`
	MinRestingOrderWei string `protobuf:"bytes,4,opt,name=min_resting_order_wei,json=minRestingOrderWei,proto3" json:"min_resting_order_wei,omitempty"`
}

// -------------------- proto.Message plumbing --------------------

func (m *DepositRequest) Reset()           { *m = DepositRequest{} }
func (m *WithdrawRequest) Reset()          { *m = WithdrawRequest{} }
func (m *FundsResponse) Reset()            { *m = FundsResponse{} }
func (m *SubmitOrderRequest) Reset()       { *m = SubmitOrderRequest{} }
func (m *SubmitOrderResponse) Reset()      { *m = SubmitOrderResponse{} }
func (m *SubmitOrderBatchRequest) Reset()  { *m = SubmitOrderBatchRequest{} }
func (m *SubmitOrderBatchResponse) Reset() { *m = SubmitOrderBatchResponse{} }
func (m *UpdateOrderRequest) Reset()       { *m = UpdateOrderRequest{} }
func (m *UpdateOrderBatchRequest) Reset()  { *m = UpdateOrderBatchRequest{} }
func (m *CancelOrderRequest) Reset()       { *m = CancelOrderRequest{} }
func (m *OrderResponse) Reset()            { *m = OrderResponse{} }
func (m *GetRateRequest) Reset()           { *m = GetRateRequest{} }
func (m *GetRateResponse) Reset()          { *m = GetRateResponse{} }
func (m *TradeRequest) Reset()             { *m = TradeRequest{} }
func (m *FillEntry) Reset()                { *m = FillEntry{} }
func (m *TradeResponse) Reset()            { *m = TradeResponse{} }
func (m *BookRequest) Reset()              { *m = BookRequest{} }
func (m *OrderEntry) Reset()               { *m = OrderEntry{} }
func (m *BookResponse) Reset()             { *m = BookResponse{} }
func (m *LimitsRequest) Reset()            { *m = LimitsRequest{} }
func (m *LimitsResponse) Reset()           { *m = LimitsResponse{} }

func (m *DepositRequest) String() string           { return fmt.Sprintf("%+v", *m) }
func (m *WithdrawRequest) String() string          { return fmt.Sprintf("%+v", *m) }
func (m *FundsResponse) String() string            { return fmt.Sprintf("%+v", *m) }
func (m *SubmitOrderRequest) String() string       { return fmt.Sprintf("%+v", *m) }
func (m *SubmitOrderResponse) String() string      { return fmt.Sprintf("%+v", *m) }
func (m *SubmitOrderBatchRequest) String() string  { return fmt.Sprintf("%+v", *m) }
func (m *SubmitOrderBatchResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (m *UpdateOrderRequest) String() string       { return fmt.Sprintf("%+v", *m) }
func (m *UpdateOrderBatchRequest) String() string  { return fmt.Sprintf("%+v", *m) }
func (m *CancelOrderRequest) String() string       { return fmt.Sprintf("%+v", *m) }
func (m *OrderResponse) String() string            { return fmt.Sprintf("%+v", *m) }
func (m *GetRateRequest) String() string           { return fmt.Sprintf("%+v", *m) }
func (m *GetRateResponse) String() string          { return fmt.Sprintf("%+v", *m) }
func (m *TradeRequest) String() string             { return fmt.Sprintf("%+v", *m) }
func (m *FillEntry) String() string                { return fmt.Sprintf("%+v", *m) }
func (m *TradeResponse) String() string            { return fmt.Sprintf("%+v", *m) }
func (m *BookRequest) String() string              { return fmt.Sprintf("%+v", *m) }
func (m *OrderEntry) String() string               { return fmt.Sprintf("%+v", *m) }
func (m *BookResponse) String() string             { return fmt.Sprintf("%+v", *m) }
func (m *LimitsRequest) String() string            { return fmt.Sprintf("%+v", *m) }
func (m *LimitsResponse) String() string           { return fmt.Sprintf("%+v", *m) }

func (*DepositRequest) ProtoMessage()           {}
func (*WithdrawRequest) ProtoMessage()          {}
func (*FundsResponse) ProtoMessage()            {}
func (*SubmitOrderRequest) ProtoMessage()       {}
func (*SubmitOrderResponse) ProtoMessage()      {}
func (*SubmitOrderBatchRequest) ProtoMessage()  {}
func (*SubmitOrderBatchResponse) ProtoMessage() {}
func (*UpdateOrderRequest) ProtoMessage()       {}
func (*UpdateOrderBatchRequest) ProtoMessage()  {}
func (*CancelOrderRequest) ProtoMessage()       {}
func (*OrderResponse) ProtoMessage()            {}
func (*GetRateRequest) ProtoMessage()           {}
func (*GetRateResponse) ProtoMessage()          {}
func (*TradeRequest) ProtoMessage()             {}
func (*FillEntry) ProtoMessage()                {}
func (*TradeResponse) ProtoMessage()            {}
func (*BookRequest) ProtoMessage()              {}
func (*OrderEntry) ProtoMessage()               {}
func (*BookResponse) ProtoMessage()             {}
func (*LimitsRequest) ProtoMessage()            {}
func (*LimitsResponse) ProtoMessage()           {}
