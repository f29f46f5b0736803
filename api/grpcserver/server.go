package grpcserver

import (
	"context"
	"errors"
	"log"
	"math/big"

	pb "makerbook/api/pb"
	"makerbook/domain/book"
	"makerbook/domain/ledger"
	"makerbook/engine"
	"makerbook/service"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Server adapts ReserveService to gRPC.
type Server struct {
	pb.UnimplementedReserveServiceServer
	svc *service.ReserveService
}

func NewServer(svc *service.ReserveService) *Server {
	return &Server{svc: svc}
}

// -------------------- Maker commands --------------------

func (s *Server) Deposit(
	ctx context.Context,
	req *pb.DepositRequest,
) (*pb.FundsResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.svc.Deposit(book.Address(req.Maker), toAsset(req.Asset), amount); err != nil {
		return nil, toStatus(err)
	}

	log.Printf("[gRPC] Deposit maker=%s asset=%v amount=%s", req.Maker, req.Asset, req.Amount)
	return &pb.FundsResponse{Status: "ok"}, nil
}

func (s *Server) Withdraw(
	ctx context.Context,
	req *pb.WithdrawRequest,
) (*pb.FundsResponse, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.svc.Withdraw(book.Address(req.Maker), toAsset(req.Asset), amount); err != nil {
		return nil, toStatus(err)
	}

	log.Printf("[gRPC] Withdraw maker=%s asset=%v amount=%s", req.Maker, req.Asset, req.Amount)
	return &pb.FundsResponse{Status: "ok"}, nil
}

func (s *Server) SubmitOrder(
	ctx context.Context,
	req *pb.SubmitOrderRequest,
) (*pb.SubmitOrderResponse, error) {
	src, err := parseAmount(req.Src)
	if err != nil {
		return nil, err
	}
	dst, err := parseAmount(req.Dst)
	if err != nil {
		return nil, err
	}

	id, err := s.svc.Submit(book.Address(req.Maker), toDirection(req.Dir), src, dst, req.Hint)
	if err != nil {
		return nil, toStatus(err)
	}

	log.Printf("[gRPC] SubmitOrder maker=%s dir=%v id=%d", req.Maker, req.Dir, id)
	return &pb.SubmitOrderResponse{Status: "ok", OrderId: id}, nil
}

func (s *Server) SubmitOrderBatch(
	ctx context.Context,
	req *pb.SubmitOrderBatchRequest,
) (*pb.SubmitOrderBatchResponse, error) {
	srcs, err := parseAmounts(req.Srcs)
	if err != nil {
		return nil, err
	}
	dsts, err := parseAmounts(req.Dsts)
	if err != nil {
		return nil, err
	}

	ids, err := s.svc.SubmitBatch(
		book.Address(req.Maker),
		toDirection(req.Dir),
		srcs, dsts,
		req.Hints,
		req.IsAfterPrev,
	)
	if err != nil {
		return nil, toStatus(err)
	}

	log.Printf("[gRPC] SubmitOrderBatch maker=%s dir=%v n=%d", req.Maker, req.Dir, len(ids))
	return &pb.SubmitOrderBatchResponse{Status: "ok", OrderIds: ids}, nil
}

func (s *Server) UpdateOrder(
	ctx context.Context,
	req *pb.UpdateOrderRequest,
) (*pb.OrderResponse, error) {
	src, err := parseAmount(req.Src)
	if err != nil {
		return nil, err
	}
	dst, err := parseAmount(req.Dst)
	if err != nil {
		return nil, err
	}

	if err := s.svc.Update(book.Address(req.Maker), toDirection(req.Dir), req.OrderId, src, dst, req.Hint); err != nil {
		return nil, toStatus(err)
	}

	log.Printf("[gRPC] UpdateOrder maker=%s dir=%v id=%d", req.Maker, req.Dir, req.OrderId)
	return &pb.OrderResponse{Status: "ok"}, nil
}

func (s *Server) UpdateOrderBatch(
	ctx context.Context,
	req *pb.UpdateOrderBatchRequest,
) (*pb.OrderResponse, error) {
	srcs, err := parseAmounts(req.Srcs)
	if err != nil {
		return nil, err
	}
	dsts, err := parseAmounts(req.Dsts)
	if err != nil {
		return nil, err
	}

	if err := s.svc.UpdateBatch(book.Address(req.Maker), toDirection(req.Dir), req.OrderIds, srcs, dsts, req.Hints); err != nil {
		return nil, toStatus(err)
	}

	log.Printf("[gRPC] UpdateOrderBatch maker=%s dir=%v n=%d", req.Maker, req.Dir, len(req.OrderIds))
	return &pb.OrderResponse{Status: "ok"}, nil
}

func (s *Server) CancelOrder(
	ctx context.Context,
	req *pb.CancelOrderRequest,
) (*pb.OrderResponse, error) {
	if err := s.svc.Cancel(book.Address(req.Maker), toDirection(req.Dir), req.OrderId); err != nil {
		return nil, toStatus(err)
	}

	log.Printf("[gRPC] CancelOrder maker=%s dir=%v id=%d", req.Maker, req.Dir, req.OrderId)
	return &pb.OrderResponse{Status: "ok"}, nil
}

// -------------------- Taker path --------------------

func (s *Server) GetConversionRate(
	ctx context.Context,
	req *pb.GetRateRequest,
) (*pb.GetRateResponse, error) {
	qty, err := parseAmount(req.SrcQty)
	if err != nil {
		return nil, err
	}

	rate := s.svc.Quote(toAsset(req.Src), toAsset(req.Dst), qty)
	return &pb.GetRateResponse{Rate: rate.String()}, nil
}

func (s *Server) Trade(
	ctx context.Context,
	req *pb.TradeRequest,
) (*pb.TradeResponse, error) {
	srcAmount, err := parseAmount(req.SrcAmount)
	if err != nil {
		return nil, err
	}
	convRate, err := parseAmount(req.ConversionRate)
	if err != nil {
		return nil, err
	}
	attached, err := parseAmount(req.AttachedWei)
	if err != nil {
		return nil, err
	}

	res, err := s.svc.Trade(
		book.Address(req.Caller),
		toAsset(req.Src),
		srcAmount,
		toAsset(req.Dst),
		book.Address(req.Recipient),
		convRate,
		req.Validate,
		attached,
	)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &pb.TradeResponse{
		Status:    "ok",
		DstAmount: res.DstAmount.String(),
		Fills:     make([]*pb.FillEntry, 0, len(res.Fills)),
	}
	for _, f := range res.Fills {
		resp.Fills = append(resp.Fills, &pb.FillEntry{
			OrderId:  f.OrderID,
			Maker:    string(f.Maker),
			TakenSrc: f.TakenSrc.String(),
			PaidDst:  f.PaidDst.String(),
			Removed:  f.Removed,
		})
	}

	log.Printf("[gRPC] Trade src=%v amount=%s fills=%d", req.Src, req.SrcAmount, len(res.Fills))
	return resp, nil
}

// -------------------- Queries --------------------

func (s *Server) GetBook(
	ctx context.Context,
	req *pb.BookRequest,
) (*pb.BookResponse, error) {
	dir := toDirection(req.Dir)
	ids := s.svc.OrderIDs(dir)

	resp := &pb.BookResponse{
		Orders: make([]*pb.OrderEntry, 0, len(ids)),
	}
	for _, id := range ids {
		o, err := s.svc.GetOrder(dir, id)
		if err != nil {
			continue // removed between the scan and the read
		}
		resp.Orders = append(resp.Orders, &pb.OrderEntry{
			Id:    o.ID,
			Maker: string(o.Maker),
			Src:   o.SrcAmount.String(),
			Dst:   o.DstAmount.String(),
		})
	}
	return resp, nil
}

func (s *Server) GetLimits(
	ctx context.Context,
	req *pb.LimitsRequest,
) (*pb.LimitsResponse, error) {
	lim, err := s.svc.Limits()
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.LimitsResponse{
		MinOrderSizeUsd:    lim.MinOrderSizeUsd,
		MaxOrdersPerTrade:  int32(lim.MaxOrdersPerTrade),
		MinNewOrderWei:     lim.MinNewOrderWei.String(),
		MinRestingOrderWei: lim.MinRestingOrderWei.String(),
	}, nil
}

// -------------------- Converters --------------------

func toDirection(d pb.Direction) engine.Direction {
	if d == pb.Direction_ETH_TO_TOKEN {
		return engine.EthToToken
	}
	return engine.TokenToEth
}

func toAsset(a pb.Asset) ledger.Asset {
	switch a {
	case pb.Asset_ETH:
		return ledger.AssetEth
	case pb.Asset_KNC:
		return ledger.AssetKnc
	default:
		return ledger.AssetToken
	}
}

// parseAmount accepts a decimal integer string; empty means zero.
func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "bad amount %q", s)
	}
	return v, nil
}

func parseAmounts(ss []string) ([]*big.Int, error) {
	out := make([]*big.Int, len(ss))
	for i, s := range ss {
		v, err := parseAmount(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// toStatus maps engine errors onto gRPC codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, engine.ErrUnauthorizedTaker):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, engine.ErrNotOwner):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, engine.ErrBadAmount),
		errors.Is(err, engine.ErrBadPair),
		errors.Is(err, engine.ErrOrderTooSmall),
		errors.Is(err, engine.ErrValueMismatch),
		errors.Is(err, engine.ErrArrayLength):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, engine.ErrInsufficientFunds),
		errors.Is(err, engine.ErrInsufficientStake),
		errors.Is(err, engine.ErrNoKncDeposit):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, engine.ErrRateBelowMin),
		errors.Is(err, engine.ErrInsufficientLiquidity):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, book.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
