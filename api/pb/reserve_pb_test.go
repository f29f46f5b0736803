package pb

import (
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
)

// The messages are hand-maintained, so serialization must be proven
// against the real proto runtime: the gRPC codec adapts them exactly
// the way protoadapt.MessageV2Of does here.

func TestDepositRequestRoundTrip(t *testing.T) {
	in := &DepositRequest{Maker: "maker1", Asset: Asset_KNC, Amount: "100"}

	data, err := proto.Marshal(protoadapt.MessageV2Of(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("marshal produced no bytes")
	}

	out := &DepositRequest{}
	if err := proto.Unmarshal(data, protoadapt.MessageV2Of(out)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Maker != in.Maker || out.Asset != in.Asset || out.Amount != in.Amount {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
}

func TestTradeResponseRoundTripWithFills(t *testing.T) {
	in := &TradeResponse{
		Status:    "ok",
		DstAmount: "9000000000000000000",
		Fills: []*FillEntry{
			{OrderId: 3, Maker: "maker1", TakenSrc: "4500000000000000000", PaidDst: "1000000000000000000"},
			{OrderId: 35, Maker: "maker2", TakenSrc: "4500000000000000000", PaidDst: "1000000000000000000", Removed: true},
		},
	}

	data, err := proto.Marshal(protoadapt.MessageV2Of(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := &TradeResponse{}
	if err := proto.Unmarshal(data, protoadapt.MessageV2Of(out)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Status != in.Status || out.DstAmount != in.DstAmount {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
	if len(out.Fills) != 2 {
		t.Fatalf("fills = %d, want 2", len(out.Fills))
	}
	for i, f := range in.Fills {
		g := out.Fills[i]
		if g.OrderId != f.OrderId || g.Maker != f.Maker || g.TakenSrc != f.TakenSrc ||
			g.PaidDst != f.PaidDst || g.Removed != f.Removed {
			t.Fatalf("fill %d = %+v, want %+v", i, g, f)
		}
	}
}

func TestBatchRequestRoundTripWithPackedFields(t *testing.T) {
	in := &SubmitOrderBatchRequest{
		Maker:       "maker1",
		Dir:         Direction_ETH_TO_TOKEN,
		Srcs:        []string{"2000000000000000000", "3000000000000000000"},
		Dsts:        []string{"900000000000000000000", "1400000000000000000000"},
		Hints:       []uint32{0, 7},
		IsAfterPrev: []bool{false, true},
	}

	data, err := proto.Marshal(protoadapt.MessageV2Of(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := &SubmitOrderBatchRequest{}
	if err := proto.Unmarshal(data, protoadapt.MessageV2Of(out)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Maker != in.Maker || out.Dir != in.Dir {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
	if len(out.Srcs) != 2 || out.Srcs[1] != in.Srcs[1] || out.Dsts[0] != in.Dsts[0] {
		t.Fatalf("repeated strings diverged: %+v", out)
	}
	if len(out.Hints) != 2 || out.Hints[1] != 7 {
		t.Fatalf("packed uints diverged: %+v", out.Hints)
	}
	if len(out.IsAfterPrev) != 2 || !out.IsAfterPrev[1] || out.IsAfterPrev[0] {
		t.Fatalf("packed bools diverged: %+v", out.IsAfterPrev)
	}
}

func TestEmptyMessageRoundTrip(t *testing.T) {
	data, err := proto.Marshal(protoadapt.MessageV2Of(&LimitsRequest{}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("empty message marshaled to %d bytes", len(data))
	}
	if err := proto.Unmarshal(nil, protoadapt.MessageV2Of(&LimitsRequest{})); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
}
