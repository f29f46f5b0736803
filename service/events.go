package service

import "makerbook/engine"

// Event is the wire form of one reserve state change, published to
// Kafka and to the market-data feed.
type Event struct {
	V    int    `json:"v"`
	Type string `json:"type"`
	Seq  uint64 `json:"seq"`

	Maker   string `json:"maker,omitempty"`
	Dir     string `json:"dir,omitempty"`
	OrderID uint32 `json:"orderId,omitempty"`
	Src     string `json:"src,omitempty"`
	Dst     string `json:"dst,omitempty"`

	Trade *TradeEvent `json:"trade,omitempty"`
}

// TradeEvent carries the settled legs of a taker trade.
type TradeEvent struct {
	Direction string      `json:"direction"`
	SrcAmount string      `json:"srcAmount"`
	DstAmount string      `json:"dstAmount"`
	Recipient string      `json:"recipient"`
	Fills     []FillEvent `json:"fills"`
}

type FillEvent struct {
	OrderID   uint32 `json:"orderId"`
	Maker     string `json:"maker"`
	TakenSrc  string `json:"takenSrc"`
	PaidDst   string `json:"paidDst"`
	BurnedKnc string `json:"burnedKnc"`
	Removed   bool   `json:"removed"`
}

const eventVersion = 1

func tradeEvent(seq uint64, res *engine.TradeResult) Event {
	te := &TradeEvent{
		Direction: res.Direction.String(),
		SrcAmount: bigStr(res.SrcAmount),
		DstAmount: bigStr(res.DstAmount),
		Recipient: string(res.Recipient),
		Fills:     make([]FillEvent, 0, len(res.Fills)),
	}
	for _, f := range res.Fills {
		te.Fills = append(te.Fills, FillEvent{
			OrderID:   f.OrderID,
			Maker:     string(f.Maker),
			TakenSrc:  bigStr(f.TakenSrc),
			PaidDst:   bigStr(f.PaidDst),
			BurnedKnc: bigStr(f.BurnedKnc),
			Removed:   f.Removed,
		})
	}
	return Event{V: eventVersion, Type: "trade", Seq: seq, Trade: te}
}
