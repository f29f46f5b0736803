package service

import (
	"context"
	"encoding/json"
	"log"
	"math/big"
	"sync"
	"time"

	"makerbook/domain/book"
	"makerbook/domain/ledger"
	"makerbook/engine"
	"makerbook/infra/kafka"
	"makerbook/infra/oracle"
	"makerbook/infra/outbox"
	"makerbook/infra/sequence"
	"makerbook/infra/wal"
)

// FeedPublisher pushes serialized events to market-data clients.
type FeedPublisher interface {
	Publish(data []byte)
}

/*
ReserveService is the ONLY write entry point into the system.

All coordination between:
- engine (book, ledger, settlement)
- infra (journal, outbox, sequencer, producer)
- snapshot
happens here. The service mutex keeps journal order identical to
application order, which is what makes replay deterministic.
*/

type ReserveService struct {
	mu sync.Mutex

	res     *engine.Reserve
	seqGen  *sequence.Sequencer
	journal *wal.WAL
	outbox  *outbox.Outbox

	feed   *oracle.Medianizer
	burner *oracle.FeeBurner

	producer *kafka.Producer // optional
	feedPub  FeedPublisher   // optional
}

// NewReserveService wires all dependencies.
// No globals. No magic.
func NewReserveService(
	res *engine.Reserve,
	seqGen *sequence.Sequencer,
	journal *wal.WAL,
	ob *outbox.Outbox,
	feed *oracle.Medianizer,
	burner *oracle.FeeBurner,
) *ReserveService {
	return &ReserveService{
		res:     res,
		seqGen:  seqGen,
		journal: journal,
		outbox:  ob,
		feed:    feed,
		burner:  burner,
	}
}

// SetProducer attaches the Kafka lifecycle-event producer.
func (s *ReserveService) SetProducer(p *kafka.Producer) { s.producer = p }

// SetFeedPublisher attaches the market-data feed.
func (s *ReserveService) SetFeedPublisher(f FeedPublisher) { s.feedPub = f }

//
// ──────────────────────────────────────────────────────────
// Maker commands
// ──────────────────────────────────────────────────────────
//

func (s *ReserveService) Deposit(maker book.Address, asset ledger.Asset, amount *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyDeposit(maker, asset, amount); err != nil {
		return err
	}
	seq := s.commit(wal.RecordDeposit, depositRecord{
		Maker:  string(maker),
		Asset:  int(asset),
		Amount: bigStr(amount),
	})
	s.emit(Event{V: eventVersion, Type: "deposit", Seq: seq, Maker: string(maker)})
	return nil
}

func (s *ReserveService) applyDeposit(maker book.Address, asset ledger.Asset, amount *big.Int) error {
	switch asset {
	case ledger.AssetToken:
		return s.res.DepositToken(maker, amount)
	case ledger.AssetEth:
		return s.res.DepositEther(maker, amount)
	default:
		return s.res.DepositKncFee(maker, amount)
	}
}

func (s *ReserveService) Withdraw(maker book.Address, asset ledger.Asset, amount *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	switch asset {
	case ledger.AssetToken:
		err = s.res.WithdrawToken(maker, amount)
	case ledger.AssetEth:
		err = s.res.WithdrawEther(maker, amount)
	default:
		err = s.res.WithdrawKncFee(maker, amount)
	}
	if err != nil {
		return err
	}
	seq := s.commit(wal.RecordWithdraw, withdrawRecord{
		Maker:     string(maker),
		Asset:     int(asset),
		Amount:    bigStr(amount),
		KncPerEth: s.kncPerEth(),
	})
	s.emit(Event{V: eventVersion, Type: "withdraw", Seq: seq, Maker: string(maker)})
	return nil
}

func (s *ReserveService) Submit(maker book.Address, dir engine.Direction, src, dst *big.Int, hint uint32) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.res.SubmitOrder(maker, dir, src, dst, hint)
	if err != nil {
		return 0, err
	}
	seq := s.commit(wal.RecordSubmit, submitRecord{
		Maker:     string(maker),
		Dir:       int(dir),
		Src:       bigStr(src),
		Dst:       bigStr(dst),
		Hint:      hint,
		UsdPerEth: s.usdPerEth(),
		KncPerEth: s.kncPerEth(),
	})
	s.emit(Event{
		V: eventVersion, Type: "submit", Seq: seq,
		Maker: string(maker), Dir: dir.String(), OrderID: id,
		Src: bigStr(src), Dst: bigStr(dst),
	})
	return id, nil
}

func (s *ReserveService) SubmitBatch(maker book.Address, dir engine.Direction, srcs, dsts []*big.Int, hints []uint32, isAfterPrev []bool) ([]uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.res.SubmitOrderBatch(maker, dir, srcs, dsts, hints, isAfterPrev)
	if err != nil {
		return nil, err
	}
	seq := s.commit(wal.RecordSubmitBatch, submitBatchRecord{
		Maker:       string(maker),
		Dir:         int(dir),
		Srcs:        bigStrs(srcs),
		Dsts:        bigStrs(dsts),
		Hints:       hints,
		IsAfterPrev: isAfterPrev,
		UsdPerEth:   s.usdPerEth(),
		KncPerEth:   s.kncPerEth(),
	})
	for i, id := range ids {
		s.emit(Event{
			V: eventVersion, Type: "submit", Seq: seq,
			Maker: string(maker), Dir: dir.String(), OrderID: id,
			Src: bigStr(srcs[i]), Dst: bigStr(dsts[i]),
		})
	}
	return ids, nil
}

func (s *ReserveService) Update(maker book.Address, dir engine.Direction, id uint32, src, dst *big.Int, hint uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.res.UpdateOrder(maker, dir, id, src, dst, hint); err != nil {
		return err
	}
	seq := s.commit(wal.RecordUpdate, updateRecord{
		Maker:     string(maker),
		Dir:       int(dir),
		OrderID:   id,
		Src:       bigStr(src),
		Dst:       bigStr(dst),
		Hint:      hint,
		UsdPerEth: s.usdPerEth(),
		KncPerEth: s.kncPerEth(),
	})
	s.emit(Event{
		V: eventVersion, Type: "update", Seq: seq,
		Maker: string(maker), Dir: dir.String(), OrderID: id,
		Src: bigStr(src), Dst: bigStr(dst),
	})
	return nil
}

func (s *ReserveService) UpdateBatch(maker book.Address, dir engine.Direction, ids []uint32, srcs, dsts []*big.Int, hints []uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.res.UpdateOrderBatch(maker, dir, ids, srcs, dsts, hints); err != nil {
		return err
	}
	seq := s.commit(wal.RecordUpdateBatch, updateBatchRecord{
		Maker:     string(maker),
		Dir:       int(dir),
		OrderIDs:  ids,
		Srcs:      bigStrs(srcs),
		Dsts:      bigStrs(dsts),
		Hints:     hints,
		UsdPerEth: s.usdPerEth(),
		KncPerEth: s.kncPerEth(),
	})
	for i, id := range ids {
		s.emit(Event{
			V: eventVersion, Type: "update", Seq: seq,
			Maker: string(maker), Dir: dir.String(), OrderID: id,
			Src: bigStr(srcs[i]), Dst: bigStr(dsts[i]),
		})
	}
	return nil
}

func (s *ReserveService) Cancel(maker book.Address, dir engine.Direction, id uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.res.CancelOrder(maker, dir, id); err != nil {
		return err
	}
	seq := s.commit(wal.RecordCancel, cancelRecord{
		Maker:   string(maker),
		Dir:     int(dir),
		OrderID: id,
	})
	s.emit(Event{
		V: eventVersion, Type: "cancel", Seq: seq,
		Maker: string(maker), Dir: dir.String(), OrderID: id,
	})
	return nil
}

//
// ──────────────────────────────────────────────────────────
// Taker path
// ──────────────────────────────────────────────────────────
//

// Quote is read-only and never journaled.
func (s *ReserveService) Quote(src, dst ledger.Asset, srcQty *big.Int) *big.Int {
	return s.res.GetConversionRate(src, dst, srcQty)
}

// Trade settles a taker trade and stages the trade event in the
// durable outbox before returning.
func (s *ReserveService) Trade(
	caller book.Address,
	src ledger.Asset,
	srcAmount *big.Int,
	dst ledger.Asset,
	recipient book.Address,
	conversionRate *big.Int,
	validate bool,
	attachedWei *big.Int,
) (*engine.TradeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.res.Trade(caller, src, srcAmount, dst, recipient, conversionRate, validate, attachedWei)
	if err != nil {
		return nil, err
	}

	seq := s.commit(wal.RecordTrade, tradeRecord{
		Caller:         string(caller),
		SrcAsset:       int(src),
		SrcAmount:      bigStr(srcAmount),
		DstAsset:       int(dst),
		Recipient:      string(recipient),
		ConversionRate: bigStr(conversionRate),
		Validate:       validate,
		AttachedWei:    bigStr(attachedWei),
		UsdPerEth:      s.usdPerEth(),
		KncPerEth:      s.kncPerEth(),
	})

	ev := tradeEvent(seq, res)
	data, _ := json.Marshal(ev)
	if s.outbox != nil {
		if err := s.outbox.PutNew(seq, data); err != nil {
			log.Printf("[service] outbox stage seq=%d failed: %v", seq, err)
		}
	}
	if s.feedPub != nil {
		s.feedPub.Publish(data)
	}
	return res, nil
}

//
// ──────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────
//

func (s *ReserveService) GetOrder(dir engine.Direction, id uint32) (book.Order, error) {
	return s.res.GetOrder(dir, id)
}

func (s *ReserveService) OrderIDs(dir engine.Direction) []uint32 {
	return s.res.OrderIDs(dir)
}

func (s *ReserveService) MakerFunds(maker book.Address, asset ledger.Asset) *big.Int {
	return s.res.MakerFunds(maker, asset)
}

func (s *ReserveService) MakerUnlockedKnc(maker book.Address) *big.Int {
	return s.res.MakerUnlockedKnc(maker)
}

func (s *ReserveService) MakerRequiredStake(maker book.Address) *big.Int {
	return s.res.MakerRequiredStake(maker)
}

func (s *ReserveService) Limits() (engine.Limits, error) {
	return s.res.Limits()
}

func (s *ReserveService) CurrentSeq() uint64 {
	return s.seqGen.Current()
}

//
// ──────────────────────────────────────────────────────────
// Internals
// ──────────────────────────────────────────────────────────
//

// commit assigns the next sequence number and journals the record.
// Callers hold the service mutex, so journal order equals application
// order.
func (s *ReserveService) commit(t wal.RecordType, payload any) uint64 {
	seq := s.seqGen.Next()
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[service] journal encode seq=%d failed: %v", seq, err)
		return seq
	}
	if err := s.journal.Append(wal.NewRecord(t, seq, data)); err != nil {
		log.Printf("[service] journal append seq=%d failed: %v", seq, err)
	}
	return seq
}

func (s *ReserveService) usdPerEth() string {
	px, ok := s.feed.UsdPerEth()
	if !ok {
		return "0"
	}
	return px.String()
}

func (s *ReserveService) kncPerEth() string {
	return s.burner.KncPerEthRate().String()
}

// emit publishes a lifecycle event best-effort: maker commands never
// fail because the broker is down.
func (s *ReserveService) emit(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if s.feedPub != nil {
		s.feedPub.Publish(data)
	}
	if s.producer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.producer.Send(ctx, []byte(ev.Maker), data); err != nil {
			log.Printf("[service] event publish seq=%d failed: %v", ev.Seq, err)
		}
	}
}
