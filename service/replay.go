package service

import (
	"encoding/json"
	"fmt"
	"log"

	"makerbook/domain/book"
	"makerbook/domain/ledger"
	"makerbook/engine"
	"makerbook/infra/oracle"
	"makerbook/infra/sequence"
	"makerbook/infra/vault"
	"makerbook/infra/wal"
	"makerbook/snapshot"
)

/*
Bootstrap rebuilds in-memory state before the service accepts traffic:

 1. restore the last snapshot, if any
 2. replay the journal tail past the snapshot sequence
 3. resume the sequencer after the highest replayed sequence

During replay the price feeds are pinned to the values each record
carried when it committed, and the vault runs in bypass mode: external
balances are not part of the journal, only reserve-side state is.
The outbox is NOT replayed; the broadcaster drains whatever it holds.
*/

func Bootstrap(
	snapDir string,
	walDir string,
	res *engine.Reserve,
	seqGen *sequence.Sequencer,
	feed *oracle.Medianizer,
	burner *oracle.FeeBurner,
	bank *vault.Bank,
) error {
	state, snapSeq, err := snapshot.Load(snapDir)
	if err != nil {
		return fmt.Errorf("service: load snapshot: %w", err)
	}
	if state != nil {
		if err := res.RestoreState(state); err != nil {
			return fmt.Errorf("service: restore snapshot: %w", err)
		}
		log.Printf("[replay] snapshot restored (seq = %d)", snapSeq)
	}

	// Pin feeds per record below; put the live values back afterwards.
	livePx, pxOK := feed.UsdPerEth()
	liveRate := burner.KncPerEthRate()
	defer func() {
		if pxOK {
			feed.SetPriceWei(livePx)
		}
		burner.SetRateWei(liveRate)
	}()

	bank.SetBypass(true)
	defer bank.SetBypass(false)

	lastSeq := snapSeq
	err = wal.Replay(walDir, func(rec *wal.Record) error {
		if rec.Seq <= snapSeq {
			return nil // covered by the snapshot
		}
		if err := applyRecord(res, feed, burner, rec); err != nil {
			return fmt.Errorf("seq %d: %w", rec.Seq, err)
		}
		lastSeq = rec.Seq
		return nil
	})
	if err != nil {
		return fmt.Errorf("service: journal replay: %w", err)
	}

	seqGen.Reset(lastSeq)
	log.Printf("[replay] journal replay completed (last seq = %d)", lastSeq)
	return nil
}

func applyRecord(res *engine.Reserve, feed *oracle.Medianizer, burner *oracle.FeeBurner, rec *wal.Record) error {
	switch rec.Type {

	case wal.RecordDeposit:
		var r depositRecord
		if err := json.Unmarshal(rec.Data, &r); err != nil {
			return err
		}
		amount, err := parseBig(r.Amount)
		if err != nil {
			return err
		}
		switch ledger.Asset(r.Asset) {
		case ledger.AssetToken:
			return res.DepositToken(book.Address(r.Maker), amount)
		case ledger.AssetEth:
			return res.DepositEther(book.Address(r.Maker), amount)
		default:
			return res.DepositKncFee(book.Address(r.Maker), amount)
		}

	case wal.RecordWithdraw:
		var r withdrawRecord
		if err := json.Unmarshal(rec.Data, &r); err != nil {
			return err
		}
		amount, err := parseBig(r.Amount)
		if err != nil {
			return err
		}
		if err := pinKnc(burner, r.KncPerEth); err != nil {
			return err
		}
		switch ledger.Asset(r.Asset) {
		case ledger.AssetToken:
			return res.WithdrawToken(book.Address(r.Maker), amount)
		case ledger.AssetEth:
			return res.WithdrawEther(book.Address(r.Maker), amount)
		default:
			return res.WithdrawKncFee(book.Address(r.Maker), amount)
		}

	case wal.RecordSubmit:
		var r submitRecord
		if err := json.Unmarshal(rec.Data, &r); err != nil {
			return err
		}
		src, err := parseBig(r.Src)
		if err != nil {
			return err
		}
		dst, err := parseBig(r.Dst)
		if err != nil {
			return err
		}
		if err := pinUsd(feed, r.UsdPerEth); err != nil {
			return err
		}
		if err := pinKnc(burner, r.KncPerEth); err != nil {
			return err
		}
		_, err = res.SubmitOrder(book.Address(r.Maker), engine.Direction(r.Dir), src, dst, r.Hint)
		return err

	case wal.RecordSubmitBatch:
		var r submitBatchRecord
		if err := json.Unmarshal(rec.Data, &r); err != nil {
			return err
		}
		srcs, err := parseBigs(r.Srcs)
		if err != nil {
			return err
		}
		dsts, err := parseBigs(r.Dsts)
		if err != nil {
			return err
		}
		if err := pinUsd(feed, r.UsdPerEth); err != nil {
			return err
		}
		if err := pinKnc(burner, r.KncPerEth); err != nil {
			return err
		}
		_, err = res.SubmitOrderBatch(book.Address(r.Maker), engine.Direction(r.Dir), srcs, dsts, r.Hints, r.IsAfterPrev)
		return err

	case wal.RecordUpdate:
		var r updateRecord
		if err := json.Unmarshal(rec.Data, &r); err != nil {
			return err
		}
		src, err := parseBig(r.Src)
		if err != nil {
			return err
		}
		dst, err := parseBig(r.Dst)
		if err != nil {
			return err
		}
		if err := pinUsd(feed, r.UsdPerEth); err != nil {
			return err
		}
		if err := pinKnc(burner, r.KncPerEth); err != nil {
			return err
		}
		return res.UpdateOrder(book.Address(r.Maker), engine.Direction(r.Dir), r.OrderID, src, dst, r.Hint)

	case wal.RecordUpdateBatch:
		var r updateBatchRecord
		if err := json.Unmarshal(rec.Data, &r); err != nil {
			return err
		}
		srcs, err := parseBigs(r.Srcs)
		if err != nil {
			return err
		}
		dsts, err := parseBigs(r.Dsts)
		if err != nil {
			return err
		}
		if err := pinUsd(feed, r.UsdPerEth); err != nil {
			return err
		}
		if err := pinKnc(burner, r.KncPerEth); err != nil {
			return err
		}
		return res.UpdateOrderBatch(book.Address(r.Maker), engine.Direction(r.Dir), r.OrderIDs, srcs, dsts, r.Hints)

	case wal.RecordCancel:
		var r cancelRecord
		if err := json.Unmarshal(rec.Data, &r); err != nil {
			return err
		}
		return res.CancelOrder(book.Address(r.Maker), engine.Direction(r.Dir), r.OrderID)

	case wal.RecordTrade:
		var r tradeRecord
		if err := json.Unmarshal(rec.Data, &r); err != nil {
			return err
		}
		srcAmount, err := parseBig(r.SrcAmount)
		if err != nil {
			return err
		}
		convRate, err := parseBig(r.ConversionRate)
		if err != nil {
			return err
		}
		attached, err := parseBig(r.AttachedWei)
		if err != nil {
			return err
		}
		if err := pinUsd(feed, r.UsdPerEth); err != nil {
			return err
		}
		if err := pinKnc(burner, r.KncPerEth); err != nil {
			return err
		}
		_, err = res.Trade(
			book.Address(r.Caller),
			ledger.Asset(r.SrcAsset),
			srcAmount,
			ledger.Asset(r.DstAsset),
			book.Address(r.Recipient),
			convRate,
			r.Validate,
			attached,
		)
		return err

	default:
		return fmt.Errorf("unknown journal record type %d", rec.Type)
	}
}

func pinUsd(feed *oracle.Medianizer, usd string) error {
	px, err := parseBig(usd)
	if err != nil {
		return err
	}
	if px.Sign() > 0 {
		feed.SetPriceWei(px)
	}
	return nil
}

// pinKnc fixes the fee-token rate to a record's committed value so the
// stake and burn math replays the way it originally ran.
func pinKnc(burner *oracle.FeeBurner, knc string) error {
	rate, err := parseBig(knc)
	if err != nil {
		return err
	}
	if rate.Sign() > 0 {
		burner.SetRateWei(rate)
	}
	return nil
}
