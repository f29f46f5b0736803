package service

import (
	"math/big"
	"testing"

	"makerbook/domain/book"
	"makerbook/domain/ledger"
	"makerbook/engine"
	"makerbook/infra/oracle"
	"makerbook/infra/sequence"
	"makerbook/infra/vault"
	"makerbook/infra/wal"
	"makerbook/snapshot"
)

const (
	network = book.Address("network")
	maker1  = book.Address("maker1")
	taker1  = book.Address("taker1")
)

type stack struct {
	bank   *vault.Bank
	feed   *oracle.Medianizer
	burner *oracle.FeeBurner
	res    *engine.Reserve
	seqGen *sequence.Sequencer
	svc    *ReserveService
	walDir string
}

func newStack(t *testing.T, walDir string) *stack {
	t.Helper()

	bank := vault.NewBank("reserve")
	feed, err := oracle.NewMedianizer("500")
	if err != nil {
		t.Fatalf("medianizer: %v", err)
	}
	burner, err := oracle.NewFeeBurner("280")
	if err != nil {
		t.Fatalf("burner: %v", err)
	}

	res, err := engine.New(engine.Config{
		Network:           network,
		BurnFeeBps:        25,
		MinOrderSizeUsd:   1000,
		MaxOrdersPerTrade: 10,
		Rates:             burner,
		Oracle:            feed,
		Vault:             bank,
	})
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}

	journal, err := wal.Open(wal.Config{Dir: walDir})
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	t.Cleanup(func() { journal.Close() })

	seqGen := sequence.New(0)
	svc := NewReserveService(res, seqGen, journal, nil, feed, burner)

	return &stack{
		bank:   bank,
		feed:   feed,
		burner: burner,
		res:    res,
		seqGen: seqGen,
		svc:    svc,
		walDir: walDir,
	}
}

func eth(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

// fundMaker mints and deposits KNC (claiming id ranges) plus the
// given token balance.
func fundMaker(t *testing.T, s *stack, maker book.Address, knc, token *big.Int) {
	t.Helper()
	s.bank.Mint(ledger.AssetKnc, maker, knc)
	if err := s.svc.Deposit(maker, ledger.AssetKnc, knc); err != nil {
		t.Fatalf("knc deposit: %v", err)
	}
	if token != nil {
		s.bank.Mint(ledger.AssetToken, maker, token)
		if err := s.svc.Deposit(maker, ledger.AssetToken, token); err != nil {
			t.Fatalf("token deposit: %v", err)
		}
	}
}

func TestSubmitTradeAndBalances(t *testing.T) {
	s := newStack(t, t.TempDir())

	fundMaker(t, s, maker1, eth(600), eth(9))

	// Maker sells 9 token for 2 ETH. At $500/ETH the 2 ETH leg sits
	// exactly at the new-order floor.
	id, err := s.svc.Submit(maker1, engine.TokenToEth, eth(9), eth(2), 0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if id != book.FirstFreeID {
		t.Fatalf("first order id = %d, want %d", id, book.FirstFreeID)
	}

	// Quote must cover the full order.
	rate := s.svc.Quote(ledger.AssetEth, ledger.AssetToken, eth(2))
	if rate.Sign() == 0 {
		t.Fatal("quote returned zero for a covered amount")
	}

	// Taker buys the whole order through the network.
	s.bank.Mint(ledger.AssetEth, network, eth(2))
	res, err := s.svc.Trade(network, ledger.AssetEth, eth(2), ledger.AssetToken, taker1, rate, true, eth(2))
	if err != nil {
		t.Fatalf("trade: %v", err)
	}
	if res.DstAmount.Cmp(eth(9)) != 0 {
		t.Fatalf("taker received %s, want 9e18", res.DstAmount)
	}
	if len(res.Fills) != 1 || !res.Fills[0].Removed {
		t.Fatalf("expected one full fill, got %+v", res.Fills)
	}

	// Maker converted 9 token into 2 ETH, minus the burned KNC.
	if got := s.svc.MakerFunds(maker1, ledger.AssetEth); got.Cmp(eth(2)) != 0 {
		t.Errorf("maker eth = %s, want 2e18", got)
	}
	if got := s.svc.MakerFunds(maker1, ledger.AssetToken); got.Sign() != 0 {
		t.Errorf("maker token = %s, want 0", got)
	}
	// burn = 2e18 * 25bps * 280 = 1.4e18 KNC
	wantKnc := new(big.Int).Sub(eth(600), big.NewInt(14e17))
	if got := s.svc.MakerFunds(maker1, ledger.AssetKnc); got.Cmp(wantKnc) != 0 {
		t.Errorf("maker knc = %s, want %s", got, wantKnc)
	}
	if got := s.svc.MakerRequiredStake(maker1); got.Sign() != 0 {
		t.Errorf("stake after full fill = %s, want 0", got)
	}

	if got := len(s.svc.OrderIDs(engine.TokenToEth)); got != 0 {
		t.Errorf("book still holds %d orders", got)
	}
	if res := s.bank.Balance(ledger.AssetToken, taker1); res.Cmp(eth(9)) != 0 {
		t.Errorf("taker token balance = %s, want 9e18", res)
	}
}

func TestBootstrapReplaysJournal(t *testing.T) {
	walDir := t.TempDir()
	s := newStack(t, walDir)

	fundMaker(t, s, maker1, eth(600), eth(27))
	if _, err := s.svc.Submit(maker1, engine.TokenToEth, eth(9), eth(2), 0); err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	id2, err := s.svc.Submit(maker1, engine.TokenToEth, eth(10), eth(2), 0)
	if err != nil {
		t.Fatalf("submit 2: %v", err)
	}
	if err := s.svc.Cancel(maker1, engine.TokenToEth, id2); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	s.bank.Mint(ledger.AssetEth, network, eth(1))
	if _, err := s.svc.Trade(network, ledger.AssetEth, eth(1), ledger.AssetToken, taker1, nil, false, eth(1)); err != nil {
		t.Fatalf("trade: %v", err)
	}

	// Fresh stack, same journal.
	r := newStack(t, walDir)
	if err := Bootstrap(t.TempDir(), walDir, r.res, r.seqGen, r.feed, r.burner, r.bank); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if got, want := r.seqGen.Current(), s.seqGen.Current(); got != want {
		t.Fatalf("sequencer resumed at %d, want %d", got, want)
	}

	wantIDs := s.svc.OrderIDs(engine.TokenToEth)
	gotIDs := r.svc.OrderIDs(engine.TokenToEth)
	if len(gotIDs) != len(wantIDs) {
		t.Fatalf("replayed book has %d orders, want %d", len(gotIDs), len(wantIDs))
	}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("replayed ids %v, want %v", gotIDs, wantIDs)
		}
		want, _ := s.svc.GetOrder(engine.TokenToEth, wantIDs[i])
		got, _ := r.svc.GetOrder(engine.TokenToEth, gotIDs[i])
		if got.SrcAmount.Cmp(want.SrcAmount) != 0 || got.DstAmount.Cmp(want.DstAmount) != 0 {
			t.Fatalf("order %d amounts diverged after replay", wantIDs[i])
		}
	}

	for _, asset := range []ledger.Asset{ledger.AssetToken, ledger.AssetEth, ledger.AssetKnc} {
		want := s.svc.MakerFunds(maker1, asset)
		got := r.svc.MakerFunds(maker1, asset)
		if got.Cmp(want) != 0 {
			t.Fatalf("%s balance after replay = %s, want %s", asset, got, want)
		}
	}
}

func TestBootstrapSkipsSnapshotCoveredRecords(t *testing.T) {
	walDir := t.TempDir()
	snapDir := t.TempDir()
	s := newStack(t, walDir)

	fundMaker(t, s, maker1, eth(600), eth(18))
	if _, err := s.svc.Submit(maker1, engine.TokenToEth, eth(9), eth(2), 0); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Snapshot covers everything so far.
	w := &snapshot.Writer{Dir: snapDir}
	if err := w.Write(s.seqGen.Current(), s.res.ExportState()); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	// One more submit lands only in the journal tail.
	if _, err := s.svc.Submit(maker1, engine.TokenToEth, eth(9), eth(2), 0); err != nil {
		t.Fatalf("submit tail: %v", err)
	}

	r := newStack(t, walDir)
	if err := Bootstrap(snapDir, walDir, r.res, r.seqGen, r.feed, r.burner, r.bank); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	if got, want := len(r.svc.OrderIDs(engine.TokenToEth)), 2; got != want {
		t.Fatalf("restored book has %d orders, want %d", got, want)
	}
	if got, want := r.seqGen.Current(), s.seqGen.Current(); got != want {
		t.Fatalf("sequencer resumed at %d, want %d", got, want)
	}
}

func TestRejectedCommandIsNotJournaled(t *testing.T) {
	walDir := t.TempDir()
	s := newStack(t, walDir)

	// No KNC deposit: submit must fail and leave the journal clean of
	// order records.
	s.bank.Mint(ledger.AssetToken, maker1, eth(9))
	if err := s.svc.Deposit(maker1, ledger.AssetToken, eth(9)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if _, err := s.svc.Submit(maker1, engine.TokenToEth, eth(9), eth(2), 0); err == nil {
		t.Fatal("submit without id allocation should fail")
	}

	var submits int
	err := wal.Replay(walDir, func(rec *wal.Record) error {
		if rec.Type == wal.RecordSubmit {
			submits++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if submits != 0 {
		t.Fatalf("journal holds %d submit records for a rejected command", submits)
	}
}

func TestBootstrapSurvivesFeeRateRise(t *testing.T) {
	walDir := t.TempDir()
	s := newStack(t, walDir)

	// The order takes exactly 7 KNC of stake at the committed rate,
	// and the later withdraw drains the free portion to zero: any
	// stake re-check at a higher rate would reject the replay.
	fundMaker(t, s, maker1, eth(10), eth(9))
	id, err := s.svc.Submit(maker1, engine.TokenToEth, eth(9), eth(2), 0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := s.svc.Withdraw(maker1, ledger.AssetKnc, eth(3)); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	// The fee-token rate doubles before the restart.
	r := newStack(t, walDir)
	if err := r.burner.SetRate("560"); err != nil {
		t.Fatalf("set rate: %v", err)
	}
	if err := Bootstrap(t.TempDir(), walDir, r.res, r.seqGen, r.feed, r.burner, r.bank); err != nil {
		t.Fatalf("bootstrap after rate rise: %v", err)
	}

	o, err := r.svc.GetOrder(engine.TokenToEth, id)
	if err != nil {
		t.Fatalf("replayed order: %v", err)
	}
	if o.SrcAmount.Cmp(eth(9)) != 0 || o.DstAmount.Cmp(eth(2)) != 0 {
		t.Fatalf("replayed amounts (%s, %s), want (9e18, 2e18)", o.SrcAmount, o.DstAmount)
	}
	if got := r.svc.MakerFunds(maker1, ledger.AssetKnc); got.Cmp(eth(7)) != 0 {
		t.Fatalf("replayed knc funds = %s, want 7e18", got)
	}

	// Replay pinning must not leak into the live rate.
	want := new(big.Int).Mul(big.NewInt(560), big.NewInt(1e18))
	if got := r.burner.KncPerEthRate(); got.Cmp(want) != 0 {
		t.Fatalf("live rate after bootstrap = %s, want %s", got, want)
	}
}
