package snapshot

import (
	"math/big"
	"testing"

	"makerbook/domain/book"
	"makerbook/engine"
)

func TestWriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	state := &engine.State{
		TokenToEth: []engine.OrderState{
			{ID: 3, Maker: "maker1", Src: big.NewInt(2e18), Dst: big.NewInt(9e18)},
			{ID: 4, Maker: "maker2", Src: big.NewInt(1e18), Dst: big.NewInt(5e18)},
		},
		NextFreeT2E: 67,
		NextFreeE2T: book.FirstFreeID,
		Makers: []engine.MakerState{
			{
				Maker:     "maker1",
				Token:     big.NewInt(0),
				Eth:       big.NewInt(1e18),
				Knc:       big.NewInt(600e10),
				LockedWei: big.NewInt(2e18),
				Allocated: true,
				FirstT2E:  3,
				TakenT2E:  0b101,
				FirstE2T:  35,
			},
		},
	}

	w := &Writer{Dir: dir}
	if err := w.Write(42, state); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, seq, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if seq != 42 {
		t.Fatalf("seq = %d, want 42", seq)
	}
	if got == nil {
		t.Fatal("nil state from load")
	}
	if len(got.TokenToEth) != 2 {
		t.Fatalf("orders = %d, want 2", len(got.TokenToEth))
	}
	if got.TokenToEth[0].Src.Cmp(big.NewInt(2e18)) != 0 {
		t.Errorf("order src = %s", got.TokenToEth[0].Src)
	}
	if got.NextFreeT2E != 67 {
		t.Errorf("nextFree = %d, want 67", got.NextFreeT2E)
	}
	m := got.Makers[0]
	if !m.Allocated || m.FirstT2E != 3 || m.TakenT2E != 0b101 {
		t.Errorf("maker allocation mangled: %+v", m)
	}
	if m.Knc.Cmp(big.NewInt(600e10)) != 0 {
		t.Errorf("knc = %s", m.Knc)
	}
}

func TestLoadMissingIsNotError(t *testing.T) {
	state, seq, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load empty dir: %v", err)
	}
	if state != nil || seq != 0 {
		t.Fatalf("expected empty result, got state=%v seq=%d", state, seq)
	}
}

func TestWriteReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir}

	first := &engine.State{NextFreeT2E: book.FirstFreeID, NextFreeE2T: book.FirstFreeID}
	if err := w.Write(1, first); err != nil {
		t.Fatalf("write 1: %v", err)
	}
	second := &engine.State{NextFreeT2E: 99, NextFreeE2T: book.FirstFreeID}
	if err := w.Write(2, second); err != nil {
		t.Fatalf("write 2: %v", err)
	}

	got, seq, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if seq != 2 || got.NextFreeT2E != 99 {
		t.Fatalf("stale snapshot: seq=%d nextFree=%d", seq, got.NextFreeT2E)
	}
}
