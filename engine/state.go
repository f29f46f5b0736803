package engine

import (
	"math/big"

	"makerbook/domain/book"
	"makerbook/domain/ledger"
)

// OrderState is one resting order as exported for snapshots, in list
// order.
type OrderState struct {
	ID    uint32
	Maker book.Address
	Src   *big.Int
	Dst   *big.Int
}

// MakerState captures one maker's balances and id allocations.
type MakerState struct {
	Maker     book.Address
	Token     *big.Int
	Eth       *big.Int
	Knc       *big.Int
	LockedWei *big.Int

	Allocated bool
	FirstT2E  uint32
	TakenT2E  uint32
	FirstE2T  uint32
	TakenE2T  uint32
}

// State is a consistent export of the whole reserve, used by the
// snapshot job. Orders appear best first so restore can relink them
// without scans.
type State struct {
	TokenToEth []OrderState
	EthToToken []OrderState

	NextFreeT2E uint32
	NextFreeE2T uint32

	Makers []MakerState
}

// ExportState copies the reserve under the read lock.
func (r *Reserve) ExportState() *State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := &State{
		TokenToEth:  exportList(r.tokenToEth),
		EthToToken:  exportList(r.ethToToken),
		NextFreeT2E: r.tokenToEth.NextFreeID(),
		NextFreeE2T: r.ethToToken.NextFreeID(),
	}

	for _, m := range r.ledger.Makers() {
		ms := MakerState{
			Maker:     m,
			Token:     r.ledger.Funds(m, ledger.AssetToken),
			Eth:       r.ledger.Funds(m, ledger.AssetEth),
			Knc:       r.ledger.KncDeposited(m),
			LockedWei: r.ledger.OrderWei(m),
		}
		if ids, ok := r.idsTokenToEth[m]; ok {
			ms.Allocated = true
			ms.FirstT2E = ids.FirstID()
			ms.TakenT2E = ids.Taken()
			ms.FirstE2T = r.idsEthToToken[m].FirstID()
			ms.TakenE2T = r.idsEthToToken[m].Taken()
		}
		s.Makers = append(s.Makers, ms)
	}
	return s
}

func exportList(l *book.List) []OrderState {
	out := make([]OrderState, 0, l.Len())
	for _, id := range l.IDs() {
		o, _ := l.Get(id)
		out = append(out, OrderState{
			ID:    id,
			Maker: o.Maker,
			Src:   new(big.Int).Set(o.SrcAmount),
			Dst:   new(big.Int).Set(o.DstAmount),
		})
	}
	return out
}

// RestoreState loads a snapshot into a fresh reserve, bypassing the
// submission checks: the state was valid when exported.
func (r *Reserve) RestoreState(s *State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range s.Makers {
		r.ledger.Restore(m.Maker, m.Token, m.Eth, m.Knc, m.LockedWei)
		if m.Allocated {
			mt := &book.IDManager{}
			mt.Restore(m.FirstT2E, m.TakenT2E)
			me := &book.IDManager{}
			me.Restore(m.FirstE2T, m.TakenE2T)
			r.idsTokenToEth[m.Maker] = mt
			r.idsEthToToken[m.Maker] = me
		}
	}

	if err := restoreList(r.tokenToEth, s.TokenToEth, s.NextFreeT2E); err != nil {
		return err
	}
	return restoreList(r.ethToToken, s.EthToToken, s.NextFreeE2T)
}

func restoreList(l *book.List, orders []OrderState, nextFree uint32) error {
	prev := uint32(book.HeadID)
	for _, o := range orders {
		if err := l.InsertAfter(o.ID, o.Maker, o.Src, o.Dst, prev); err != nil {
			return err
		}
		prev = o.ID
	}
	l.RestoreNextFreeID(nextFree)
	return nil
}
