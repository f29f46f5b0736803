package engine

import (
	"math/big"

	"makerbook/domain/book"
	"makerbook/domain/ledger"
	"makerbook/domain/numeric"
)

// fill is one planned order consumption inside a quote or trade walk.
type fill struct {
	id    uint32
	maker book.Address

	// takeSrc is what the taker receives out of this order, payDst
	// what the taker pays into it.
	takeSrc *big.Int
	payDst  *big.Int

	// weiConsumed is the ETH-leg volume of the consumed part, the
	// unit the burn is computed on.
	weiConsumed *big.Int

	full bool
}

// pairDirection maps a taker src/dst pair onto a book direction. The
// taker's src is what resting makers ask for, so paying ETH consumes
// the token-to-ETH list.
func pairDirection(src, dst ledger.Asset) (Direction, bool) {
	switch {
	case src == ledger.AssetEth && dst == ledger.AssetToken:
		return TokenToEth, true
	case src == ledger.AssetToken && dst == ledger.AssetEth:
		return EthToToken, true
	default:
		return 0, false
	}
}

// walkBook plans the consumption of qty (in the taker's src asset)
// against a list, front to back, touching at most MaxOrdersPerTrade
// orders. ok is false when the book cannot cover qty within the cap.
func (r *Reserve) walkBook(dir Direction, qty *big.Int) (fills []fill, totalDst *big.Int, ok bool) {
	l := r.list(dir)
	remaining := new(big.Int).Set(qty)
	totalDst = new(big.Int)

	for id := l.First(); id != book.TailID && len(fills) < r.cfg.MaxOrdersPerTrade; {
		o, err := l.Get(id)
		if err != nil {
			return nil, nil, false
		}

		if o.DstAmount.Cmp(remaining) >= 0 {
			// Last order, possibly partial. Floor division: the
			// taker never receives more than the pro-rata share.
			takeSrc := numeric.MulDiv(o.SrcAmount, remaining, o.DstAmount)
			f := fill{
				id:      id,
				maker:   o.Maker,
				takeSrc: takeSrc,
				payDst:  new(big.Int).Set(remaining),
				full:    o.DstAmount.Cmp(remaining) == 0,
			}
			f.weiConsumed = orderWei(dir, f.takeSrc, f.payDst)
			fills = append(fills, f)
			totalDst.Add(totalDst, takeSrc)
			remaining.SetInt64(0)
			break
		}

		f := fill{
			id:      id,
			maker:   o.Maker,
			takeSrc: new(big.Int).Set(o.SrcAmount),
			payDst:  new(big.Int).Set(o.DstAmount),
			full:    true,
		}
		f.weiConsumed = orderWei(dir, f.takeSrc, f.payDst)
		fills = append(fills, f)
		totalDst.Add(totalDst, o.SrcAmount)
		remaining.Sub(remaining, o.DstAmount)
		id = o.Next
	}

	if remaining.Sign() != 0 {
		return nil, nil, false
	}
	return fills, totalDst, true
}

// GetConversionRate quotes how much dst one srcQty of src buys,
// walking the book front to back. The returned rate is in Precision
// fixed point; 0 means unquotable at this size: bad pair, oversized
// quantity, a book too shallow or deeper than the order cap, or a
// touched maker whose KNC deposit cannot cover the burn.
func (r *Reserve) GetConversionRate(src, dst ledger.Asset, srcQty *big.Int) *big.Int {
	zero := new(big.Int)

	dir, ok := pairDirection(src, dst)
	if !ok {
		return zero
	}
	if srcQty == nil || srcQty.Sign() <= 0 || srcQty.Cmp(numeric.MaxQty) > 0 {
		return zero
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	fills, totalDst, ok := r.walkBook(dir, srcQty)
	if !ok {
		return zero
	}

	// A maker whose deposit cannot pay the burn for its touched
	// volume makes the whole quote unquotable rather than silently
	// shifting fees.
	for _, f := range fills {
		burn := r.ledger.CalcBurnAmount(f.weiConsumed)
		if r.ledger.KncDeposited(f.maker).Cmp(burn) < 0 {
			return zero
		}
	}

	rate := numeric.MulDiv(totalDst, numeric.Precision, srcQty)
	if rate.Cmp(numeric.MaxRate) > 0 {
		return zero
	}
	return rate
}
