package engine

import (
	"fmt"
	"math/big"

	"makerbook/domain/book"
	"makerbook/domain/ledger"
	"makerbook/domain/numeric"
)

// Fill reports one order consumed (fully or partly) by a trade.
type Fill struct {
	OrderID   uint32
	Maker     book.Address
	TakenSrc  *big.Int
	PaidDst   *big.Int
	BurnedKnc *big.Int
	Removed   bool
}

// TradeResult is the committed outcome of a Trade call.
type TradeResult struct {
	Direction Direction
	SrcAsset  ledger.Asset
	DstAsset  ledger.Asset
	SrcAmount *big.Int
	DstAmount *big.Int
	Recipient book.Address
	Fills     []Fill
}

// Trade executes a taker trade: srcAmount of src is pulled from the
// caller, resting orders are consumed front to back, and the bought
// dst is paid out to recipient. Only the configured network address
// may call it. attachedWei models the ETH sent along with the call
// and must match the ETH leg exactly.
//
// With validate set, the realized rate must be at least
// conversionRate or the trade aborts. Either the whole trade commits
// or no state changes at all.
func (r *Reserve) Trade(
	caller book.Address,
	src ledger.Asset,
	srcAmount *big.Int,
	dst ledger.Asset,
	recipient book.Address,
	conversionRate *big.Int,
	validate bool,
	attachedWei *big.Int,
) (*TradeResult, error) {
	if caller != r.cfg.Network {
		return nil, ErrUnauthorizedTaker
	}
	dir, ok := pairDirection(src, dst)
	if !ok {
		return nil, ErrBadPair
	}
	if srcAmount == nil || srcAmount.Sign() <= 0 || srcAmount.Cmp(numeric.MaxQty) > 0 {
		return nil, ErrBadAmount
	}
	if recipient == "" {
		return nil, ErrBadAmount
	}
	if err := checkAttachedValue(src, srcAmount, attachedWei); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	minResting, err := r.minRestingWeiLocked()
	if err != nil {
		return nil, err
	}

	fills, totalDst, ok := r.walkBook(dir, srcAmount)
	if !ok {
		return nil, ErrInsufficientLiquidity
	}

	if validate && conversionRate != nil {
		actual := numeric.MulDiv(totalDst, numeric.Precision, srcAmount)
		if actual.Cmp(conversionRate) < 0 {
			return nil, ErrRateBelowMin
		}
	}

	// External movements first: both transfers must succeed before
	// any book or ledger state is touched, so a failure aborts with
	// no effect.
	if err := r.cfg.Vault.TransferIn(src, caller, srcAmount); err != nil {
		return nil, fmt.Errorf("engine: trade transfer in: %w", err)
	}
	if err := r.cfg.Vault.TransferOut(dst, recipient, totalDst); err != nil {
		// Hand the src leg back so the aborted trade moves nothing.
		if rbErr := r.cfg.Vault.TransferOut(src, caller, srcAmount); rbErr != nil {
			return nil, fmt.Errorf("engine: trade transfer out: %w (src refund also failed: %v)", err, rbErr)
		}
		return nil, fmt.Errorf("engine: trade transfer out: %w", err)
	}

	res := &TradeResult{
		Direction: dir,
		SrcAsset:  src,
		DstAsset:  dst,
		SrcAmount: new(big.Int).Set(srcAmount),
		DstAmount: totalDst,
		Recipient: recipient,
	}
	for _, f := range fills {
		res.Fills = append(res.Fills, r.applyFillLocked(dir, f, minResting))
	}
	return res, nil
}

func checkAttachedValue(src ledger.Asset, srcAmount, attachedWei *big.Int) error {
	if src == ledger.AssetEth {
		if attachedWei == nil || attachedWei.Cmp(srcAmount) != 0 {
			return ErrValueMismatch
		}
		return nil
	}
	if attachedWei != nil && attachedWei.Sign() != 0 {
		return ErrValueMismatch
	}
	return nil
}

func (r *Reserve) minRestingWeiLocked() (*big.Int, error) {
	minNew, err := r.minNewOrderWei()
	if err != nil {
		return nil, err
	}
	return minNew.Rsh(minNew, 1), nil
}

// applyFillLocked commits one planned fill: ledger credit, stake
// release, burn, and either removal or in-place shrink of the order.
// The plan was validated by the walk, so nothing here may fail.
func (r *Reserve) applyFillLocked(dir Direction, f fill, minResting *big.Int) Fill {
	l := r.list(dir)
	o, _ := l.Get(f.id)
	out := Fill{
		OrderID:  f.id,
		Maker:    f.maker,
		TakenSrc: f.takeSrc,
		PaidDst:  f.payDst,
	}

	if f.full {
		r.removeFilledLocked(dir, o, new(big.Int))
		out.Removed = true
	} else {
		newSrc := new(big.Int).Sub(o.SrcAmount, f.takeSrc)
		newDst := new(big.Int).Sub(o.DstAmount, f.payDst)
		if orderWei(dir, newSrc, newDst).Cmp(minResting) < 0 {
			// Dust remainder: sweep the order and hand the maker the
			// unconsumed backing back.
			r.removeFilledLocked(dir, o, newSrc)
			out.Removed = true
		} else {
			// Same-fraction shrink keeps the node's position valid.
			_ = l.SetAmounts(f.id, newSrc, newDst)
			r.ledger.SubOrderWei(f.maker, f.weiConsumed)
		}
	}

	r.ledger.Credit(f.maker, makerWants(dir), f.payDst)
	out.BurnedKnc = r.ledger.Burn(f.maker, f.weiConsumed)
	return out
}

// removeFilledLocked removes a consumed order, releasing the id and
// any residual backing funds to the maker.
func (r *Reserve) removeFilledLocked(dir Direction, o *book.Order, residualSrc *big.Int) {
	maker := o.Maker
	wei := new(big.Int).Set(orderWei(dir, o.SrcAmount, o.DstAmount))

	_ = r.list(dir).Remove(o.ID)
	_ = r.ids(dir)[maker].Release(o.ID)
	if residualSrc.Sign() > 0 {
		r.ledger.Unlock(maker, makerGives(dir), residualSrc)
	}
	r.ledger.SubOrderWei(maker, wei)
}
