package engine

import (
	"fmt"
	"math/big"
	"sort"

	"makerbook/domain/book"
	"makerbook/domain/ledger"
	"makerbook/domain/numeric"
)

// ---------------- deposits / withdrawals ----------------

// DepositToken pulls tokens from the maker into the reserve and
// credits the free balance.
func (r *Reserve) DepositToken(maker book.Address, amount *big.Int) error {
	return r.deposit(maker, ledger.AssetToken, amount)
}

// DepositEther credits the maker's free ETH balance.
func (r *Reserve) DepositEther(maker book.Address, amount *big.Int) error {
	return r.deposit(maker, ledger.AssetEth, amount)
}

// DepositKncFee credits the maker's fee-token deposit. The first KNC
// deposit also claims the maker's order id ranges, once, for both
// directions.
func (r *Reserve) DepositKncFee(maker book.Address, amount *big.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkDepositAmount(maker, amount); err != nil {
		return err
	}
	if err := r.allocateIDsLocked(maker); err != nil {
		return err
	}
	if err := r.cfg.Vault.TransferIn(ledger.AssetKnc, maker, amount); err != nil {
		return fmt.Errorf("engine: knc transfer in: %w", err)
	}
	return r.ledger.Deposit(maker, ledger.AssetKnc, amount)
}

func (r *Reserve) deposit(maker book.Address, asset ledger.Asset, amount *big.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := checkDepositAmount(maker, amount); err != nil {
		return err
	}
	if err := r.cfg.Vault.TransferIn(asset, maker, amount); err != nil {
		return fmt.Errorf("engine: %s transfer in: %w", asset, err)
	}
	return r.ledger.Deposit(maker, asset, amount)
}

func checkDepositAmount(maker book.Address, amount *big.Int) error {
	if maker == "" {
		return ErrBadAmount
	}
	if amount == nil || amount.Sign() <= 0 || amount.Cmp(numeric.MaxQty) >= 0 {
		return ErrBadAmount
	}
	return nil
}

func (r *Reserve) allocateIDsLocked(maker book.Address) error {
	if _, ok := r.idsTokenToEth[maker]; ok {
		return nil
	}
	firstT2E, err := r.tokenToEth.AllocateIDs(book.NumOrders)
	if err != nil {
		return err
	}
	firstE2T, err := r.ethToToken.AllocateIDs(book.NumOrders)
	if err != nil {
		return err
	}

	mt := &book.IDManager{}
	if err := mt.Allocate(firstT2E); err != nil {
		return err
	}
	me := &book.IDManager{}
	if err := me.Allocate(firstE2T); err != nil {
		return err
	}
	r.idsTokenToEth[maker] = mt
	r.idsEthToToken[maker] = me
	return nil
}

// WithdrawToken moves free tokens back to the maker.
func (r *Reserve) WithdrawToken(maker book.Address, amount *big.Int) error {
	return r.withdraw(maker, ledger.AssetToken, amount)
}

// WithdrawEther moves free ETH back to the maker.
func (r *Reserve) WithdrawEther(maker book.Address, amount *big.Int) error {
	return r.withdraw(maker, ledger.AssetEth, amount)
}

// WithdrawKncFee moves free (unstaked) KNC back to the maker.
func (r *Reserve) WithdrawKncFee(maker book.Address, amount *big.Int) error {
	return r.withdraw(maker, ledger.AssetKnc, amount)
}

func (r *Reserve) withdraw(maker book.Address, asset ledger.Asset, amount *big.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if amount == nil || amount.Sign() <= 0 {
		return ErrBadAmount
	}
	if r.ledger.Funds(maker, asset).Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	// Transfer before the debit: a failing transfer leaves the
	// balance untouched, and the debit cannot fail after the check.
	if err := r.cfg.Vault.TransferOut(asset, maker, amount); err != nil {
		return fmt.Errorf("engine: %s transfer out: %w", asset, err)
	}
	return r.ledger.Withdraw(maker, asset, amount)
}

// ---------------- submit ----------------

// SubmitOrder places a new resting order. hint optionally names the
// order after which the position scan should start; 0 means no hint.
// Returns the assigned order id.
func (r *Reserve) SubmitOrder(maker book.Address, dir Direction, src, dst *big.Int, hint uint32) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submitLocked(maker, dir, src, dst, hint, false)
}

// submitLocked validates everything before touching state: a failed
// submission must leave no trace.
func (r *Reserve) submitLocked(maker book.Address, dir Direction, src, dst *big.Int, hint uint32, afterAnchor bool) (uint32, error) {
	ids, ok := r.ids(dir)[maker]
	if !ok {
		return 0, ErrNoKncDeposit
	}

	minNew, err := r.minNewOrderWei()
	if err != nil {
		return 0, err
	}
	wei := orderWei(dir, src, dst)
	if !numeric.InQtyRange(src) || !numeric.InQtyRange(dst) {
		return 0, ErrBadAmount
	}
	if wei.Cmp(minNew) < 0 {
		return 0, ErrOrderTooSmall
	}
	if r.ledger.Funds(maker, makerGives(dir)).Cmp(src) < 0 {
		return 0, ErrInsufficientFunds
	}
	if !r.ledger.CanStake(maker, wei) {
		return 0, ErrInsufficientStake
	}

	id, err := ids.Fetch()
	if err != nil {
		return 0, err
	}

	if afterAnchor {
		err = r.list(dir).InsertAfter(id, maker, src, dst, hint)
	} else {
		err = r.list(dir).Insert(id, maker, src, dst, hint)
	}
	if err != nil {
		// Undo the only mutation so far.
		_ = ids.Release(id)
		return 0, err
	}

	// Checked above; cannot fail now.
	if err := r.ledger.Lock(maker, makerGives(dir), src); err != nil {
		_ = r.list(dir).Remove(id)
		_ = ids.Release(id)
		return 0, err
	}
	r.ledger.AddOrderWei(maker, wei)
	return id, nil
}

// SubmitOrderBatch submits parallel arrays of orders atomically. When
// isAfterPrev[i] is set the order anchors directly after the id the
// batch assigned at i-1, which skips the position scan for
// pre-sorted batches. Any failure rolls the whole batch back.
func (r *Reserve) SubmitOrderBatch(maker book.Address, dir Direction, srcs, dsts []*big.Int, hints []uint32, isAfterPrev []bool) ([]uint32, error) {
	if len(srcs) != len(dsts) || len(srcs) != len(hints) || len(srcs) != len(isAfterPrev) {
		return nil, ErrArrayLength
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	submitted := make([]uint32, 0, len(srcs))
	rollback := func() {
		for i := len(submitted) - 1; i >= 0; i-- {
			_ = r.cancelLocked(maker, dir, submitted[i])
		}
	}

	for i := range srcs {
		hint := hints[i]
		afterPrev := isAfterPrev[i]
		if afterPrev {
			if i == 0 {
				rollback()
				return nil, ErrArrayLength
			}
			hint = submitted[i-1]
		}
		id, err := r.submitLocked(maker, dir, srcs[i], dsts[i], hint, afterPrev)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("engine: batch item %d: %w", i, err)
		}
		submitted = append(submitted, id)
	}
	return submitted, nil
}

// ---------------- update ----------------

// UpdateOrder rewrites a resting order's amounts, repositioning it
// when the new rate requires. The updated order must still meet the
// full new-order minimum.
func (r *Reserve) UpdateOrder(maker book.Address, dir Direction, id uint32, src, dst *big.Int, hint uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(maker, dir, id, src, dst, hint)
}

func (r *Reserve) updateLocked(maker book.Address, dir Direction, id uint32, src, dst *big.Int, hint uint32) error {
	o, err := r.list(dir).Get(id)
	if err != nil {
		return err
	}
	if o.Maker != maker {
		return ErrNotOwner
	}

	minNew, err := r.minNewOrderWei()
	if err != nil {
		return err
	}
	if !numeric.InQtyRange(src) || !numeric.InQtyRange(dst) {
		return ErrBadAmount
	}
	oldSrc := new(big.Int).Set(o.SrcAmount)
	oldWei := new(big.Int).Set(orderWei(dir, o.SrcAmount, o.DstAmount))
	newWei := orderWei(dir, src, dst)
	if newWei.Cmp(minNew) < 0 {
		return ErrOrderTooSmall
	}

	srcGrow := new(big.Int).Sub(src, oldSrc) // may be negative
	if srcGrow.Sign() > 0 && r.ledger.Funds(maker, makerGives(dir)).Cmp(srcGrow) < 0 {
		return ErrInsufficientFunds
	}
	if newWei.Cmp(oldWei) > 0 {
		grow := new(big.Int).Sub(newWei, oldWei)
		if !r.ledger.CanStake(maker, grow) {
			return ErrInsufficientStake
		}
	}

	if err := r.list(dir).Update(id, src, dst, hint); err != nil {
		return err
	}

	// Settle the funding delta.
	switch srcGrow.Sign() {
	case 1:
		_ = r.ledger.Lock(maker, makerGives(dir), srcGrow)
	case -1:
		r.ledger.Unlock(maker, makerGives(dir), new(big.Int).Neg(srcGrow))
	}
	if c := newWei.Cmp(oldWei); c > 0 {
		r.ledger.AddOrderWei(maker, new(big.Int).Sub(newWei, oldWei))
	} else if c < 0 {
		r.ledger.SubOrderWei(maker, new(big.Int).Sub(oldWei, newWei))
	}
	return nil
}

// UpdateOrderBatch applies parallel-array updates atomically, rolling
// back applied items on any failure. Rollback restores the exact
// pre-batch list: amounts first (in reverse, so the fund deltas
// unwind along the path they were taken), then each order's position
// behind its original predecessor, which puts equal-rate orders back
// in their original time priority.
func (r *Reserve) UpdateOrderBatch(maker book.Address, dir Direction, orderIDs []uint32, srcs, dsts []*big.Int, hints []uint32) error {
	if len(orderIDs) != len(srcs) || len(orderIDs) != len(dsts) || len(orderIDs) != len(hints) {
		return ErrArrayLength
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	l := r.list(dir)

	type prior struct {
		id       uint32
		src, dst *big.Int
		prev     uint32
		pos      int
	}
	priors := make([]prior, len(orderIDs))
	pos := make(map[uint32]int, l.Len())
	for i, id := range l.IDs() {
		pos[id] = i
	}
	for i, id := range orderIDs {
		o, err := l.Get(id)
		if err != nil {
			return fmt.Errorf("engine: batch item %d: %w", i, err)
		}
		priors[i] = prior{
			id:   id,
			src:  new(big.Int).Set(o.SrcAmount),
			dst:  new(big.Int).Set(o.DstAmount),
			prev: o.Prev,
			pos:  pos[id],
		}
	}

	rollback := func(applied int) {
		for i := applied - 1; i >= 0; i-- {
			p := priors[i]
			_ = r.updateLocked(maker, dir, p.id, p.src, p.dst, 0)
		}
		restored := append([]prior(nil), priors[:applied]...)
		sort.Slice(restored, func(a, b int) bool { return restored[a].pos < restored[b].pos })
		for _, p := range restored {
			_ = l.MoveAfter(p.id, p.prev)
		}
	}

	for i := range orderIDs {
		if err := r.updateLocked(maker, dir, orderIDs[i], srcs[i], dsts[i], hints[i]); err != nil {
			rollback(i)
			return fmt.Errorf("engine: batch item %d: %w", i, err)
		}
	}
	return nil
}

// ---------------- cancel ----------------

// CancelOrder removes a maker's resting order, returning its backing
// funds to the free balance and its id to the allocator.
func (r *Reserve) CancelOrder(maker book.Address, dir Direction, id uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancelLocked(maker, dir, id)
}

func (r *Reserve) cancelLocked(maker book.Address, dir Direction, id uint32) error {
	o, err := r.list(dir).Get(id)
	if err != nil {
		return err
	}
	if o.Maker != maker {
		return ErrNotOwner
	}

	src := new(big.Int).Set(o.SrcAmount)
	wei := new(big.Int).Set(orderWei(dir, o.SrcAmount, o.DstAmount))

	if err := r.list(dir).Remove(id); err != nil {
		return err
	}
	if err := r.ids(dir)[maker].Release(id); err != nil {
		return err
	}
	r.ledger.Unlock(maker, makerGives(dir), src)
	r.ledger.SubOrderWei(maker, wei)
	return nil
}
