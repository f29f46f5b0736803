package book

import (
	"math/big"

	"makerbook/domain/numeric"
)

// Address identifies a maker or taker account.
type Address string

// Sentinel ids. The head is always the node before the best order and
// the tail terminates the list; neither ever holds a real order.
// Real ids start at FirstFreeID.
const (
	TailID      uint32 = 1
	HeadID      uint32 = 2
	FirstFreeID uint32 = 3
)

// Order is one resting maker order. SrcAmount is what the maker gives,
// DstAmount what the maker asks in return; together they encode the
// price. Prev/Next are slot ids, not pointers, so identity checks stay
// explicit integer comparisons.
type Order struct {
	ID        uint32
	Maker     Address
	SrcAmount *big.Int
	DstAmount *big.Int
	Prev      uint32
	Next      uint32
}

// Reset clears the slot for reuse through the pool.
func (o *Order) Reset() { *o = Order{} }

// better reports whether an order giving src for dst is strictly
// better for the taker than order b: it delivers more src per unit of
// dst paid. Cross-multiplied to stay exact.
func better(src, dst *big.Int, b *Order) bool {
	lhs := new(big.Int).Mul(src, b.DstAmount)
	rhs := new(big.Int).Mul(b.SrcAmount, dst)
	return lhs.Cmp(rhs) > 0
}

// checkAmounts validates submitted order amounts: both inside
// (0, MaxQty) and the implied rate below MaxRate.
func checkAmounts(src, dst *big.Int) error {
	if !numeric.InQtyRange(src) || !numeric.InQtyRange(dst) {
		return ErrBadAmount
	}
	rate := numeric.MulDiv(dst, numeric.Precision, src)
	if rate.Cmp(numeric.MaxRate) >= 0 {
		return ErrRateTooHigh
	}
	return nil
}
