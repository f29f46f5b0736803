// Package numeric holds the fixed-point constants and wide-arithmetic
// helpers shared by the book, ledger and engine. All amounts are
// non-negative integers in the smallest asset unit (wei / twei) and may
// be as large as MaxQty, so intermediates use big.Int throughout.
package numeric

import "math/big"

// BPS is the basis-point denominator.
const BPS = 10000

var (
	// Precision is the fixed-point unit for conversion rates (10^18).
	Precision = Exp10(18)

	// MaxQty is the largest legal order amount (10^28).
	MaxQty = Exp10(28)

	// MaxRate is the largest legal conversion rate, Precision * 10^6.
	MaxRate = new(big.Int).Mul(Precision, Exp10(6))
)

// Exp10 returns 10^n as a fresh big.Int.
func Exp10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}

// MulDiv returns floor(a*b/c). c must be non-zero.
func MulDiv(a, b, c *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Quo(r, c)
}

// SatSub returns max(0, a-b). Saturating on purpose: the stake/burn
// accounting clamps underflow instead of failing.
func SatSub(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sub(a, b)
}

// InQtyRange reports whether 0 < v < MaxQty.
func InQtyRange(v *big.Int) bool {
	return v != nil && v.Sign() > 0 && v.Cmp(MaxQty) < 0
}
