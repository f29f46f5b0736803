package numeric

import (
	"math/big"
	"testing"
)

func TestMulDivFloors(t *testing.T) {
	cases := []struct {
		a, b, c int64
		want    int64
	}{
		{9, 1, 2, 4},
		{7, 3, 2, 10},
		{1, 1, 3, 0},
		{10, 10, 10, 10},
	}
	for _, c := range cases {
		got := MulDiv(big.NewInt(c.a), big.NewInt(c.b), big.NewInt(c.c))
		if got.Int64() != c.want {
			t.Errorf("MulDiv(%d,%d,%d) = %s, want %d", c.a, c.b, c.c, got, c.want)
		}
	}

	// Intermediates past 64 bits must not overflow.
	a := new(big.Int).Mul(MaxQty, big.NewInt(3))
	got := MulDiv(a, Precision, Precision)
	if got.Cmp(a) != 0 {
		t.Errorf("wide MulDiv = %s, want %s", got, a)
	}
}

func TestSatSubClampsAtZero(t *testing.T) {
	if got := SatSub(big.NewInt(5), big.NewInt(3)); got.Int64() != 2 {
		t.Errorf("5-3 = %s", got)
	}
	if got := SatSub(big.NewInt(3), big.NewInt(5)); got.Sign() != 0 {
		t.Errorf("3-5 = %s, want 0", got)
	}
	if got := SatSub(big.NewInt(4), big.NewInt(4)); got.Sign() != 0 {
		t.Errorf("4-4 = %s, want 0", got)
	}
	// Inputs are never aliased into the result.
	a := big.NewInt(9)
	_ = SatSub(a, big.NewInt(1))
	if a.Int64() != 9 {
		t.Errorf("SatSub mutated its argument: %s", a)
	}
}

func TestInQtyRange(t *testing.T) {
	if InQtyRange(nil) {
		t.Error("nil in range")
	}
	if InQtyRange(new(big.Int)) {
		t.Error("zero in range")
	}
	if InQtyRange(big.NewInt(-1)) {
		t.Error("negative in range")
	}
	if !InQtyRange(big.NewInt(1)) {
		t.Error("1 out of range")
	}
	if InQtyRange(MaxQty) {
		t.Error("MaxQty itself in range")
	}
	if !InQtyRange(new(big.Int).Sub(MaxQty, big.NewInt(1))) {
		t.Error("MaxQty-1 out of range")
	}
}
