package engine

import (
	"math/big"
	"testing"

	"makerbook/domain/ledger"
	"makerbook/domain/numeric"
)

func TestQuoteUnquotablePairsAndSizes(t *testing.T) {
	f := newFixture(t, 10)

	// token/token and eth/eth are not pairs.
	if r := f.res.GetConversionRate(ledger.AssetToken, ledger.AssetToken, eth(1)); r.Sign() != 0 {
		t.Errorf("token/token rate = %s", r)
	}
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetEth, eth(1)); r.Sign() != 0 {
		t.Errorf("eth/eth rate = %s", r)
	}
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetToken, new(big.Int)); r.Sign() != 0 {
		t.Errorf("zero qty rate = %s", r)
	}
	over := new(big.Int).Add(numeric.MaxQty, big.NewInt(1))
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetToken, over); r.Sign() != 0 {
		t.Errorf("oversize qty rate = %s", r)
	}

	// Empty book.
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetToken, eth(1)); r.Sign() != 0 {
		t.Errorf("empty book rate = %s", r)
	}
}

func TestQuoteSingleOrder(t *testing.T) {
	f := newFixture(t, 10)
	f.fund(t, maker1, eth(600), eth(100), nil)

	if _, err := f.res.SubmitOrder(maker1, TokenToEth, eth(9), eth(2), 0); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Full take: 2 ETH buys 9 token, rate = 4.5 in fixed point.
	want := new(big.Int).Mul(big.NewInt(45), numeric.Exp10(17))
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetToken, eth(2)); r.Cmp(want) != 0 {
		t.Errorf("full rate = %s, want %s", r, want)
	}

	// Partial take keeps the same price.
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetToken, eth(1)); r.Cmp(want) != 0 {
		t.Errorf("partial rate = %s, want %s", r, want)
	}

	// More than the book holds.
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetToken, eth(3)); r.Sign() != 0 {
		t.Errorf("overdeep rate = %s, want 0", r)
	}
}

func TestQuoteWalksBestFirst(t *testing.T) {
	f := newFixture(t, 10)
	f.fund(t, maker1, eth(600), eth(100), nil)

	// Second order is the better price (more token per ETH) and must
	// be consumed first.
	if _, err := f.res.SubmitOrder(maker1, TokenToEth, eth(8), eth(2), 0); err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	if _, err := f.res.SubmitOrder(maker1, TokenToEth, eth(10), eth(2), 0); err != nil {
		t.Fatalf("submit 2: %v", err)
	}

	// 2 ETH consumes only the better order: 10 token.
	want := new(big.Int).Mul(big.NewInt(5), numeric.Precision)
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetToken, eth(2)); r.Cmp(want) != 0 {
		t.Errorf("best-first rate = %s, want %s", r, want)
	}

	// 4 ETH takes both: 18 token, rate 4.5.
	want = new(big.Int).Mul(big.NewInt(45), numeric.Exp10(17))
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetToken, eth(4)); r.Cmp(want) != 0 {
		t.Errorf("two-order rate = %s, want %s", r, want)
	}
}

func TestQuoteRespectsOrderCap(t *testing.T) {
	f := newFixture(t, 2)
	f.fund(t, maker1, eth(600), eth(100), nil)

	for i := 0; i < 3; i++ {
		if _, err := f.res.SubmitOrder(maker1, TokenToEth, eth(9), eth(2), 0); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	// Two orders cover 4 ETH; three would be needed for 6.
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetToken, eth(4)); r.Sign() == 0 {
		t.Error("rate within cap = 0")
	}
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetToken, eth(6)); r.Sign() != 0 {
		t.Errorf("rate beyond cap = %s, want 0", r)
	}
}

func TestQuoteZeroWhenMakerCannotPayBurn(t *testing.T) {
	f := newFixture(t, 10)
	f.fund(t, maker1, eth(600), eth(100), nil)

	if _, err := f.res.SubmitOrder(maker1, TokenToEth, eth(9), eth(2), 0); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetToken, eth(2)); r.Sign() == 0 {
		t.Fatal("healthy maker quoted 0")
	}

	// A huge KNC/ETH move pushes the burn past the deposit; the book
	// becomes unquotable rather than under-collecting fees.
	f.rates.set(new(big.Int).Mul(big.NewInt(3_000_000), numeric.Precision))
	if r := f.res.GetConversionRate(ledger.AssetEth, ledger.AssetToken, eth(2)); r.Sign() != 0 {
		t.Errorf("under-collateralized rate = %s, want 0", r)
	}
}

func TestQuoteEthToTokenDirection(t *testing.T) {
	f := newFixture(t, 10)
	f.fund(t, maker1, eth(600), nil, eth(10))

	// Maker sells 2 ETH for 900 token.
	if _, err := f.res.SubmitOrder(maker1, EthToToken, eth(2), eth(900), 0); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Taker pays 900 token for 2 ETH: rate = 2/900 in fixed point.
	want := numeric.MulDiv(eth(2), numeric.Precision, eth(900))
	if r := f.res.GetConversionRate(ledger.AssetToken, ledger.AssetEth, eth(900)); r.Cmp(want) != 0 {
		t.Errorf("rate = %s, want %s", r, want)
	}
}
