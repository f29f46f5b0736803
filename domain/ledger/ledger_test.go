package ledger

import (
	"math/big"
	"testing"

	"makerbook/domain/book"
	"makerbook/domain/numeric"
)

const maker = book.Address("maker1")

// fixedRate is a RateSource pinned to kncPerEth * Precision.
type fixedRate struct {
	rate *big.Int
}

func rateOf(kncPerEth int64) *fixedRate {
	return &fixedRate{rate: new(big.Int).Mul(big.NewInt(kncPerEth), numeric.Precision)}
}

func (f *fixedRate) KncPerEthRate() *big.Int { return new(big.Int).Set(f.rate) }

func eth(v int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(v), numeric.Exp10(18))
}

func newTestLedger(t *testing.T, rates RateSource) *Ledger {
	t.Helper()
	l, err := New(25, rates)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	return l
}

func TestNew_BurnFeeBounds(t *testing.T) {
	if _, err := New(0, rateOf(280)); err != ErrBadBurnFee {
		t.Fatalf("zero fee: %v", err)
	}
	if _, err := New(MaxBurnFeeBps+1, rateOf(280)); err != ErrBadBurnFee {
		t.Fatalf("fee above cap: %v", err)
	}
	if _, err := New(MaxBurnFeeBps, rateOf(280)); err != nil {
		t.Fatalf("fee at cap: %v", err)
	}
}

func TestCalcBurnAndStake(t *testing.T) {
	l := newTestLedger(t, rateOf(280))

	// 2 ETH volume at 280 KNC/ETH and 25 bps:
	// 2e18 * 25 * 280e18 / (1e4 * 1e18) = 1.4e18.
	burn := l.CalcBurnAmount(eth(2))
	want := new(big.Int).Mul(big.NewInt(14), numeric.Exp10(17))
	if burn.Cmp(want) != 0 {
		t.Fatalf("burn = %v, want %v", burn, want)
	}

	stake := l.CalcKncStake(eth(2))
	want.Mul(want, big.NewInt(BurnToStakeFactor))
	if stake.Cmp(want) != 0 {
		t.Fatalf("stake = %v, want %v", stake, want)
	}
}

func TestFreeKnc_FloorsAtZero(t *testing.T) {
	l := newTestLedger(t, rateOf(280))

	if err := l.Deposit(maker, AssetKnc, eth(1)); err != nil {
		t.Fatal(err)
	}
	// Lock far more volume than the deposit can ever stake.
	l.AddOrderWei(maker, eth(100))

	free := l.FreeKnc(maker)
	if free.Sign() != 0 {
		t.Fatalf("free knc = %v, want 0", free)
	}
	// Deposit itself is untouched.
	if l.KncDeposited(maker).Cmp(eth(1)) != 0 {
		t.Fatalf("deposit changed: %v", l.KncDeposited(maker))
	}
}

func TestFreeKnc_TracksCurrentRate(t *testing.T) {
	src := rateOf(280)
	l := newTestLedger(t, src)

	if err := l.Deposit(maker, AssetKnc, eth(600)); err != nil {
		t.Fatal(err)
	}
	l.AddOrderWei(maker, eth(2))

	before := l.FreeKnc(maker)

	// Double the KNC/ETH rate: required stake doubles on the very
	// next read, no resubmission needed.
	src.rate.Mul(src.rate, big.NewInt(2))

	after := l.FreeKnc(maker)
	if after.Cmp(before) >= 0 {
		t.Fatalf("free knc did not drop: %v -> %v", before, after)
	}

	wantDelta := l.CalcKncStake(eth(2))
	wantDelta.Rsh(wantDelta, 1) // half the new stake = old stake
	got := new(big.Int).Sub(before, after)
	if got.Cmp(wantDelta) != 0 {
		t.Fatalf("stake delta = %v, want %v", got, wantDelta)
	}
}

func TestBurn_ClampsAtZero(t *testing.T) {
	l := newTestLedger(t, rateOf(280))

	if err := l.Deposit(maker, AssetKnc, big.NewInt(1000)); err != nil {
		t.Fatal(err)
	}

	// Burn for a volume far above what 1000 twei covers.
	deducted := l.Burn(maker, eth(10))
	if deducted.Cmp(big.NewInt(1000)) != 0 {
		t.Fatalf("deducted = %v, want the full 1000", deducted)
	}
	if l.KncDeposited(maker).Sign() != 0 {
		t.Fatalf("deposit = %v, want 0", l.KncDeposited(maker))
	}

	// Burning with an empty deposit stays at zero, no error.
	deducted = l.Burn(maker, eth(10))
	if deducted.Sign() != 0 {
		t.Fatalf("deducted from empty deposit: %v", deducted)
	}
}

func TestWithdraw_KncLimitedToFreePortion(t *testing.T) {
	l := newTestLedger(t, rateOf(280))

	if err := l.Deposit(maker, AssetKnc, eth(600)); err != nil {
		t.Fatal(err)
	}
	l.AddOrderWei(maker, eth(2))

	free := l.FreeKnc(maker)
	over := new(big.Int).Add(free, big.NewInt(1))
	if err := l.Withdraw(maker, AssetKnc, over); err != ErrInsufficientFunds {
		t.Fatalf("withdraw above free: %v", err)
	}
	if err := l.Withdraw(maker, AssetKnc, free); err != nil {
		t.Fatalf("withdraw free portion: %v", err)
	}
}

func TestLockUnlock_RoundTrip(t *testing.T) {
	l := newTestLedger(t, rateOf(280))

	if err := l.Deposit(maker, AssetToken, eth(12)); err != nil {
		t.Fatal(err)
	}
	if err := l.Lock(maker, AssetToken, eth(12)); err != nil {
		t.Fatal(err)
	}
	if l.Funds(maker, AssetToken).Sign() != 0 {
		t.Fatalf("free after lock = %v", l.Funds(maker, AssetToken))
	}
	if err := l.Lock(maker, AssetToken, big.NewInt(1)); err != ErrInsufficientFunds {
		t.Fatalf("lock above free: %v", err)
	}

	l.Unlock(maker, AssetToken, eth(12))
	if l.Funds(maker, AssetToken).Cmp(eth(12)) != 0 {
		t.Fatalf("round trip lost funds: %v", l.Funds(maker, AssetToken))
	}
}

func TestSubOrderWei_Saturates(t *testing.T) {
	l := newTestLedger(t, rateOf(280))
	l.AddOrderWei(maker, eth(1))
	l.SubOrderWei(maker, eth(5))
	if l.OrderWei(maker).Sign() != 0 {
		t.Fatalf("order wei = %v, want 0", l.OrderWei(maker))
	}
}

func TestDeposit_RejectsNonPositive(t *testing.T) {
	l := newTestLedger(t, rateOf(280))
	if err := l.Deposit(maker, AssetEth, big.NewInt(0)); err != ErrBadAmount {
		t.Fatalf("zero deposit: %v", err)
	}
	if err := l.Deposit(maker, AssetEth, big.NewInt(-5)); err != ErrBadAmount {
		t.Fatalf("negative deposit: %v", err)
	}
}
