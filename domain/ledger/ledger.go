// Package ledger keeps per-maker balances and the fee-token stake and
// burn arithmetic. It is pure accounting: no list traversal, no
// knowledge of order positions.
package ledger

import (
	"errors"
	"math/big"

	"makerbook/domain/book"
	"makerbook/domain/numeric"
)

// Asset names the three balances a maker holds at the reserve.
type Asset uint8

const (
	AssetToken Asset = iota
	AssetEth
	AssetKnc
)

func (a Asset) String() string {
	switch a {
	case AssetToken:
		return "token"
	case AssetEth:
		return "eth"
	case AssetKnc:
		return "knc"
	default:
		return "unknown"
	}
}

const (
	// BurnToStakeFactor scales the burn amount into the stake a maker
	// must keep deposited against resting volume.
	BurnToStakeFactor = 5

	// MaxBurnFeeBps caps the configurable maker burn fee.
	MaxBurnFeeBps = 100
)

var (
	ErrBadAmount         = errors.New("ledger: non-positive amount")
	ErrBadBurnFee        = errors.New("ledger: burn fee out of range")
	ErrInsufficientFunds = errors.New("ledger: insufficient free funds")
)

// RateSource supplies the current fee-token per quote-asset rate in
// Precision fixed point. It is read on every stake/burn computation,
// never cached, so an external rate move immediately changes every
// maker's required stake.
type RateSource interface {
	KncPerEthRate() *big.Int
}

// Account holds one maker's balances. Token and ETH balances are free
// amounts: submitting an order moves funds out, cancelling or filling
// moves them back in. The KNC balance is the total deposited; the free
// portion is derived from the required stake.
type Account struct {
	funds     map[Asset]*big.Int
	lockedWei *big.Int
}

func newAccount() *Account {
	return &Account{
		funds: map[Asset]*big.Int{
			AssetToken: new(big.Int),
			AssetEth:   new(big.Int),
			AssetKnc:   new(big.Int),
		},
		lockedWei: new(big.Int),
	}
}

// Ledger tracks all maker accounts of one reserve. Not goroutine safe;
// the engine serializes access.
type Ledger struct {
	burnFeeBps int64
	rates      RateSource
	accounts   map[book.Address]*Account
}

func New(burnFeeBps int64, rates RateSource) (*Ledger, error) {
	if burnFeeBps <= 0 || burnFeeBps > MaxBurnFeeBps {
		return nil, ErrBadBurnFee
	}
	return &Ledger{
		burnFeeBps: burnFeeBps,
		rates:      rates,
		accounts:   make(map[book.Address]*Account),
	}, nil
}

func (l *Ledger) account(maker book.Address) *Account {
	a, ok := l.accounts[maker]
	if !ok {
		a = newAccount()
		l.accounts[maker] = a
	}
	return a
}

// ---------------- balances ----------------

// Deposit credits a maker's free balance.
func (l *Ledger) Deposit(maker book.Address, asset Asset, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrBadAmount
	}
	a := l.account(maker)
	a.funds[asset].Add(a.funds[asset], amount)
	return nil
}

// Withdraw debits a maker's free balance. For KNC only the portion not
// backing resting orders may leave.
func (l *Ledger) Withdraw(maker book.Address, asset Asset, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrBadAmount
	}
	a := l.account(maker)
	avail := a.funds[asset]
	if asset == AssetKnc {
		avail = l.FreeKnc(maker)
	}
	if avail.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	a.funds[asset].Sub(a.funds[asset], amount)
	return nil
}

// Lock moves funds out of the free balance to back a new order.
func (l *Ledger) Lock(maker book.Address, asset Asset, amount *big.Int) error {
	a := l.account(maker)
	if a.funds[asset].Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	a.funds[asset].Sub(a.funds[asset], amount)
	return nil
}

// Unlock returns order backing to the free balance (cancel, shrink, or
// the unconsumed remainder of a partial fill).
func (l *Ledger) Unlock(maker book.Address, asset Asset, amount *big.Int) {
	a := l.account(maker)
	a.funds[asset].Add(a.funds[asset], amount)
}

// Credit pays a maker the taker-side asset of a fill.
func (l *Ledger) Credit(maker book.Address, asset Asset, amount *big.Int) {
	a := l.account(maker)
	a.funds[asset].Add(a.funds[asset], amount)
}

// Funds returns a copy of the maker's free balance. For KNC this is
// the stake-adjusted free portion.
func (l *Ledger) Funds(maker book.Address, asset Asset) *big.Int {
	a, ok := l.accounts[maker]
	if !ok {
		return new(big.Int)
	}
	if asset == AssetKnc {
		return l.FreeKnc(maker)
	}
	return new(big.Int).Set(a.funds[asset])
}

// KncDeposited returns the maker's total deposited KNC, staked or not.
func (l *Ledger) KncDeposited(maker book.Address) *big.Int {
	a, ok := l.accounts[maker]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(a.funds[AssetKnc])
}

// ---------------- order volume and stake ----------------

// AddOrderWei grows the maker's resting volume.
func (l *Ledger) AddOrderWei(maker book.Address, wei *big.Int) {
	a := l.account(maker)
	a.lockedWei.Add(a.lockedWei, wei)
}

// SubOrderWei shrinks the maker's resting volume, clamped at zero.
func (l *Ledger) SubOrderWei(maker book.Address, wei *big.Int) {
	a := l.account(maker)
	a.lockedWei.Set(numeric.SatSub(a.lockedWei, wei))
}

// OrderWei returns the maker's total resting volume in wei.
func (l *Ledger) OrderWei(maker book.Address) *big.Int {
	a, ok := l.accounts[maker]
	if !ok {
		return new(big.Int)
	}
	return new(big.Int).Set(a.lockedWei)
}

// RequiredStake is the KNC the maker must keep deposited for the
// currently resting volume, at the current KNC/ETH rate.
func (l *Ledger) RequiredStake(maker book.Address) *big.Int {
	return l.CalcKncStake(l.OrderWei(maker))
}

// FreeKnc is the deposited KNC not required as stake, floored at zero.
// A rate move against the maker can push the requirement above the
// deposit; that must read as zero free, not underflow.
func (l *Ledger) FreeKnc(maker book.Address) *big.Int {
	return numeric.SatSub(l.KncDeposited(maker), l.RequiredStake(maker))
}

// CanStake reports whether the maker's deposit covers the stake for
// the resting volume plus addWei more.
func (l *Ledger) CanStake(maker book.Address, addWei *big.Int) bool {
	total := new(big.Int).Add(l.OrderWei(maker), addWei)
	return l.KncDeposited(maker).Cmp(l.CalcKncStake(total)) >= 0
}

// ---------------- burn arithmetic ----------------

// CalcBurnAmount converts filled wei volume into the KNC burned for
// it: weiVolume * burnFeeBps * kncPerEthRate / (BPS * Precision),
// floored, with double-width intermediates.
func (l *Ledger) CalcBurnAmount(weiVolume *big.Int) *big.Int {
	fee := new(big.Int).Mul(weiVolume, big.NewInt(l.burnFeeBps))
	fee.Mul(fee, l.rates.KncPerEthRate())
	den := new(big.Int).Mul(big.NewInt(numeric.BPS), numeric.Precision)
	return fee.Quo(fee, den)
}

// CalcKncStake is the stake required for a wei volume.
func (l *Ledger) CalcKncStake(weiVolume *big.Int) *big.Int {
	stake := l.CalcBurnAmount(weiVolume)
	return stake.Mul(stake, big.NewInt(BurnToStakeFactor))
}

// Burn deducts the burn for consumed volume from the maker's KNC
// deposit, clamped at zero. A maker whose KNC rate moved against them
// can still be filled; the deduction simply empties the deposit.
// Returns the amount actually deducted.
func (l *Ledger) Burn(maker book.Address, weiVolume *big.Int) *big.Int {
	a := l.account(maker)
	burn := l.CalcBurnAmount(weiVolume)
	deducted := burn
	if a.funds[AssetKnc].Cmp(burn) < 0 {
		deducted = new(big.Int).Set(a.funds[AssetKnc])
	}
	a.funds[AssetKnc].Set(numeric.SatSub(a.funds[AssetKnc], burn))
	return deducted
}

// BurnFeeBps exposes the configured fee for getters and snapshots.
func (l *Ledger) BurnFeeBps() int64 { return l.burnFeeBps }

// Makers returns every address with an account, for snapshotting.
func (l *Ledger) Makers() []book.Address {
	out := make([]book.Address, 0, len(l.accounts))
	for m := range l.accounts {
		out = append(out, m)
	}
	return out
}

// Restore rebuilds an account from snapshot state.
func (l *Ledger) Restore(maker book.Address, token, eth, knc, lockedWei *big.Int) {
	a := l.account(maker)
	a.funds[AssetToken].Set(token)
	a.funds[AssetEth].Set(eth)
	a.funds[AssetKnc].Set(knc)
	a.lockedWei.Set(lockedWei)
}
