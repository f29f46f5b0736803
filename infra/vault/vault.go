// Package vault models the asset transfer primitive the reserve
// settles through: an account ledger of external balances with the
// reserve itself as counterparty. A transfer either moves the full
// amount or fails; the engine aborts the surrounding operation on
// failure.
package vault

import (
	"errors"
	"math/big"
	"sync"

	"makerbook/domain/book"
	"makerbook/domain/ledger"
)

var (
	ErrBadAmount    = errors.New("vault: non-positive amount")
	ErrInsufficient = errors.New("vault: insufficient balance")
)

// Bank is an in-memory Vault implementation.
type Bank struct {
	mu      sync.Mutex
	reserve book.Address
	// balances[asset][holder]
	balances map[ledger.Asset]map[book.Address]*big.Int

	// bypass makes transfers unconditionally succeed, only adjusting
	// the reserve side. Used while replaying the journal, where the
	// external legs already happened in a previous life.
	bypass bool
}

func NewBank(reserve book.Address) *Bank {
	return &Bank{
		reserve:  reserve,
		balances: make(map[ledger.Asset]map[book.Address]*big.Int),
	}
}

// SetBypass toggles replay mode.
func (b *Bank) SetBypass(v bool) {
	b.mu.Lock()
	b.bypass = v
	b.mu.Unlock()
}

// Mint seeds an external balance, for wiring and tests.
func (b *Bank) Mint(asset ledger.Asset, holder book.Address, amount *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bal := b.balance(asset, holder)
	bal.Add(bal, amount)
}

// Balance returns a holder's external balance.
func (b *Bank) Balance(asset ledger.Asset, holder book.Address) *big.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return new(big.Int).Set(b.balance(asset, holder))
}

func (b *Bank) balance(asset ledger.Asset, holder book.Address) *big.Int {
	m, ok := b.balances[asset]
	if !ok {
		m = make(map[book.Address]*big.Int)
		b.balances[asset] = m
	}
	v, ok := m[holder]
	if !ok {
		v = new(big.Int)
		m[holder] = v
	}
	return v
}

// TransferIn moves amount from an external holder into the reserve.
func (b *Bank) TransferIn(asset ledger.Asset, from book.Address, amount *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if amount == nil || amount.Sign() <= 0 {
		return ErrBadAmount
	}
	if b.bypass {
		res := b.balance(asset, b.reserve)
		res.Add(res, amount)
		return nil
	}
	src := b.balance(asset, from)
	if src.Cmp(amount) < 0 {
		return ErrInsufficient
	}
	src.Sub(src, amount)
	res := b.balance(asset, b.reserve)
	res.Add(res, amount)
	return nil
}

// TransferOut moves amount from the reserve to an external holder.
func (b *Bank) TransferOut(asset ledger.Asset, to book.Address, amount *big.Int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if amount == nil || amount.Sign() <= 0 {
		return ErrBadAmount
	}
	res := b.balance(asset, b.reserve)
	if !b.bypass && res.Cmp(amount) < 0 {
		return ErrInsufficient
	}
	res.Sub(res, amount)
	dst := b.balance(asset, to)
	dst.Add(dst, amount)
	return nil
}
