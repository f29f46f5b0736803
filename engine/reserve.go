// Package engine implements the reserve settlement engine: it owns the
// two order lists, the maker ledger and the id allocators, computes
// conversion rates by walking the book, and executes trades against
// one or many orders atomically.
//
// Every mutation runs to completion under a single writer lock, so a
// caller never observes a half-applied trade or submission. Reads take
// the shared side of the lock.
package engine

import (
	"errors"
	"math/big"
	"sync"

	"makerbook/domain/book"
	"makerbook/domain/ledger"
	"makerbook/domain/numeric"
	"makerbook/infra/memory"
)

// Direction selects one of the two per-reserve order lists.
type Direction uint8

const (
	TokenToEth Direction = iota // makers sell the reserve token for ETH
	EthToToken                  // makers sell ETH for the reserve token
)

func (d Direction) String() string {
	if d == TokenToEth {
		return "token_to_eth"
	}
	return "eth_to_token"
}

var (
	ErrBadConfig             = errors.New("engine: invalid configuration")
	ErrBadPair               = errors.New("engine: unsupported asset pair")
	ErrBadAmount             = errors.New("engine: amount out of range")
	ErrOrderTooSmall         = errors.New("engine: order below minimum size")
	ErrNoKncDeposit          = errors.New("engine: maker has no knc deposit")
	ErrInsufficientStake     = errors.New("engine: insufficient knc stake")
	ErrInsufficientFunds     = errors.New("engine: insufficient free funds")
	ErrNotOwner              = errors.New("engine: order belongs to another maker")
	ErrUnauthorizedTaker     = errors.New("engine: caller is not the taker of record")
	ErrValueMismatch         = errors.New("engine: attached value does not match eth leg")
	ErrRateBelowMin          = errors.New("engine: realized rate worse than authorized")
	ErrInsufficientLiquidity = errors.New("engine: cannot fill within order cap")
	ErrOraclePrice           = errors.New("engine: usd/eth oracle price invalid")
	ErrArrayLength           = errors.New("engine: batch array length mismatch")
)

// Oracle sanity band: reject a USD/ETH price at or below one cent or
// at or above a million dollars, in Precision fixed point. A
// compromised feed must not zero out or explode the minimum order
// size.
var (
	usdPerEthFloor = numeric.Exp10(16)
	usdPerEthCeil  = numeric.Exp10(24)
)

// Config wires a reserve instance.
type Config struct {
	// Network is the only address allowed to call Trade.
	Network book.Address

	// BurnFeeBps is the maker fee burned per filled volume.
	BurnFeeBps int64

	// MinOrderSizeUsd floors new orders; converted to wei through the
	// oracle on every check.
	MinOrderSizeUsd int64

	// MaxOrdersPerTrade bounds how many orders one quote or trade may
	// touch.
	MaxOrdersPerTrade int

	Rates  ledger.RateSource
	Oracle PriceOracle
	Vault  Vault
}

// Reserve is the settlement engine for one token/ETH pair.
type Reserve struct {
	mu sync.RWMutex

	cfg Config

	tokenToEth *book.List
	ethToToken *book.List

	// Per maker, per direction id allocators. Ranges are claimed from
	// the owning list on the maker's first KNC deposit.
	idsTokenToEth map[book.Address]*book.IDManager
	idsEthToToken map[book.Address]*book.IDManager

	ledger *ledger.Ledger
}

func New(cfg Config) (*Reserve, error) {
	if cfg.Network == "" || cfg.Rates == nil || cfg.Oracle == nil || cfg.Vault == nil {
		return nil, ErrBadConfig
	}
	if cfg.MinOrderSizeUsd <= 0 || cfg.MaxOrdersPerTrade <= 0 {
		return nil, ErrBadConfig
	}
	led, err := ledger.New(cfg.BurnFeeBps, cfg.Rates)
	if err != nil {
		return nil, err
	}

	pool := memory.NewPool(func() *book.Order { return &book.Order{} })
	r := &Reserve{
		cfg:           cfg,
		tokenToEth:    book.NewList(pool),
		ethToToken:    book.NewList(pool),
		idsTokenToEth: make(map[book.Address]*book.IDManager),
		idsEthToToken: make(map[book.Address]*book.IDManager),
		ledger:        led,
	}

	// The reserve refuses to start on a broken price feed.
	if _, err := r.minNewOrderWei(); err != nil {
		return nil, err
	}
	return r, nil
}

// ---------------- direction plumbing ----------------

func (r *Reserve) list(dir Direction) *book.List {
	if dir == TokenToEth {
		return r.tokenToEth
	}
	return r.ethToToken
}

func (r *Reserve) ids(dir Direction) map[book.Address]*book.IDManager {
	if dir == TokenToEth {
		return r.idsTokenToEth
	}
	return r.idsEthToToken
}

// makerGives is the asset backing a maker's order in this direction.
func makerGives(dir Direction) ledger.Asset {
	if dir == TokenToEth {
		return ledger.AssetToken
	}
	return ledger.AssetEth
}

// makerWants is the asset the maker receives on a fill.
func makerWants(dir Direction) ledger.Asset {
	if dir == TokenToEth {
		return ledger.AssetEth
	}
	return ledger.AssetToken
}

// orderWei is the ETH-leg volume of an order, the canonical unit for
// stake accounting.
func orderWei(dir Direction, src, dst *big.Int) *big.Int {
	if dir == TokenToEth {
		return dst
	}
	return src
}

// ---------------- limits ----------------

// minNewOrderWei derives the live minimum new-order ETH volume from
// the oracle: minUsd * Precision^2 / usdPerEth, floored.
func (r *Reserve) minNewOrderWei() (*big.Int, error) {
	px, ok := r.cfg.Oracle.UsdPerEth()
	if !ok || px == nil {
		return nil, ErrOraclePrice
	}
	if px.Cmp(usdPerEthFloor) <= 0 || px.Cmp(usdPerEthCeil) >= 0 {
		return nil, ErrOraclePrice
	}
	usd := new(big.Int).Mul(big.NewInt(r.cfg.MinOrderSizeUsd), numeric.Precision)
	return numeric.MulDiv(usd, numeric.Precision, px), nil
}

// Limits reports the live order size limits. A partially filled order
// may rest down to half the new-order minimum before it is swept.
type Limits struct {
	MinOrderSizeUsd    int64
	MaxOrdersPerTrade  int
	MinNewOrderWei     *big.Int
	MinRestingOrderWei *big.Int
}

func (r *Reserve) Limits() (Limits, error) {
	minNew, err := r.minNewOrderWei()
	if err != nil {
		return Limits{}, err
	}
	return Limits{
		MinOrderSizeUsd:    r.cfg.MinOrderSizeUsd,
		MaxOrdersPerTrade:  r.cfg.MaxOrdersPerTrade,
		MinNewOrderWei:     minNew,
		MinRestingOrderWei: new(big.Int).Rsh(minNew, 1),
	}, nil
}

// ---------------- getters ----------------

// GetOrder returns a copy of a live order.
func (r *Reserve) GetOrder(dir Direction, id uint32) (book.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, err := r.list(dir).Get(id)
	if err != nil {
		return book.Order{}, err
	}
	cp := *o
	cp.SrcAmount = new(big.Int).Set(o.SrcAmount)
	cp.DstAmount = new(big.Int).Set(o.DstAmount)
	return cp, nil
}

// OrderIDs returns the live order ids of a direction, best first.
func (r *Reserve) OrderIDs(dir Direction) []uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.list(dir).IDs()
}

// MakerFunds returns a maker's free balance in an asset.
func (r *Reserve) MakerFunds(maker book.Address, asset ledger.Asset) *big.Int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.Funds(maker, asset)
}

// MakerUnlockedKnc returns the stake-adjusted free KNC.
func (r *Reserve) MakerUnlockedKnc(maker book.Address) *big.Int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.FreeKnc(maker)
}

// MakerRequiredStake returns the KNC currently locked against the
// maker's resting volume.
func (r *Reserve) MakerRequiredStake(maker book.Address) *big.Int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.RequiredStake(maker)
}

// CalcKncStake exposes the stake function for a wei volume.
func (r *Reserve) CalcKncStake(weiVolume *big.Int) *big.Int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.CalcKncStake(weiVolume)
}

// CalcBurnAmount exposes the burn function for a wei volume.
func (r *Reserve) CalcBurnAmount(weiVolume *big.Int) *big.Int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.CalcBurnAmount(weiVolume)
}
