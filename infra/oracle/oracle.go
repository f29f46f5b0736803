// Package oracle provides the two external price views the engine
// reads: a medianizer-style USD/ETH feed and the fee-burner's KNC/ETH
// base rate. Both accept human decimal inputs and store Precision
// fixed-point integers; updates take effect on the very next read.
package oracle

import (
	"errors"
	"math/big"
	"sync"

	"github.com/shopspring/decimal"
)

var ErrBadPrice = errors.New("oracle: unparseable or non-positive price")

// precisionDec is 10^18 as a decimal, for scaling parsed prices.
var precisionDec = decimal.NewFromBigInt(big.NewInt(1), 18)

// parsePrice converts a decimal string like "487.25" into a Precision
// fixed-point integer, truncating below 10^-18.
func parsePrice(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, ErrBadPrice
	}
	if d.Sign() <= 0 {
		return nil, ErrBadPrice
	}
	return d.Mul(precisionDec).Truncate(0).BigInt(), nil
}

// Medianizer is the USD/ETH feed. It can be marked invalid, which the
// engine treats the same as a broken price.
type Medianizer struct {
	mu    sync.RWMutex
	price *big.Int
	valid bool
}

// NewMedianizer parses the initial dollars-per-ETH price.
func NewMedianizer(usdPerEth string) (*Medianizer, error) {
	p, err := parsePrice(usdPerEth)
	if err != nil {
		return nil, err
	}
	return &Medianizer{price: p, valid: true}, nil
}

func (m *Medianizer) UsdPerEth() (*big.Int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.valid {
		return nil, false
	}
	return new(big.Int).Set(m.price), true
}

// SetPrice updates the feed from a decimal string.
func (m *Medianizer) SetPrice(usdPerEth string) error {
	p, err := parsePrice(usdPerEth)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.price = p
	m.mu.Unlock()
	return nil
}

// SetPriceWei pins the feed to an exact fixed-point value. Journal
// replay uses it to reproduce historical size floors bit for bit.
func (m *Medianizer) SetPriceWei(price *big.Int) {
	m.mu.Lock()
	m.price = new(big.Int).Set(price)
	m.valid = true
	m.mu.Unlock()
}

// SetValid flips feed validity.
func (m *Medianizer) SetValid(v bool) {
	m.mu.Lock()
	m.valid = v
	m.mu.Unlock()
}

// FeeBurner holds the KNC-per-ETH base rate the stake and burn math
// reads. Deliberately never cached by consumers: a rate update changes
// every maker's required stake on the next read.
type FeeBurner struct {
	mu   sync.RWMutex
	rate *big.Int
}

// NewFeeBurner parses the initial KNC-per-ETH rate.
func NewFeeBurner(kncPerEth string) (*FeeBurner, error) {
	r, err := parsePrice(kncPerEth)
	if err != nil {
		return nil, err
	}
	return &FeeBurner{rate: r}, nil
}

func (f *FeeBurner) KncPerEthRate() *big.Int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return new(big.Int).Set(f.rate)
}

// SetRate updates the base rate from a decimal string.
func (f *FeeBurner) SetRate(kncPerEth string) error {
	r, err := parsePrice(kncPerEth)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.rate = r
	f.mu.Unlock()
	return nil
}

// SetRateWei pins the base rate to an exact fixed-point value. Journal
// replay uses it to reproduce historical burns bit for bit.
func (f *FeeBurner) SetRateWei(rate *big.Int) {
	f.mu.Lock()
	f.rate = new(big.Int).Set(rate)
	f.mu.Unlock()
}
