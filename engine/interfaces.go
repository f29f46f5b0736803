package engine

import (
	"math/big"

	"makerbook/domain/book"
	"makerbook/domain/ledger"
)

// PriceOracle supplies the USD per ETH price in Precision fixed point,
// medianizer style. ok=false means the feed is currently invalid; the
// price is also sanity checked before use.
type PriceOracle interface {
	UsdPerEth() (price *big.Int, ok bool)
}

// Vault moves assets between external accounts and the reserve. A
// failing transfer aborts the whole operation that requested it; no
// partial credit ever survives.
type Vault interface {
	TransferIn(asset ledger.Asset, from book.Address, amount *big.Int) error
	TransferOut(asset ledger.Asset, to book.Address, amount *big.Int) error
}
