package service

import (
	"errors"
	"math/big"
)

// Journal payloads. Amounts travel as decimal strings so records stay
// exact at any magnitude. Maker operations that depend on the price
// feed or the fee-token rate carry the values that were live when the
// operation committed, so replay reproduces every size floor, stake
// check, and burn exactly even after a rate move.

type depositRecord struct {
	Maker  string `json:"maker"`
	Asset  int    `json:"asset"`
	Amount string `json:"amount"`
}

type withdrawRecord struct {
	Maker     string `json:"maker"`
	Asset     int    `json:"asset"`
	Amount    string `json:"amount"`
	KncPerEth string `json:"kncPerEth"`
}

type submitRecord struct {
	Maker     string `json:"maker"`
	Dir       int    `json:"dir"`
	Src       string `json:"src"`
	Dst       string `json:"dst"`
	Hint      uint32 `json:"hint"`
	UsdPerEth string `json:"usdPerEth"`
	KncPerEth string `json:"kncPerEth"`
}

type submitBatchRecord struct {
	Maker       string   `json:"maker"`
	Dir         int      `json:"dir"`
	Srcs        []string `json:"srcs"`
	Dsts        []string `json:"dsts"`
	Hints       []uint32 `json:"hints"`
	IsAfterPrev []bool   `json:"isAfterPrev"`
	UsdPerEth   string   `json:"usdPerEth"`
	KncPerEth   string   `json:"kncPerEth"`
}

type updateRecord struct {
	Maker     string `json:"maker"`
	Dir       int    `json:"dir"`
	OrderID   uint32 `json:"orderId"`
	Src       string `json:"src"`
	Dst       string `json:"dst"`
	Hint      uint32 `json:"hint"`
	UsdPerEth string `json:"usdPerEth"`
	KncPerEth string `json:"kncPerEth"`
}

type updateBatchRecord struct {
	Maker     string   `json:"maker"`
	Dir       int      `json:"dir"`
	OrderIDs  []uint32 `json:"orderIds"`
	Srcs      []string `json:"srcs"`
	Dsts      []string `json:"dsts"`
	Hints     []uint32 `json:"hints"`
	UsdPerEth string   `json:"usdPerEth"`
	KncPerEth string   `json:"kncPerEth"`
}

type cancelRecord struct {
	Maker   string `json:"maker"`
	Dir     int    `json:"dir"`
	OrderID uint32 `json:"orderId"`
}

type tradeRecord struct {
	Caller         string `json:"caller"`
	SrcAsset       int    `json:"srcAsset"`
	SrcAmount      string `json:"srcAmount"`
	DstAsset       int    `json:"dstAsset"`
	Recipient      string `json:"recipient"`
	ConversionRate string `json:"conversionRate"`
	Validate       bool   `json:"validate"`
	AttachedWei    string `json:"attachedWei"`
	UsdPerEth      string `json:"usdPerEth"`
	KncPerEth      string `json:"kncPerEth"`
}

var errBadRecordAmount = errors.New("service: bad amount in journal record")

func bigStr(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func parseBig(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errBadRecordAmount
	}
	return v, nil
}

func parseBigs(ss []string) ([]*big.Int, error) {
	out := make([]*big.Int, len(ss))
	for i, s := range ss {
		v, err := parseBig(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func bigStrs(vs []*big.Int) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = bigStr(v)
	}
	return out
}
