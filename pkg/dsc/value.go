package dsc

import (
	"math/big"

	"github.com/holiman/uint256"
)

// ScaleFeedAnswer rescale a positive feed answer with decimals to 1e18
func ScaleFeedAnswer(answer *big.Int, decimals uint8) (*uint256.Int, bool) {
	if answer == nil || answer.Sign() <= 0 {
		return nil, false
	}

	factor, ok := FeedPrecision(decimals)
	if !ok {
		return nil, false
	}

	v, overflow := uint256.FromBig(answer)
	if overflow {
		return nil, false
	}

	if _, overflow := v.MulOverflow(v, factor); overflow {
		return nil, false
	}

	return v, true
}

// USDValue price*amount/1e18, rounded down
func USDValue(price, amount *uint256.Int) (*uint256.Int, bool) {
	if amount.IsZero() {
		return new(uint256.Int), true
	}

	v, overflow := new(uint256.Int).MulDivOverflow(price, amount, precision)
	return v, !overflow
}

// AmountFromUSD usd*1e18/price, rounded down
func AmountFromUSD(price, usd *uint256.Int) (*uint256.Int, bool) {
	if usd.IsZero() {
		return new(uint256.Int), true
	}

	if price.IsZero() {
		return nil, false
	}

	v, overflow := new(uint256.Int).MulDivOverflow(usd, precision, price)
	return v, !overflow
}
