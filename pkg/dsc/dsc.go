// Package dsc fixed-point arithmetic and solvency rules of the engine.
//
// Every amount, price, usd value and health factor is an unsigned 256-bit
// integer scaled by Precision.
package dsc

import (
	"time"

	"github.com/holiman/uint256"
)

const (
	// PrecisionDecimals decimals of every fixed-point value
	PrecisionDecimals = 18

	// LiquidationThreshold percent of collateral value counted toward solvency, 200% overcollateralized
	LiquidationThreshold = 50
	// LiquidationBonus percent of seized collateral paid to the liquidator
	LiquidationBonus = 10
	// LiquidationPrecision denominator of the percent constants
	LiquidationPrecision = 100

	// PriceTimeout freshness window of a price source round
	PriceTimeout = 3 * time.Hour
)

var (
	precision = uint256.NewInt(1e18)
	maxUint   = new(uint256.Int).SetAllOne()
)

// Precision 1e18
func Precision() *uint256.Int {
	return precision.Clone()
}

// MinHealthFactor 1e18
func MinHealthFactor() *uint256.Int {
	return precision.Clone()
}

// MaxHealthFactor health factor of an account without debt
func MaxHealthFactor() *uint256.Int {
	return maxUint.Clone()
}

// FeedPrecision 10^(18-decimals), rescaling a feed answer to 1e18
func FeedPrecision(decimals uint8) (*uint256.Int, bool) {
	if decimals > PrecisionDecimals {
		return nil, false
	}

	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(PrecisionDecimals-decimals))), true
}

// AdditionalFeedPrecision rescaling factor of an 8 decimals feed, 1e10
func AdditionalFeedPrecision() *uint256.Int {
	v, _ := FeedPrecision(8)
	return v
}
