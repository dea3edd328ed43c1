package dsc

import (
	"github.com/holiman/uint256"
)

// AdjustedCollateral collateral value counted toward solvency, collateralUSD*50/100
func AdjustedCollateral(collateralUSD *uint256.Int) *uint256.Int {
	// the quotient never exceeds collateralUSD
	v, _ := new(uint256.Int).MulDivOverflow(collateralUSD, uint256.NewInt(LiquidationThreshold), uint256.NewInt(LiquidationPrecision))
	return v
}

// HealthFactor ((collateralUSD*50)/100)*1e18/debt, max uint256 when debt is zero
//
// Intermediate products are computed on 512 bits, a quotient that does not
// fit in 256 bits saturates to max uint256.
func HealthFactor(collateralUSD, debt *uint256.Int) *uint256.Int {
	if debt == nil || debt.IsZero() {
		return MaxHealthFactor()
	}

	hf, overflow := new(uint256.Int).MulDivOverflow(AdjustedCollateral(collateralUSD), precision, debt)
	if overflow {
		return MaxHealthFactor()
	}

	return hf
}

// IsHealthy hf >= MinHealthFactor
func IsHealthy(hf *uint256.Int) bool {
	return !hf.Lt(precision)
}

// LiquidationBonusFor bonus collateral on top of a seized amount, amount*10/100
func LiquidationBonusFor(amount *uint256.Int) *uint256.Int {
	// the quotient never exceeds amount
	v, _ := new(uint256.Int).MulDivOverflow(amount, uint256.NewInt(LiquidationBonus), uint256.NewInt(LiquidationPrecision))
	return v
}
