package core

import (
	"github.com/holiman/uint256"
)

// AccountInformation debt and collateral value of a user
type AccountInformation struct {
	User               string       `json:"user"`
	DebtMinted         *uint256.Int `json:"debt_minted"`
	CollateralValueUSD *uint256.Int `json:"collateral_value_usd"`
}

// CollateralBalance deposited amount of one asset
type CollateralBalance struct {
	Asset  Asset        `json:"asset"`
	Amount *uint256.Int `json:"amount"`
}
