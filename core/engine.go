package core

import (
	"context"
	"math/big"

	"github.com/holiman/uint256"
)

// EngineService collateral and debt engine
type EngineService interface {
	Address() string

	DepositCollateral(ctx context.Context, user string, asset Asset, amount *uint256.Int) error
	RedeemCollateral(ctx context.Context, user string, asset Asset, amount *uint256.Int) error
	MintDebt(ctx context.Context, user string, amount *uint256.Int) error
	BurnDebt(ctx context.Context, user string, amount *uint256.Int) error
	DepositCollateralAndMintDebt(ctx context.Context, user string, asset Asset, amountCollateral, amountDebt *uint256.Int) error
	RedeemCollateralForDebt(ctx context.Context, user string, asset Asset, amountCollateral, amountDebt *uint256.Int) error
	Liquidate(ctx context.Context, liquidator string, asset Asset, user string, debtToCover *uint256.Int) error

	AccountInformation(ctx context.Context, user string) (*AccountInformation, error)
	AccountCollateralValue(ctx context.Context, user string) (*uint256.Int, error)
	HealthFactor(ctx context.Context, user string) (*uint256.Int, error)
	USDValue(ctx context.Context, asset Asset, amount *uint256.Int) (*uint256.Int, error)
	TokenAmountFromUSD(ctx context.Context, asset Asset, usd *uint256.Int) (*uint256.Int, error)
	CollateralBalance(ctx context.Context, user string, asset Asset) (*uint256.Int, error)
	CollateralBalances(ctx context.Context, user string) ([]*CollateralBalance, error)
	CollateralTokens() []Asset
	PriceFeed(asset Asset) (PriceSource, error)
	Users(ctx context.Context) []string
	DebtToken() DebtToken
	LiquidationBonus() uint64
	LiquidationThreshold() uint64
	Precision() *uint256.Int
	MinHealthFactor() *uint256.Int
}

// SandboxService faucet and price controls of a demo engine
type SandboxService interface {
	Faucet(ctx context.Context, user string, asset Asset, amount *uint256.Int) error
	// SetPrice answer is in the price source decimals
	SetPrice(ctx context.Context, asset Asset, answer *big.Int) error
	Wallet(ctx context.Context, user string) []*CollateralBalance
}
