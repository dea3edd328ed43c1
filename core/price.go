package core

import (
	"context"
	"math/big"
	"time"

	"github.com/holiman/uint256"
)

// Round the latest answer reported by a price source
type Round struct {
	RoundID   uint64    `json:"round_id"`
	Answer    *big.Int  `json:"answer"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PriceSource external price feed for one asset, quoted in USD
type PriceSource interface {
	// Decimals native precision of Answer
	Decimals() uint8
	Description() string
	LatestRound(ctx context.Context) (*Round, error)
}

// PriceQuote price scaled to the internal 1e18 precision
type PriceQuote struct {
	Asset      Asset        `json:"asset"`
	Price      *uint256.Int `json:"price"`
	ObservedAt time.Time    `json:"observed_at"`
}

// PriceOracle values collateral through the registered price sources
type PriceOracle interface {
	Assets() []Asset
	Source(asset Asset) (PriceSource, bool)
	Price(ctx context.Context, asset Asset) (*PriceQuote, error)
	USDValue(ctx context.Context, asset Asset, amount *uint256.Int) (*uint256.Int, error)
	TokenAmountFromUSD(ctx context.Context, asset Asset, usd *uint256.Int) (*uint256.Int, error)
}
