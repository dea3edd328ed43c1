package views

import (
	"dsc/core"

	"github.com/shopspring/decimal"
)

// Asset registered collateral view
type Asset struct {
	Asset      core.Asset       `json:"asset"`
	Feed       string           `json:"feed"`
	Decimals   uint8            `json:"decimals"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	PriceError string           `json:"price_error,omitempty"`
}

// Params engine constants view
type Params struct {
	EngineAddress        string          `json:"engine_address"`
	DebtToken            core.Asset      `json:"debt_token"`
	Assets               []core.Asset    `json:"assets"`
	Precision            string          `json:"precision"`
	MinHealthFactor      decimal.Decimal `json:"min_health_factor"`
	LiquidationThreshold uint64          `json:"liquidation_threshold"`
	LiquidationBonus     uint64          `json:"liquidation_bonus"`
}

// Conversion conversion result view
type Conversion struct {
	Asset  core.Asset      `json:"asset"`
	Amount decimal.Decimal `json:"amount"`
	USD    decimal.Decimal `json:"usd"`
}
