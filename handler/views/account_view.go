package views

import (
	"dsc/core"
	"dsc/pkg/dsc"
	"dsc/pkg/number"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Balance balance view
type Balance struct {
	Asset  core.Asset      `json:"asset"`
	Amount decimal.Decimal `json:"amount"`
}

// Account account view
type Account struct {
	User            string           `json:"user"`
	Debt            decimal.Decimal  `json:"debt"`
	CollateralValue decimal.Decimal  `json:"collateral_value"`
	HealthFactor    *decimal.Decimal `json:"health_factor,omitempty"`
	Liquidatable    bool             `json:"liquidatable"`
	Collaterals     []*Balance       `json:"collaterals"`
	Wallet          []*Balance       `json:"wallet,omitempty"`
}

// NewAccount account view, a nil health factor means no debt
func NewAccount(info *core.AccountInformation, hf *uint256.Int, collaterals, wallet []*core.CollateralBalance) *Account {
	view := &Account{
		User:            info.User,
		Debt:            number.FromFixed(info.DebtMinted),
		CollateralValue: number.FromFixed(info.CollateralValueUSD),
		Collaterals:     Balances(collaterals),
		Wallet:          Balances(wallet),
	}

	if hf != nil && !hf.Eq(dsc.MaxHealthFactor()) {
		v := number.FromFixed(hf)
		view.HealthFactor = &v
		view.Liquidatable = !dsc.IsHealthy(hf)
	}

	return view
}

// Balances balance views
func Balances(balances []*core.CollateralBalance) []*Balance {
	if balances == nil {
		return nil
	}

	views := make([]*Balance, 0, len(balances))
	for _, b := range balances {
		views = append(views, &Balance{
			Asset:  b.Asset,
			Amount: number.FromFixed(b.Amount),
		})
	}

	return views
}
