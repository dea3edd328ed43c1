package engine

import (
	"context"

	"dsc/core"
	"dsc/pkg/dsc"

	"github.com/holiman/uint256"
)

// AccountInformation debt minted and collateral value of user
func (e *Engine) AccountInformation(ctx context.Context, user string) (*core.AccountInformation, error) {
	defer e.rlock(ctx)()

	value, err := e.collateralValue(ctx, user)
	if err != nil {
		return nil, err
	}

	return &core.AccountInformation{
		User:               user,
		DebtMinted:         e.ledger.Debt(user),
		CollateralValueUSD: value,
	}, nil
}

// AccountCollateralValue usd value of every deposit of user
func (e *Engine) AccountCollateralValue(ctx context.Context, user string) (*uint256.Int, error) {
	defer e.rlock(ctx)()

	return e.collateralValue(ctx, user)
}

// HealthFactor health factor of user
func (e *Engine) HealthFactor(ctx context.Context, user string) (*uint256.Int, error) {
	defer e.rlock(ctx)()

	return e.healthFactor(ctx, user)
}

// CalculateHealthFactor health factor of a collateral value and debt
func (e *Engine) CalculateHealthFactor(collateralValueUSD, debt *uint256.Int) *uint256.Int {
	return dsc.HealthFactor(collateralValueUSD, debt)
}

// USDValue usd value of amount of asset, rounded down
func (e *Engine) USDValue(ctx context.Context, asset core.Asset, amount *uint256.Int) (*uint256.Int, error) {
	return e.oracle.USDValue(ctx, asset, amount)
}

// TokenAmountFromUSD amount of asset worth usd, rounded down
func (e *Engine) TokenAmountFromUSD(ctx context.Context, asset core.Asset, usd *uint256.Int) (*uint256.Int, error) {
	return e.oracle.TokenAmountFromUSD(ctx, asset, usd)
}

// CollateralBalance deposit of asset by user
func (e *Engine) CollateralBalance(ctx context.Context, user string, asset core.Asset) (*uint256.Int, error) {
	if _, err := e.token(asset); err != nil {
		return nil, err
	}

	defer e.rlock(ctx)()
	return e.ledger.Collateral(user, asset), nil
}

// CollateralBalances deposit of every registered asset by user
func (e *Engine) CollateralBalances(ctx context.Context, user string) ([]*core.CollateralBalance, error) {
	defer e.rlock(ctx)()

	assets := e.oracle.Assets()
	balances := make([]*core.CollateralBalance, 0, len(assets))
	for _, asset := range assets {
		balances = append(balances, &core.CollateralBalance{
			Asset:  asset,
			Amount: e.ledger.Collateral(user, asset),
		})
	}

	return balances, nil
}

// Debt debt minted by user
func (e *Engine) Debt(ctx context.Context, user string) *uint256.Int {
	defer e.rlock(ctx)()

	return e.ledger.Debt(user)
}

// TotalDebt debt minted by every user
func (e *Engine) TotalDebt(ctx context.Context) *uint256.Int {
	defer e.rlock(ctx)()

	return e.ledger.TotalDebt()
}

// Users every account the engine has seen
func (e *Engine) Users(ctx context.Context) []string {
	defer e.rlock(ctx)()

	return e.ledger.Users()
}

// ReservesValue usd value of every collateral token held by the engine
func (e *Engine) ReservesValue(ctx context.Context) (*uint256.Int, error) {
	total := new(uint256.Int)
	for _, asset := range e.oracle.Assets() {
		balance, err := e.tokens[asset].BalanceOf(ctx, e.address)
		if err != nil {
			return nil, err
		}

		if balance.IsZero() {
			continue
		}

		value, err := e.oracle.USDValue(ctx, asset, balance)
		if err != nil {
			return nil, err
		}

		if _, overflow := total.AddOverflow(total, value); overflow {
			return nil, core.ErrAmountOverflow
		}
	}

	return total, nil
}

// collateralValue assets user holds nothing of are not priced
func (e *Engine) collateralValue(ctx context.Context, user string) (*uint256.Int, error) {
	total := new(uint256.Int)
	for _, asset := range e.oracle.Assets() {
		amount := e.ledger.Collateral(user, asset)
		if amount.IsZero() {
			continue
		}

		value, err := e.oracle.USDValue(ctx, asset, amount)
		if err != nil {
			return nil, err
		}

		if _, overflow := total.AddOverflow(total, value); overflow {
			return nil, core.ErrAmountOverflow
		}
	}

	return total, nil
}

func (e *Engine) healthFactor(ctx context.Context, user string) (*uint256.Int, error) {
	debt := e.ledger.Debt(user)
	if debt.IsZero() {
		return dsc.MaxHealthFactor(), nil
	}

	value, err := e.collateralValue(ctx, user)
	if err != nil {
		return nil, err
	}

	return dsc.HealthFactor(value, debt), nil
}
