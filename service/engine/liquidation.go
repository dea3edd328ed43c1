package engine

import (
	"context"

	"dsc/core"
	"dsc/pkg/dsc"

	"github.com/holiman/uint256"
)

// Liquidate repay debtToCover of an unhealthy user's debt and seize the
// equivalent amount of asset plus the liquidation bonus.
//
// The liquidator pays with its own debt tokens, which the engine pulls and
// burns; liquidator must have approved the engine for debtToCover. A seizure
// larger than user's deposit of asset fails ErrInsufficientCollateral.
func (e *Engine) Liquidate(ctx context.Context, liquidator string, asset core.Asset, user string, debtToCover *uint256.Int) error {
	fields := operationFields{Operation: "liquidate", User: user, Asset: asset.String(), Debt: amountField(debtToCover)}
	return e.run(ctx, fields, func(u *unit) error {
		u.log = u.log.WithField("liquidator", liquidator)
		return u.liquidate(liquidator, asset, user, debtToCover)
	})
}

func (u *unit) liquidate(liquidator string, asset core.Asset, user string, debtToCover *uint256.Int) error {
	if err := requirePositive(debtToCover); err != nil {
		return err
	}

	if _, err := u.engine.token(asset); err != nil {
		return err
	}

	before, err := u.engine.healthFactor(u.ctx, user)
	if err != nil {
		return err
	}

	if dsc.IsHealthy(before) {
		return &core.HealthFactorError{Code: core.ErrHealthFactorOk, User: user, Factor: before}
	}

	base, err := u.engine.oracle.TokenAmountFromUSD(u.ctx, asset, debtToCover)
	if err != nil {
		return err
	}

	bonus := dsc.LiquidationBonusFor(base)
	seized, overflow := new(uint256.Int).AddOverflow(base, bonus)
	if overflow {
		return core.ErrAmountOverflow
	}

	if err := u.engine.ledger.SubCollateral(user, asset, seized); err != nil {
		return err
	}

	if err := u.engine.ledger.SubDebt(user, debtToCover); err != nil {
		return err
	}

	after, err := u.engine.healthFactor(u.ctx, user)
	if err != nil {
		return err
	}

	if !after.Gt(before) {
		return &core.HealthFactorError{Code: core.ErrHealthFactorNotImproved, User: user, Factor: after}
	}

	if err := u.requireHealthy(liquidator); err != nil {
		return err
	}

	// ledger already reduced user's debt, only the token side is left
	if err := u.burnPulled(user, liquidator, debtToCover); err != nil {
		return err
	}

	if err := u.sendCollateral(user, liquidator, asset, seized); err != nil {
		return err
	}

	extra := core.NewEventExtra()
	extra.Put(core.EventKeyDebtCovered, debtToCover.Dec())
	extra.Put(core.EventKeyBonus, bonus.Dec())
	extra.Put(core.EventKeyHealthFactorBefore, before.Dec())
	extra.Put(core.EventKeyHealthFactorAfter, after.Dec())
	u.emit(core.EventLiquidated, user, liquidator, asset, seized, extra)

	u.engine.metrics.RecordLiquidation(asset.String())
	u.log.WithField("seized", seized.Dec()).Infoln("engine: liquidated")
	return nil
}
