package engine

import (
	"context"

	"dsc/core"
	"dsc/pkg/dsc"

	"github.com/holiman/uint256"
)

func amountField(amount *uint256.Int) string {
	if amount == nil {
		return ""
	}

	return amount.Dec()
}

func requirePositive(amounts ...*uint256.Int) error {
	for _, amount := range amounts {
		if amount == nil || amount.IsZero() {
			return core.ErrAmountMustBeMoreThanZero
		}
	}

	return nil
}

// DepositCollateral lock amount of asset owned by user in the engine
//
// user must have approved the engine to move amount of asset.
func (e *Engine) DepositCollateral(ctx context.Context, user string, asset core.Asset, amount *uint256.Int) error {
	fields := operationFields{Operation: "deposit_collateral", User: user, Asset: asset.String(), Amount: amountField(amount)}
	return e.run(ctx, fields, func(u *unit) error {
		return u.depositCollateral(user, asset, amount)
	})
}

// RedeemCollateral withdraw amount of asset back to user, health factor must stay above the minimum
func (e *Engine) RedeemCollateral(ctx context.Context, user string, asset core.Asset, amount *uint256.Int) error {
	fields := operationFields{Operation: "redeem_collateral", User: user, Asset: asset.String(), Amount: amountField(amount)}
	return e.run(ctx, fields, func(u *unit) error {
		if err := requirePositive(amount); err != nil {
			return err
		}

		if err := u.withdrawCollateral(user, asset, amount); err != nil {
			return err
		}

		if err := u.requireHealthy(user); err != nil {
			return err
		}

		return u.sendCollateral(user, user, asset, amount)
	})
}

// MintDebt mint amount of debt tokens to user against the deposited collateral
func (e *Engine) MintDebt(ctx context.Context, user string, amount *uint256.Int) error {
	fields := operationFields{Operation: "mint_debt", User: user, Debt: amountField(amount)}
	return e.run(ctx, fields, func(u *unit) error {
		return u.mintDebt(user, amount)
	})
}

// BurnDebt repay amount of user's debt with debt tokens held by user
//
// user must have approved the engine to move amount of the debt token.
func (e *Engine) BurnDebt(ctx context.Context, user string, amount *uint256.Int) error {
	fields := operationFields{Operation: "burn_debt", User: user, Debt: amountField(amount)}
	return e.run(ctx, fields, func(u *unit) error {
		if err := requirePositive(amount); err != nil {
			return err
		}

		return u.burnDebt(user, user, amount)
	})
}

// DepositCollateralAndMintDebt deposit collateral and mint debt in one step
func (e *Engine) DepositCollateralAndMintDebt(ctx context.Context, user string, asset core.Asset, amountCollateral, amountDebt *uint256.Int) error {
	fields := operationFields{
		Operation: "deposit_collateral_and_mint_debt",
		User:      user,
		Asset:     asset.String(),
		Amount:    amountField(amountCollateral),
		Debt:      amountField(amountDebt),
	}

	return e.run(ctx, fields, func(u *unit) error {
		if err := requirePositive(amountCollateral, amountDebt); err != nil {
			return err
		}

		if err := u.depositCollateral(user, asset, amountCollateral); err != nil {
			return err
		}

		return u.mintDebt(user, amountDebt)
	})
}

// RedeemCollateralForDebt burn debt and withdraw collateral in one step
func (e *Engine) RedeemCollateralForDebt(ctx context.Context, user string, asset core.Asset, amountCollateral, amountDebt *uint256.Int) error {
	fields := operationFields{
		Operation: "redeem_collateral_for_debt",
		User:      user,
		Asset:     asset.String(),
		Amount:    amountField(amountCollateral),
		Debt:      amountField(amountDebt),
	}

	return e.run(ctx, fields, func(u *unit) error {
		if err := requirePositive(amountCollateral, amountDebt); err != nil {
			return err
		}

		if _, err := u.engine.token(asset); err != nil {
			return err
		}

		if err := u.burnDebt(user, user, amountDebt); err != nil {
			return err
		}

		if err := u.withdrawCollateral(user, asset, amountCollateral); err != nil {
			return err
		}

		if err := u.requireHealthy(user); err != nil {
			return err
		}

		return u.sendCollateral(user, user, asset, amountCollateral)
	})
}

// depositCollateral credit the ledger first, then pull the tokens in
func (u *unit) depositCollateral(user string, asset core.Asset, amount *uint256.Int) error {
	if err := requirePositive(amount); err != nil {
		return err
	}

	token, err := u.engine.token(asset)
	if err != nil {
		return err
	}

	if err := u.engine.ledger.AddCollateral(user, asset, amount); err != nil {
		return err
	}

	ok, err := token.TransferFrom(u.ctx, user, u.engine.address, amount)
	if err := u.transferred("collateral.TransferFrom", ok, err); err != nil {
		return err
	}

	u.onRollback("refund_collateral", func(ctx context.Context) error {
		ok, err := token.Transfer(ctx, user, amount)
		return u.transferred("collateral.Transfer", ok, err)
	})

	u.emit(core.EventCollateralDeposited, user, u.engine.address, asset, amount, nil)
	return nil
}

// withdrawCollateral debit the ledger, the caller checks health and moves the tokens
func (u *unit) withdrawCollateral(user string, asset core.Asset, amount *uint256.Int) error {
	if _, err := u.engine.token(asset); err != nil {
		return err
	}

	return u.engine.ledger.SubCollateral(user, asset, amount)
}

// sendCollateral move collateral out of the engine, never compensated so it runs last
func (u *unit) sendCollateral(from, to string, asset core.Asset, amount *uint256.Int) error {
	token, err := u.engine.token(asset)
	if err != nil {
		return err
	}

	ok, err := token.Transfer(u.ctx, to, amount)
	if err := u.transferred("collateral.Transfer", ok, err); err != nil {
		return err
	}

	u.emit(core.EventCollateralRedeemed, from, to, asset, amount, nil)
	return nil
}

// mintDebt record the debt, check health, then mint as the final effect
func (u *unit) mintDebt(user string, amount *uint256.Int) error {
	if err := requirePositive(amount); err != nil {
		return err
	}

	if err := u.engine.ledger.AddDebt(user, amount); err != nil {
		return err
	}

	if err := u.requireHealthy(user); err != nil {
		return err
	}

	minted, err := u.engine.debt.Mint(u.ctx, user, amount)
	if err != nil || !minted {
		if err != nil {
			u.log.WithError(err).Errorln("engine: debt.Mint")
		}

		return core.ErrMintFailed
	}

	u.emit(core.EventDebtMinted, u.engine.address, user, u.engine.debt.Asset(), amount, nil)
	return nil
}

// burnDebt repay onBehalfOf's debt with debt tokens pulled from payer
func (u *unit) burnDebt(onBehalfOf, payer string, amount *uint256.Int) error {
	if err := u.engine.ledger.SubDebt(onBehalfOf, amount); err != nil {
		return err
	}

	return u.burnPulled(onBehalfOf, payer, amount)
}

// burnPulled pull amount of debt tokens from payer and burn them
func (u *unit) burnPulled(onBehalfOf, payer string, amount *uint256.Int) error {
	debt := u.engine.debt
	ok, err := debt.TransferFrom(u.ctx, payer, u.engine.address, amount)
	if err := u.transferred("debt.TransferFrom", ok, err); err != nil {
		return err
	}

	if err := debt.Burn(u.ctx, amount); err != nil {
		u.log.WithError(err).Errorln("engine: debt.Burn")
		ok, err := debt.Transfer(u.ctx, payer, amount)
		if err := u.transferred("debt.Transfer", ok, err); err != nil {
			u.log.WithError(err).Errorln("engine: return unburned debt tokens")
		}

		return core.ErrTransferFailed
	}

	u.onRollback("remint_burned_debt", func(ctx context.Context) error {
		minted, err := debt.Mint(ctx, payer, amount)
		if err != nil {
			return err
		}

		if !minted {
			return core.ErrMintFailed
		}

		return nil
	})

	extra := core.NewEventExtra()
	extra.Put(core.EventKeyPayer, payer)
	u.emit(core.EventDebtBurned, onBehalfOf, u.engine.address, debt.Asset(), amount, extra)
	return nil
}

// requireHealthy fail BreaksHealthFactor when user's health factor is below the minimum
func (u *unit) requireHealthy(user string) error {
	hf, err := u.engine.healthFactor(u.ctx, user)
	if err != nil {
		return err
	}

	if !dsc.IsHealthy(hf) {
		return &core.HealthFactorError{Code: core.ErrBreaksHealthFactor, User: user, Factor: hf}
	}

	return nil
}

// transferred treat a false result like an error
func (u *unit) transferred(call string, ok bool, err error) error {
	if err != nil {
		u.log.WithError(err).Errorln("engine: " + call)
		return core.ErrTransferFailed
	}

	if !ok {
		u.log.Errorln("engine: " + call + " returned false")
		return core.ErrTransferFailed
	}

	return nil
}
