package engine

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"dsc/core"
	"dsc/pkg/dsc"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries(t *testing.T) {
	env := newEnv(t)
	e := env.engine
	stranger := newUser()

	info, err := e.AccountInformation(env.ctx, stranger)
	require.NoError(t, err)
	assert.True(t, info.DebtMinted.IsZero())
	assert.True(t, info.CollateralValueUSD.IsZero())

	hf, err := e.HealthFactor(env.ctx, stranger)
	require.NoError(t, err)
	assert.True(t, hf.Eq(dsc.MaxHealthFactor()))

	v, err := e.USDValue(env.ctx, weth, ether(15))
	require.NoError(t, err)
	assert.Equal(t, ether(30000).Dec(), v.Dec())

	v, err = e.TokenAmountFromUSD(env.ctx, weth, ether(100))
	require.NoError(t, err)
	assert.Equal(t, "50000000000000000", v.Dec())

	v, err = e.USDValue(env.ctx, weth, new(uint256.Int))
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	assert.Equal(t, ether(1).Dec(), e.CalculateHealthFactor(ether(2000), ether(1000)).Dec())

	user := newUser()
	env.fund(user, env.weth, ether(2))
	env.fund(user, env.wbtc, ether(1))
	require.NoError(t, e.DepositCollateral(env.ctx, user, weth, ether(2)))
	require.NoError(t, e.DepositCollateral(env.ctx, user, wbtc, ether(1)))

	value, err := e.AccountCollateralValue(env.ctx, user)
	require.NoError(t, err)
	assert.Equal(t, ether(34000).Dec(), value.Dec())

	balances, err := e.CollateralBalances(env.ctx, user)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, weth, balances[0].Asset)
	assert.Equal(t, ether(2).Dec(), balances[0].Amount.Dec())
	assert.Equal(t, wbtc, balances[1].Asset)

	reserves, err := e.ReservesValue(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, ether(34000).Dec(), reserves.Dec())
}

func TestStalePrice(t *testing.T) {
	env := newEnv(t)
	e := env.engine
	user := newUser()
	env.fund(user, env.weth, ether(10))
	require.NoError(t, e.DepositCollateral(env.ctx, user, weth, ether(10)))

	// exactly at the window edge the round is still fresh
	env.ethFeed.SetRound(feedAnswer(2000), env.now.Add(-dsc.PriceTimeout))
	_, err := e.AccountCollateralValue(env.ctx, user)
	require.NoError(t, err)

	observed := env.now.Add(-dsc.PriceTimeout - time.Second)
	env.ethFeed.SetRound(feedAnswer(2000), observed)

	err = e.MintDebt(env.ctx, user, ether(100))
	assert.ErrorIs(t, err, core.ErrStalePrice)

	var priceErr *core.PriceError
	require.True(t, errors.As(err, &priceErr))
	assert.Equal(t, weth, priceErr.Asset)
	assert.Equal(t, observed, priceErr.ObservedAt)
	assert.True(t, e.Debt(env.ctx, user).IsZero())

	_, err = e.AccountCollateralValue(env.ctx, user)
	assert.ErrorIs(t, err, core.ErrStalePrice)

	_, err = e.USDValue(env.ctx, weth, ether(1))
	assert.ErrorIs(t, err, core.ErrStalePrice)

	// an account without debt does not need prices to withdraw
	require.NoError(t, e.RedeemCollateral(env.ctx, user, weth, ether(1)))

	// other assets are unaffected
	_, err = e.USDValue(env.ctx, wbtc, ether(1))
	require.NoError(t, err)

	env.ethFeed.SetRound(feedAnswer(2000), time.Time{})
	_, err = e.USDValue(env.ctx, weth, ether(1))
	assert.ErrorIs(t, err, core.ErrStalePrice)
}

func TestStalePriceBlocksLiquidation(t *testing.T) {
	env := newEnv(t)
	user := env.open(t, 10, 9000)
	liquidator := env.newLiquidator(t, 10000)

	env.ethFeed.SetRound(feedAnswer(900), env.now.Add(-4*time.Hour))
	err := env.engine.Liquidate(env.ctx, liquidator, weth, user, ether(1000))
	assert.ErrorIs(t, err, core.ErrStalePrice)
}

func TestInvalidPriceFeed(t *testing.T) {
	env := newEnv(t)

	env.ethFeed.UpdateAnswer(big.NewInt(0))
	_, err := env.engine.USDValue(env.ctx, weth, ether(1))
	assert.ErrorIs(t, err, core.ErrInvalidPriceFeed)

	env.ethFeed.UpdateAnswer(big.NewInt(-5))
	_, err = env.engine.USDValue(env.ctx, weth, ether(1))
	assert.ErrorIs(t, err, core.ErrInvalidPriceFeed)

	env.ethFeed.SetError(errors.New("feed offline"))
	_, err = env.engine.TokenAmountFromUSD(env.ctx, weth, ether(1))
	assert.ErrorIs(t, err, core.ErrInvalidPriceFeed)
}
