package dsc

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ether(v uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(v), precision)
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "1000000000000000000", Precision().Dec())
	assert.Equal(t, "1000000000000000000", MinHealthFactor().Dec())
	assert.Equal(t, "10000000000", AdditionalFeedPrecision().Dec())
	assert.True(t, MaxHealthFactor().Eq(new(uint256.Int).SetAllOne()))

	// returned values are copies
	Precision().SetUint64(1)
	assert.Equal(t, "1000000000000000000", Precision().Dec())

	f, ok := FeedPrecision(18)
	assert.True(t, ok)
	assert.Equal(t, "1", f.Dec())

	_, ok = FeedPrecision(19)
	assert.False(t, ok)
}

func TestHealthFactor(t *testing.T) {
	t.Run("zero debt", func(t *testing.T) {
		assert.True(t, HealthFactor(ether(20000), new(uint256.Int)).Eq(MaxHealthFactor()))
		assert.True(t, HealthFactor(new(uint256.Int), nil).Eq(MaxHealthFactor()))
	})

	t.Run("exactly 200%", func(t *testing.T) {
		hf := HealthFactor(ether(20000), ether(10000))
		assert.Equal(t, MinHealthFactor().Dec(), hf.Dec())
		assert.True(t, IsHealthy(hf))
	})

	t.Run("one dollar short", func(t *testing.T) {
		hf := HealthFactor(ether(20000), ether(10001))
		assert.False(t, IsHealthy(hf))
	})

	t.Run("no collateral", func(t *testing.T) {
		assert.True(t, HealthFactor(new(uint256.Int), ether(1)).IsZero())
	})

	t.Run("half", func(t *testing.T) {
		// 10 eth at $900 against $9000
		assert.Equal(t, "500000000000000000", HealthFactor(ether(9000), ether(9000)).Dec())
	})

	t.Run("saturates", func(t *testing.T) {
		hf := HealthFactor(new(uint256.Int).SetAllOne(), uint256.NewInt(1))
		assert.True(t, hf.Eq(MaxHealthFactor()))
	})

	t.Run("monotonic", func(t *testing.T) {
		debt := ether(1000)
		prev := HealthFactor(ether(1), debt)
		for _, c := range []uint64{2, 10, 1000, 5000} {
			hf := HealthFactor(ether(c), debt)
			assert.False(t, hf.Lt(prev))
			prev = hf
		}
	})
}

func TestAdjustedCollateral(t *testing.T) {
	assert.Equal(t, ether(10000).Dec(), AdjustedCollateral(ether(20000)).Dec())
	assert.Equal(t, "0", AdjustedCollateral(uint256.NewInt(1)).Dec())

	max := new(uint256.Int).SetAllOne()
	assert.True(t, AdjustedCollateral(max).Lt(max))
}

func TestLiquidationBonusFor(t *testing.T) {
	assert.Equal(t, ether(1).Dec(), LiquidationBonusFor(ether(10)).Dec())
	assert.Equal(t, "0", LiquidationBonusFor(uint256.NewInt(9)).Dec())

	// amount*10 does not fit in 256 bits, the bonus must not wrap
	max := new(uint256.Int).SetAllOne()
	want := new(uint256.Int).Div(max, uint256.NewInt(10))
	assert.Equal(t, want.Dec(), LiquidationBonusFor(max).Dec())
}

func TestScaleFeedAnswer(t *testing.T) {
	v, ok := ScaleFeedAnswer(big.NewInt(2000e8), 8)
	require.True(t, ok)
	assert.Equal(t, ether(2000).Dec(), v.Dec())

	v, ok = ScaleFeedAnswer(big.NewInt(7), 18)
	require.True(t, ok)
	assert.Equal(t, "7", v.Dec())

	_, ok = ScaleFeedAnswer(big.NewInt(0), 8)
	assert.False(t, ok)

	_, ok = ScaleFeedAnswer(big.NewInt(-1), 8)
	assert.False(t, ok)

	_, ok = ScaleFeedAnswer(big.NewInt(1), 19)
	assert.False(t, ok)

	_, ok = ScaleFeedAnswer(new(big.Int).Lsh(big.NewInt(1), 256), 18)
	assert.False(t, ok)
}

func TestUSDValue(t *testing.T) {
	price := ether(2000)

	v, ok := USDValue(price, ether(15))
	require.True(t, ok)
	assert.Equal(t, ether(30000).Dec(), v.Dec())

	v, ok = USDValue(price, new(uint256.Int))
	require.True(t, ok)
	assert.True(t, v.IsZero())

	// rounds down
	v, ok = USDValue(uint256.NewInt(3), uint256.NewInt(1))
	require.True(t, ok)
	assert.True(t, v.IsZero())

	_, ok = USDValue(new(uint256.Int).SetAllOne(), new(uint256.Int).SetAllOne())
	assert.False(t, ok)
}

func TestAmountFromUSD(t *testing.T) {
	price := ether(2000)

	v, ok := AmountFromUSD(price, ether(100))
	require.True(t, ok)
	assert.Equal(t, "50000000000000000", v.Dec())

	v, ok = AmountFromUSD(price, new(uint256.Int))
	require.True(t, ok)
	assert.True(t, v.IsZero())

	_, ok = AmountFromUSD(new(uint256.Int), ether(1))
	assert.False(t, ok)

	// round trip never gains value
	amount := uint256.MustFromDecimal("1234567890123456789")
	usd, _ := USDValue(ether(1700), amount)
	back, _ := AmountFromUSD(ether(1700), usd)
	assert.False(t, back.Gt(amount))
}
