package solvency

import (
	"context"
	"errors"
	"testing"
	"time"

	"dsc/pkg/metrics"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type engineStub struct {
	reserves *uint256.Int
	debt     *uint256.Int
	err      error
}

func (e *engineStub) TotalDebt(ctx context.Context) *uint256.Int {
	return e.debt
}

func (e *engineStub) ReservesValue(ctx context.Context) (*uint256.Int, error) {
	return e.reserves, e.err
}

func ether(v uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(v), uint256.NewInt(1e18))
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("covered", func(t *testing.T) {
		w := New(&engineStub{reserves: ether(20000), debt: ether(9000)}, metrics.Engine(), time.Minute)
		ok, err := w.check(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("short", func(t *testing.T) {
		w := New(&engineStub{reserves: ether(8000), debt: ether(9000)}, nil, time.Minute)
		ok, err := w.check(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("price error", func(t *testing.T) {
		stale := errors.New("stale price")
		w := New(&engineStub{err: stale, debt: ether(1)}, nil, time.Minute)
		ok, err := w.check(ctx)
		assert.ErrorIs(t, err, stale)
		assert.False(t, ok)
	})
}
