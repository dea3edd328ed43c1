package feed

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"dsc/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	m := NewMock("ETH / USD", 8, nil)
	m.SetClock(func() time.Time { return now })
	assert.Equal(t, uint8(8), m.Decimals())
	assert.Equal(t, "ETH / USD", m.Description())

	_, err := m.LatestRound(ctx)
	assert.ErrorIs(t, err, ErrNoRound)

	m.UpdateAnswer(big.NewInt(2000e8))
	round, err := m.LatestRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), round.RoundID)
	assert.Equal(t, int64(2000e8), round.Answer.Int64())
	assert.Equal(t, now, round.UpdatedAt)

	// callers can not mutate the stored answer
	round.Answer.SetInt64(1)
	m.SetRound(big.NewInt(1700e8), now.Add(-time.Hour))
	round, err = m.LatestRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), round.RoundID)
	assert.Equal(t, int64(1700e8), round.Answer.Int64())

	boom := errors.New("boom")
	m.SetError(boom)
	_, err = m.LatestRound(ctx)
	assert.ErrorIs(t, err, boom)
}

type countingSource struct {
	core.PriceSource
	calls int32
}

func (s *countingSource) LatestRound(ctx context.Context) (*core.Round, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.PriceSource.LatestRound(ctx)
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	mock := NewMock("BTC / USD", 8, big.NewInt(30000e8))
	src := &countingSource{PriceSource: mock}

	// a source that cannot announce new rounds is never cached
	assert.Equal(t, core.PriceSource(src), Cache(src, time.Hour))
	assert.Equal(t, core.PriceSource(mock), Cache(mock, 0))

	cached := Cache(mock, time.Hour)
	assert.Equal(t, uint8(8), cached.Decimals())

	for i := 0; i < 3; i++ {
		round, err := cached.LatestRound(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(30000e8), round.Answer.Int64())
	}

	// a new round replaces the cached one right away
	mock.UpdateAnswer(big.NewInt(1e8))
	round, err := cached.LatestRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1e8), round.Answer.Int64())
	assert.Equal(t, uint64(2), round.RoundID)

	mock.SetError(errors.New("feed down"))
	_, err = cached.LatestRound(ctx)
	assert.Error(t, err)

	mock.SetError(nil)
	round, err = cached.LatestRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1e8), round.Answer.Int64())
}

func TestCacheSharesUpstreamCalls(t *testing.T) {
	ctx := context.Background()
	mock := NewMock("BTC / USD", 8, big.NewInt(30000e8))
	src := &notifyingCounter{countingSource: countingSource{PriceSource: mock}, mock: mock}

	cached := Cache(src, time.Hour)
	for i := 0; i < 3; i++ {
		_, err := cached.LatestRound(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))

	mock.UpdateAnswer(big.NewInt(2e8))
	round, err := cached.LatestRound(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2e8), round.Answer.Int64())
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

type notifyingCounter struct {
	countingSource
	mock *Mock
}

func (s *notifyingCounter) OnUpdate(fn func()) {
	s.mock.OnUpdate(fn)
}

func TestCacheError(t *testing.T) {
	mock := NewMock("BTC / USD", 8, nil)
	cached := Cache(mock, time.Hour)

	_, err := cached.LatestRound(context.Background())
	assert.ErrorIs(t, err, ErrNoRound)

	mock.UpdateAnswer(big.NewInt(5))
	round, err := cached.LatestRound(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), round.Answer.Int64())
}
