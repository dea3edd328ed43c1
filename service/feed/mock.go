package feed

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"dsc/core"
)

// ErrNoRound source never reported
var ErrNoRound = errors.New("feed: no round")

// Mock settable price source
type Mock struct {
	mux         sync.RWMutex
	description string
	decimals    uint8
	round       *core.Round
	err         error
	now         func() time.Time
	hooks       []func()
}

// NewMock new mock source answering answer, stamped now
func NewMock(description string, decimals uint8, answer *big.Int) *Mock {
	m := &Mock{
		description: description,
		decimals:    decimals,
		now:         time.Now,
	}

	if answer != nil {
		m.UpdateAnswer(answer)
	}

	return m
}

// Decimals implement core.PriceSource
func (m *Mock) Decimals() uint8 {
	return m.decimals
}

// Description implement core.PriceSource
func (m *Mock) Description() string {
	return m.description
}

// LatestRound implement core.PriceSource
func (m *Mock) LatestRound(ctx context.Context) (*core.Round, error) {
	m.mux.RLock()
	defer m.mux.RUnlock()

	if m.err != nil {
		return nil, m.err
	}

	if m.round == nil {
		return nil, ErrNoRound
	}

	round := *m.round
	round.Answer = new(big.Int).Set(m.round.Answer)
	return &round, nil
}

// UpdateAnswer start a new round with answer, stamped now
func (m *Mock) UpdateAnswer(answer *big.Int) {
	m.SetRound(answer, m.now())
}

// SetRound start a new round with answer observed at updatedAt
func (m *Mock) SetRound(answer *big.Int, updatedAt time.Time) {
	m.mux.Lock()
	var id uint64 = 1
	if m.round != nil {
		id = m.round.RoundID + 1
	}

	m.round = &core.Round{
		RoundID:   id,
		Answer:    new(big.Int).Set(answer),
		UpdatedAt: updatedAt,
	}
	hooks := m.hooks
	m.mux.Unlock()

	notify(hooks)
}

// SetError make LatestRound fail with err, nil to recover
func (m *Mock) SetError(err error) {
	m.mux.Lock()
	m.err = err
	hooks := m.hooks
	m.mux.Unlock()

	notify(hooks)
}

// OnUpdate implement Notifier, fn runs after every SetRound and SetError
func (m *Mock) OnUpdate(fn func()) {
	m.mux.Lock()
	defer m.mux.Unlock()

	m.hooks = append(m.hooks, fn)
}

func notify(hooks []func()) {
	for _, fn := range hooks {
		fn()
	}
}

// SetClock override time.Now used by UpdateAnswer
func (m *Mock) SetClock(now func() time.Time) {
	m.now = now
}
