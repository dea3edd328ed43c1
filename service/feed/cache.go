package feed

import (
	"context"
	"math/big"
	"strconv"
	"sync/atomic"
	"time"

	"dsc/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

const roundKey = "latest"

// Notifier price source announcing every new round
type Notifier interface {
	OnUpdate(fn func())
}

// Cache cache the latest round of src until src reports a new one or ttl passes,
// concurrent reads share one upstream call.
//
// Only sources implementing Notifier are cached, any other src is returned as is.
func Cache(src core.PriceSource, ttl time.Duration) core.PriceSource {
	n, ok := src.(Notifier)
	if !ok || ttl <= 0 {
		return src
	}

	s := &cacheSource{
		PriceSource: src,
		cache:       gcache.New(1).LRU().Expiration(ttl).Build(),
		sf:          &singleflight.Group{},
	}

	n.OnUpdate(s.purge)
	return s
}

type cacheSource struct {
	core.PriceSource
	cache gcache.Cache
	sf    *singleflight.Group
	// gen bumps on every upstream update, rounds fetched under an older gen are not cached
	gen uint64
}

func (s *cacheSource) purge() {
	atomic.AddUint64(&s.gen, 1)
	s.cache.Purge()
}

func (s *cacheSource) LatestRound(ctx context.Context) (*core.Round, error) {
	if v, err := s.cache.Get(roundKey); err == nil {
		if round, ok := v.(*core.Round); ok {
			return copyRound(round), nil
		}
	}

	gen := atomic.LoadUint64(&s.gen)
	v, err, _ := s.sf.Do(strconv.FormatUint(gen, 10), func() (interface{}, error) {
		round, err := s.PriceSource.LatestRound(ctx)
		if err != nil {
			return nil, err
		}

		if atomic.LoadUint64(&s.gen) == gen {
			_ = s.cache.Set(roundKey, round)
		}

		return round, nil
	})

	if err != nil {
		return nil, err
	}

	return copyRound(v.(*core.Round)), nil
}

func copyRound(r *core.Round) *core.Round {
	cp := *r
	if r.Answer != nil {
		cp.Answer = new(big.Int).Set(r.Answer)
	}

	return &cp
}
