package oracle

import (
	"context"
	"time"

	"dsc/core"
	"dsc/pkg/dsc"
	"dsc/pkg/logger"
	"dsc/pkg/metrics"

	"github.com/holiman/uint256"
)

type (
	// Option oracle option
	Option func(o *Oracle)

	// Oracle validated prices of the registered collateral assets
	Oracle struct {
		assets  []core.Asset
		sources map[core.Asset]core.PriceSource
		timeout time.Duration
		now     func() time.Time
		metrics *metrics.EngineMetrics
	}
)

// WithTimeout freshness window, rounds older than timeout are stale
func WithTimeout(timeout time.Duration) Option {
	return func(o *Oracle) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithClock override time.Now
func WithClock(now func() time.Time) Option {
	return func(o *Oracle) {
		if now != nil {
			o.now = now
		}
	}
}

// WithMetrics count price reads
func WithMetrics(m *metrics.EngineMetrics) Option {
	return func(o *Oracle) {
		o.metrics = m
	}
}

// New new oracle, assets[i] is priced by sources[i]
func New(assets []core.Asset, sources []core.PriceSource, opts ...Option) (*Oracle, error) {
	if len(assets) != len(sources) {
		return nil, core.ErrLengthMismatch
	}

	o := &Oracle{
		assets:  make([]core.Asset, 0, len(assets)),
		sources: make(map[core.Asset]core.PriceSource, len(assets)),
		timeout: dsc.PriceTimeout,
		now:     time.Now,
	}

	for idx, asset := range assets {
		if _, ok := o.sources[asset]; ok {
			return nil, core.ErrDuplicateAsset
		}

		if sources[idx] == nil {
			return nil, &core.PriceError{Code: core.ErrInvalidPriceFeed, Asset: asset, Reason: "nil source"}
		}

		o.assets = append(o.assets, asset)
		o.sources[asset] = sources[idx]
	}

	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// Assets registered assets in registration order
func (o *Oracle) Assets() []core.Asset {
	return append([]core.Asset(nil), o.assets...)
}

// Source price source of asset
func (o *Oracle) Source(asset core.Asset) (core.PriceSource, bool) {
	src, ok := o.sources[asset]
	return src, ok
}

// Timeout freshness window
func (o *Oracle) Timeout() time.Duration {
	return o.timeout
}

// Price latest fresh price of asset at 1e18 precision
func (o *Oracle) Price(ctx context.Context, asset core.Asset) (*core.PriceQuote, error) {
	quote, err := o.price(ctx, asset)
	if err != nil {
		o.metrics.RecordPriceRead(asset.String(), core.CodeOf(err).String())
		logger.FromContext(ctx).WithError(err).WithField("asset", asset).Debugln("oracle.Price")
		return nil, err
	}

	o.metrics.RecordPriceRead(asset.String(), metrics.ResultOK)
	return quote, nil
}

func (o *Oracle) price(ctx context.Context, asset core.Asset) (*core.PriceQuote, error) {
	src, ok := o.sources[asset]
	if !ok {
		return nil, core.ErrNotAllowedToken
	}

	round, err := src.LatestRound(ctx)
	if err != nil {
		return nil, &core.PriceError{Code: core.ErrInvalidPriceFeed, Asset: asset, Reason: err.Error()}
	}

	if round == nil {
		return nil, &core.PriceError{Code: core.ErrInvalidPriceFeed, Asset: asset, Reason: "empty round"}
	}

	if round.UpdatedAt.IsZero() {
		return nil, &core.PriceError{Code: core.ErrStalePrice, Asset: asset, Reason: "round never updated"}
	}

	// a round stamped in the future is clock skew and counts as fresh
	if o.now().Sub(round.UpdatedAt) > o.timeout {
		return nil, &core.PriceError{Code: core.ErrStalePrice, Asset: asset, ObservedAt: round.UpdatedAt}
	}

	price, ok := dsc.ScaleFeedAnswer(round.Answer, src.Decimals())
	if !ok {
		return nil, &core.PriceError{
			Code:       core.ErrInvalidPriceFeed,
			Asset:      asset,
			ObservedAt: round.UpdatedAt,
			Reason:     "answer must be positive with at most 18 decimals",
		}
	}

	return &core.PriceQuote{
		Asset:      asset,
		Price:      price,
		ObservedAt: round.UpdatedAt,
	}, nil
}

// USDValue usd value of amount of asset, rounded down
func (o *Oracle) USDValue(ctx context.Context, asset core.Asset, amount *uint256.Int) (*uint256.Int, error) {
	quote, err := o.Price(ctx, asset)
	if err != nil {
		return nil, err
	}

	v, ok := dsc.USDValue(quote.Price, amount)
	if !ok {
		return nil, core.ErrAmountOverflow
	}

	return v, nil
}

// TokenAmountFromUSD amount of asset worth usd, rounded down
func (o *Oracle) TokenAmountFromUSD(ctx context.Context, asset core.Asset, usd *uint256.Int) (*uint256.Int, error) {
	quote, err := o.Price(ctx, asset)
	if err != nil {
		return nil, err
	}

	v, ok := dsc.AmountFromUSD(quote.Price, usd)
	if !ok {
		return nil, core.ErrAmountOverflow
	}

	return v, nil
}
