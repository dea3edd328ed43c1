package engine

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"dsc/core"
	"dsc/pkg/dsc"
	"dsc/pkg/id"
	"dsc/pkg/metrics"
	"dsc/service/oracle"
	"dsc/store/ledger"

	"github.com/holiman/uint256"
)

type (
	options struct {
		events  core.EventStore
		metrics *metrics.EngineMetrics
		oracle  []oracle.Option
	}

	// Option engine option
	Option func(o *options)
)

// WithEventStore persist committed events to store
func WithEventStore(store core.EventStore) Option {
	return func(o *options) {
		o.events = store
	}
}

// WithPriceTimeout override the price freshness window
func WithPriceTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.oracle = append(o.oracle, oracle.WithTimeout(timeout))
	}
}

// WithClock override time.Now used by price freshness checks
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.oracle = append(o.oracle, oracle.WithClock(now))
	}
}

// WithMetrics count operations
func WithMetrics(m *metrics.EngineMetrics) Option {
	return func(o *options) {
		o.metrics = m
		o.oracle = append(o.oracle, oracle.WithMetrics(m))
	}
}

// Engine collateral ledger, debt accounting and liquidations
type Engine struct {
	address string

	mux     sync.RWMutex
	ledger  *ledger.Ledger
	oracle  *oracle.Oracle
	tokens  map[core.Asset]core.Token
	debt    core.DebtToken
	events  core.EventStore
	metrics *metrics.EngineMetrics
}

// New new engine living at address
//
// tokens[i] is priced by sources[i]; every token and the debt token must be
// handles bound to address.
func New(address string, tokens []core.Token, sources []core.PriceSource, debt core.DebtToken, opts ...Option) (*Engine, error) {
	if len(tokens) != len(sources) {
		return nil, core.ErrLengthMismatch
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	assets := make([]core.Asset, 0, len(tokens))
	byAsset := make(map[core.Asset]core.Token, len(tokens))
	for _, token := range tokens {
		if token == nil {
			return nil, core.ErrNotAllowedToken
		}

		assets = append(assets, token.Asset())
		byAsset[token.Asset()] = token
	}

	prices, err := oracle.New(assets, sources, o.oracle...)
	if err != nil {
		return nil, err
	}

	return &Engine{
		address: address,
		ledger:  ledger.New(),
		oracle:  prices,
		tokens:  byAsset,
		debt:    debt,
		events:  o.events,
		metrics: o.metrics,
	}, nil
}

// Address account the engine holds collateral and burns debt tokens from
func (e *Engine) Address() string {
	return e.address
}

// DebtToken debt token handle
func (e *Engine) DebtToken() core.DebtToken {
	return e.debt
}

// CollateralTokens registered assets in registration order
func (e *Engine) CollateralTokens() []core.Asset {
	return e.oracle.Assets()
}

// PriceFeed price source of asset
func (e *Engine) PriceFeed(asset core.Asset) (core.PriceSource, error) {
	src, ok := e.oracle.Source(asset)
	if !ok {
		return nil, core.ErrNotAllowedToken
	}

	return src, nil
}

// PriceTimeout price freshness window
func (e *Engine) PriceTimeout() time.Duration {
	return e.oracle.Timeout()
}

// LiquidationBonus percent
func (e *Engine) LiquidationBonus() uint64 {
	return dsc.LiquidationBonus
}

// LiquidationThreshold percent
func (e *Engine) LiquidationThreshold() uint64 {
	return dsc.LiquidationThreshold
}

// LiquidationPrecision denominator of the percent constants
func (e *Engine) LiquidationPrecision() uint64 {
	return dsc.LiquidationPrecision
}

// Precision fixed-point precision
func (e *Engine) Precision() *uint256.Int {
	return dsc.Precision()
}

// MinHealthFactor minimum healthy factor
func (e *Engine) MinHealthFactor() *uint256.Int {
	return dsc.MinHealthFactor()
}

// Fingerprint stable id of the registered asset and price source pairs
func (e *Engine) Fingerprint() string {
	assets := e.oracle.Assets()
	parts := make([]string, 0, len(assets))
	for _, asset := range assets {
		src, _ := e.oracle.Source(asset)
		parts = append(parts, asset.String()+"@"+src.Description()+"/"+strconv.Itoa(int(src.Decimals())))
	}

	sort.Strings(parts)
	return id.UUIDFromString(strings.Join(parts, ","))
}

func (e *Engine) token(asset core.Asset) (core.Token, error) {
	token, ok := e.tokens[asset]
	if !ok {
		return nil, core.ErrNotAllowedToken
	}

	return token, nil
}

// compile time check
var _ core.EngineService = (*Engine)(nil)
