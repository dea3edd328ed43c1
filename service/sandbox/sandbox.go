package sandbox

import (
	"context"
	"fmt"
	"math/big"

	"dsc/core"
	"dsc/service/engine"
	"dsc/service/feed"
	"dsc/service/token"

	"github.com/holiman/uint256"
)

// Sandbox engine wired to in memory tokens and settable price sources
type Sandbox struct {
	*engine.Engine
	coin   *token.Stablecoin
	tokens map[core.Asset]*token.ERC20
	feeds  map[core.Asset]*feed.Mock
}

// New build a sandbox from cfg
func New(cfg *core.Config, opts ...engine.Option) (*Sandbox, error) {
	address := cfg.App.EngineAddress
	s := &Sandbox{
		coin:   token.NewStablecoin(core.Asset(cfg.DebtToken.Symbol), address),
		tokens: make(map[core.Asset]*token.ERC20, len(cfg.Collaterals)),
		feeds:  make(map[core.Asset]*feed.Mock, len(cfg.Collaterals)),
	}

	tokens := make([]core.Token, 0, len(cfg.Collaterals))
	sources := make([]core.PriceSource, 0, len(cfg.Collaterals))
	for _, c := range cfg.Collaterals {
		asset := core.Asset(c.Asset)

		var answer *big.Int
		if c.Price != "" {
			v, ok := new(big.Int).SetString(c.Price, 10)
			if !ok {
				return nil, fmt.Errorf("collateral %s: invalid price %q", c.Asset, c.Price)
			}

			answer = v
		}

		src := feed.NewMock(c.Description, c.FeedDecimals, answer)
		s.feeds[asset] = src
		sources = append(sources, feed.Cache(src, cfg.Oracle.CacheTTL.Std()))

		tok := token.New(asset)
		s.tokens[asset] = tok
		tokens = append(tokens, tok.As(address))
	}

	e, err := engine.New(address, tokens, sources, s.coin.As(address), opts...)
	if err != nil {
		return nil, err
	}

	s.Engine = e
	return s, nil
}

// Faucet give user amount of asset and approve the engine to spend it and user's debt tokens
func (s *Sandbox) Faucet(ctx context.Context, user string, asset core.Asset, amount *uint256.Int) error {
	tok, ok := s.tokens[asset]
	if !ok {
		return core.ErrNotAllowedToken
	}

	if amount == nil || amount.IsZero() {
		return core.ErrAmountMustBeMoreThanZero
	}

	unlimited := new(uint256.Int).SetAllOne()
	tok.Faucet(user, amount)
	tok.Approve(user, s.Address(), unlimited)
	s.coin.Approve(user, s.Address(), unlimited)
	return nil
}

// SetPrice start a new price round for asset, answer is in the feed decimals
func (s *Sandbox) SetPrice(ctx context.Context, asset core.Asset, answer *big.Int) error {
	src, ok := s.feeds[asset]
	if !ok {
		return core.ErrNotAllowedToken
	}

	if answer == nil || answer.Sign() <= 0 {
		return core.ErrAmountMustBeMoreThanZero
	}

	src.UpdateAnswer(answer)
	return nil
}

// Wallet token balances of user outside the engine
func (s *Sandbox) Wallet(ctx context.Context, user string) []*core.CollateralBalance {
	balances := make([]*core.CollateralBalance, 0, len(s.tokens)+1)
	for _, asset := range s.CollateralTokens() {
		balances = append(balances, &core.CollateralBalance{
			Asset:  asset,
			Amount: s.tokens[asset].Balance(user),
		})
	}

	balances = append(balances, &core.CollateralBalance{
		Asset:  s.coin.Asset(),
		Amount: s.coin.Balance(user),
	})

	return balances
}

var (
	_ core.EngineService  = (*Sandbox)(nil)
	_ core.SandboxService = (*Sandbox)(nil)
)
