package token

import (
	"context"
	"errors"

	"dsc/core"

	"github.com/holiman/uint256"
)

// ErrNotMinter caller is not the minter
var ErrNotMinter = errors.New("token: caller is not the minter")

// Stablecoin debt token, only the minter mints and burns
type Stablecoin struct {
	*ERC20
	minter   string
	mintFail FailMode
}

// NewStablecoin new debt token owned by minter
func NewStablecoin(asset core.Asset, minter string) *Stablecoin {
	return &Stablecoin{
		ERC20:  New(asset),
		minter: minter,
	}
}

// Minter minter address
func (s *Stablecoin) Minter() string {
	return s.minter
}

// FailMint inject a failure into Mint
func (s *Stablecoin) FailMint(mode FailMode) {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.mintFail = mode
}

// As debt token handle bound to caller
func (s *Stablecoin) As(caller string) *StableHandle {
	return &StableHandle{
		Handle: s.ERC20.As(caller),
		coin:   s,
	}
}

// StableHandle implement core.DebtToken
type StableHandle struct {
	*Handle
	coin *Stablecoin
}

// Mint create amount for to, minter only
func (h *StableHandle) Mint(ctx context.Context, to string, amount *uint256.Int) (bool, error) {
	c := h.coin
	c.mux.Lock()
	defer c.mux.Unlock()

	if h.caller != c.minter {
		return false, ErrNotMinter
	}

	if ok, err := failure(c.mintFail); !ok {
		return false, err
	}

	if amount.IsZero() {
		return false, nil
	}

	c.credit(to, amount)
	c.totalSupply.Add(c.totalSupply, amount)
	return true, nil
}

// Burn destroy amount of the caller's own balance, minter only
func (h *StableHandle) Burn(ctx context.Context, amount *uint256.Int) error {
	c := h.coin
	c.mux.Lock()
	defer c.mux.Unlock()

	if h.caller != c.minter {
		return ErrNotMinter
	}

	if amount.IsZero() {
		return errors.New("token: burn amount must be more than zero")
	}

	return c.burn(h.caller, amount)
}

// TotalSupply implement core.DebtToken
func (h *StableHandle) TotalSupply(ctx context.Context) (*uint256.Int, error) {
	return h.coin.Supply(), nil
}
