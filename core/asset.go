package core

import (
	"context"

	"github.com/holiman/uint256"
)

// Asset identity of a collateral kind, e.g. "WETH"
type Asset string

// String asset symbol
func (a Asset) String() string {
	return string(a)
}

// Token a fungible asset the engine moves on behalf of users.
//
// A Token value is bound to its caller: Transfer spends the caller's own
// balance and TransferFrom spends an allowance granted to the caller. Some
// implementations signal failure by returning false instead of an error;
// callers must treat both the same way.
//
// An implementation that calls back into the engine must pass on the ctx it
// was given: the engine rejects re-entry with ErrReentrantCall only when it
// finds its own marker in ctx, a callback made with a fresh context blocks on
// the engine lock.
type Token interface {
	Asset() Asset
	Transfer(ctx context.Context, to string, amount *uint256.Int) (bool, error)
	TransferFrom(ctx context.Context, from, to string, amount *uint256.Int) (bool, error)
	BalanceOf(ctx context.Context, owner string) (*uint256.Int, error)
}

// DebtToken the USD pegged token minted against collateral.
//
// Only the minter may call Mint and Burn. Burn destroys tokens held by the
// caller itself, so the engine first pulls tokens from the paying party.
type DebtToken interface {
	Token
	Mint(ctx context.Context, to string, amount *uint256.Int) (bool, error)
	Burn(ctx context.Context, amount *uint256.Int) error
	TotalSupply(ctx context.Context) (*uint256.Int, error)
}
