package token

import (
	"context"
	"errors"
	"sync"

	"dsc/core"

	"github.com/holiman/uint256"
)

var (
	// ErrInsufficientBalance balance lower than the amount moved
	ErrInsufficientBalance = errors.New("token: insufficient balance")
	// ErrInsufficientAllowance allowance lower than the amount moved
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
	// ErrRejected injected failure
	ErrRejected = errors.New("token: rejected")
)

// FailMode injected failure of a token call
type FailMode int

const (
	// FailNone behave normally
	FailNone FailMode = iota
	// FailReturnFalse report failure with a false result
	FailReturnFalse
	// FailError report failure with ErrRejected
	FailError
)

// TransferHook called after every successful balance movement
type TransferHook func(ctx context.Context, from, to string, amount *uint256.Int)

// ERC20 in memory fungible token with allowances
type ERC20 struct {
	mux          sync.Mutex
	asset        core.Asset
	balances     map[string]*uint256.Int
	allowances   map[string]map[string]*uint256.Int
	totalSupply  *uint256.Int
	transferFail FailMode
	fromFail     FailMode
	hook         TransferHook
}

// New new token identified by asset
func New(asset core.Asset) *ERC20 {
	return &ERC20{
		asset:       asset,
		balances:    make(map[string]*uint256.Int),
		allowances:  make(map[string]map[string]*uint256.Int),
		totalSupply: new(uint256.Int),
	}
}

// Asset token identity
func (t *ERC20) Asset() core.Asset {
	return t.asset
}

// As handle bound to caller
func (t *ERC20) As(caller string) *Handle {
	return &Handle{token: t, caller: caller}
}

// Faucet create amount out of thin air for to
func (t *ERC20) Faucet(to string, amount *uint256.Int) {
	t.mux.Lock()
	defer t.mux.Unlock()

	t.credit(to, amount)
	t.totalSupply.Add(t.totalSupply, amount)
}

// Approve allow spender to move up to amount of owner's balance
func (t *ERC20) Approve(owner, spender string, amount *uint256.Int) {
	t.mux.Lock()
	defer t.mux.Unlock()

	if t.allowances[owner] == nil {
		t.allowances[owner] = make(map[string]*uint256.Int)
	}

	t.allowances[owner][spender] = amount.Clone()
}

// Allowance remaining allowance of spender over owner's balance
func (t *ERC20) Allowance(owner, spender string) *uint256.Int {
	t.mux.Lock()
	defer t.mux.Unlock()

	if v, ok := t.allowances[owner][spender]; ok {
		return v.Clone()
	}

	return new(uint256.Int)
}

// Balance balance of owner
func (t *ERC20) Balance(owner string) *uint256.Int {
	t.mux.Lock()
	defer t.mux.Unlock()

	return t.balance(owner)
}

// Supply total supply
func (t *ERC20) Supply() *uint256.Int {
	t.mux.Lock()
	defer t.mux.Unlock()

	return t.totalSupply.Clone()
}

// FailTransfer inject a failure into Transfer
func (t *ERC20) FailTransfer(mode FailMode) {
	t.mux.Lock()
	defer t.mux.Unlock()

	t.transferFail = mode
}

// FailTransferFrom inject a failure into TransferFrom
func (t *ERC20) FailTransferFrom(mode FailMode) {
	t.mux.Lock()
	defer t.mux.Unlock()

	t.fromFail = mode
}

// OnTransfer install hook, nil removes it
func (t *ERC20) OnTransfer(hook TransferHook) {
	t.mux.Lock()
	defer t.mux.Unlock()

	t.hook = hook
}

func (t *ERC20) transfer(ctx context.Context, from, to string, amount *uint256.Int) (bool, error) {
	t.mux.Lock()
	if ok, err := failure(t.transferFail); !ok {
		t.mux.Unlock()
		return false, err
	}

	if err := t.move(from, to, amount); err != nil {
		t.mux.Unlock()
		return false, err
	}

	hook := t.hook
	t.mux.Unlock()

	if hook != nil {
		hook(ctx, from, to, amount.Clone())
	}

	return true, nil
}

func (t *ERC20) transferFrom(ctx context.Context, spender, from, to string, amount *uint256.Int) (bool, error) {
	t.mux.Lock()
	if ok, err := failure(t.fromFail); !ok {
		t.mux.Unlock()
		return false, err
	}

	allowance := new(uint256.Int)
	if v, ok := t.allowances[from][spender]; ok {
		allowance = v
	}

	left, underflow := new(uint256.Int).SubOverflow(allowance, amount)
	if underflow {
		t.mux.Unlock()
		return false, ErrInsufficientAllowance
	}

	if err := t.move(from, to, amount); err != nil {
		t.mux.Unlock()
		return false, err
	}

	if allowance.Lt(maxAllowance) {
		t.allowances[from][spender] = left
	}

	hook := t.hook
	t.mux.Unlock()

	if hook != nil {
		hook(ctx, from, to, amount.Clone())
	}

	return true, nil
}

func (t *ERC20) move(from, to string, amount *uint256.Int) error {
	left, underflow := new(uint256.Int).SubOverflow(t.balance(from), amount)
	if underflow {
		return ErrInsufficientBalance
	}

	t.balances[from] = left
	t.credit(to, amount)
	return nil
}

func (t *ERC20) burn(owner string, amount *uint256.Int) error {
	left, underflow := new(uint256.Int).SubOverflow(t.balance(owner), amount)
	if underflow {
		return ErrInsufficientBalance
	}

	t.balances[owner] = left
	t.totalSupply.Sub(t.totalSupply, amount)
	return nil
}

func (t *ERC20) credit(owner string, amount *uint256.Int) {
	t.balances[owner] = new(uint256.Int).Add(t.balance(owner), amount)
}

func (t *ERC20) balance(owner string) *uint256.Int {
	if v, ok := t.balances[owner]; ok {
		return v.Clone()
	}

	return new(uint256.Int)
}

var maxAllowance = new(uint256.Int).SetAllOne()

func failure(mode FailMode) (bool, error) {
	switch mode {
	case FailReturnFalse:
		return false, nil
	case FailError:
		return false, ErrRejected
	default:
		return true, nil
	}
}

// Handle token bound to a caller, implement core.Token
type Handle struct {
	token  *ERC20
	caller string
}

// Asset implement core.Token
func (h *Handle) Asset() core.Asset {
	return h.token.asset
}

// Transfer move amount of the caller's balance to to
func (h *Handle) Transfer(ctx context.Context, to string, amount *uint256.Int) (bool, error) {
	return h.token.transfer(ctx, h.caller, to, amount)
}

// TransferFrom move amount from from to to, spending the caller's allowance
func (h *Handle) TransferFrom(ctx context.Context, from, to string, amount *uint256.Int) (bool, error) {
	return h.token.transferFrom(ctx, h.caller, from, to, amount)
}

// BalanceOf implement core.Token
func (h *Handle) BalanceOf(ctx context.Context, owner string) (*uint256.Int, error) {
	return h.token.Balance(owner), nil
}
