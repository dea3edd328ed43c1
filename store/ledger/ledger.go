package ledger

import (
	"sort"

	"dsc/core"

	"github.com/holiman/uint256"
)

type positionKey struct {
	user  string
	asset core.Asset
}

type (
	journalEntry interface {
		revert(l *Ledger)
	}

	collateralChange struct {
		key  positionKey
		prev *uint256.Int
	}

	debtChange struct {
		user string
		prev *uint256.Int
	}

	userCreated struct {
		user string
	}
)

func (c collateralChange) revert(l *Ledger) {
	if c.prev == nil {
		delete(l.collateral, c.key)
		return
	}

	l.collateral[c.key] = c.prev
}

func (c debtChange) revert(l *Ledger) {
	if c.prev == nil {
		delete(l.debt, c.user)
		return
	}

	l.debt[c.user] = c.prev
}

func (c userCreated) revert(l *Ledger) {
	delete(l.users, c.user)
	l.order = l.order[:len(l.order)-1]
}

// Ledger authoritative collateral and debt positions
//
// Ledger is not safe for concurrent use, the owner serializes access.
type Ledger struct {
	collateral map[positionKey]*uint256.Int
	debt       map[string]*uint256.Int
	users      map[string]struct{}
	order      []string
	journal    []journalEntry
}

// New new empty ledger
func New() *Ledger {
	return &Ledger{
		collateral: make(map[positionKey]*uint256.Int),
		debt:       make(map[string]*uint256.Int),
		users:      make(map[string]struct{}),
	}
}

// Collateral deposited amount of asset by user
func (l *Ledger) Collateral(user string, asset core.Asset) *uint256.Int {
	if v, ok := l.collateral[positionKey{user, asset}]; ok {
		return v.Clone()
	}

	return new(uint256.Int)
}

// Debt debt tokens minted by user and not yet burned
func (l *Ledger) Debt(user string) *uint256.Int {
	if v, ok := l.debt[user]; ok {
		return v.Clone()
	}

	return new(uint256.Int)
}

// Users every account ever touched, in first touch order
func (l *Ledger) Users() []string {
	return append([]string(nil), l.order...)
}

// TotalDebt sum of every account debt
func (l *Ledger) TotalDebt() *uint256.Int {
	total := new(uint256.Int)
	for _, v := range l.debt {
		total.Add(total, v)
	}

	return total
}

// TotalCollateral sum of every deposit of asset
func (l *Ledger) TotalCollateral(asset core.Asset) *uint256.Int {
	total := new(uint256.Int)
	for key, v := range l.collateral {
		if key.asset == asset {
			total.Add(total, v)
		}
	}

	return total
}

// Assets assets user holds a non-zero deposit of, sorted
func (l *Ledger) Assets(user string) []core.Asset {
	var assets []core.Asset
	for key, v := range l.collateral {
		if key.user == user && !v.IsZero() {
			assets = append(assets, key.asset)
		}
	}

	sort.Slice(assets, func(i, j int) bool {
		return assets[i] < assets[j]
	})

	return assets
}

// AddCollateral credit amount of asset to user
func (l *Ledger) AddCollateral(user string, asset core.Asset, amount *uint256.Int) error {
	key := positionKey{user, asset}
	prev := l.collateral[key]

	next, overflow := new(uint256.Int).AddOverflow(l.Collateral(user, asset), amount)
	if overflow {
		return core.ErrAmountOverflow
	}

	l.touch(user)
	l.journal = append(l.journal, collateralChange{key: key, prev: prev})
	l.collateral[key] = next
	return nil
}

// SubCollateral debit amount of asset from user
func (l *Ledger) SubCollateral(user string, asset core.Asset, amount *uint256.Int) error {
	key := positionKey{user, asset}
	prev := l.collateral[key]

	next, underflow := new(uint256.Int).SubOverflow(l.Collateral(user, asset), amount)
	if underflow {
		return core.ErrInsufficientCollateral
	}

	l.touch(user)
	l.journal = append(l.journal, collateralChange{key: key, prev: prev})
	l.collateral[key] = next
	return nil
}

// AddDebt record amount of newly minted debt for user
func (l *Ledger) AddDebt(user string, amount *uint256.Int) error {
	prev := l.debt[user]

	next, overflow := new(uint256.Int).AddOverflow(l.Debt(user), amount)
	if overflow {
		return core.ErrAmountOverflow
	}

	l.touch(user)
	l.journal = append(l.journal, debtChange{user: user, prev: prev})
	l.debt[user] = next
	return nil
}

// SubDebt record amount of debt repaid on behalf of user
func (l *Ledger) SubDebt(user string, amount *uint256.Int) error {
	prev := l.debt[user]

	next, underflow := new(uint256.Int).SubOverflow(l.Debt(user), amount)
	if underflow {
		return core.ErrBurnAmountExceedsDebt
	}

	l.touch(user)
	l.journal = append(l.journal, debtChange{user: user, prev: prev})
	l.debt[user] = next
	return nil
}

// Snapshot revision id to revert to
func (l *Ledger) Snapshot() int {
	return len(l.journal)
}

// RevertToSnapshot undo every write made after the snapshot was taken
func (l *Ledger) RevertToSnapshot(id int) {
	if id < 0 || id > len(l.journal) {
		return
	}

	for i := len(l.journal) - 1; i >= id; i-- {
		l.journal[i].revert(l)
	}

	l.journal = l.journal[:id]
}

// Commit drop the journal, writes can no longer be reverted
func (l *Ledger) Commit() {
	l.journal = l.journal[:0]
}

func (l *Ledger) touch(user string) {
	if _, ok := l.users[user]; ok {
		return
	}

	l.users[user] = struct{}{}
	l.order = append(l.order, user)
	l.journal = append(l.journal, userCreated{user: user})
}
