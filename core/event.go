package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// EventKind event kind
type EventKind string

const (
	// EventCollateralDeposited collateral deposited
	EventCollateralDeposited EventKind = "CollateralDeposited"
	// EventCollateralRedeemed collateral left the engine, from -> to
	EventCollateralRedeemed EventKind = "CollateralRedeemed"
	// EventDebtMinted debt token minted to user
	EventDebtMinted EventKind = "DebtMinted"
	// EventDebtBurned debt repaid on behalf of user
	EventDebtBurned EventKind = "DebtBurned"
	// EventLiquidated position liquidated
	EventLiquidated EventKind = "Liquidated"
)

const (
	// EventKeyDebtCovered debt covered by the liquidator
	EventKeyDebtCovered = "debt_covered"
	// EventKeyBonus bonus collateral
	EventKeyBonus = "bonus"
	// EventKeyHealthFactorBefore health factor before liquidation
	EventKeyHealthFactorBefore = "health_factor_before"
	// EventKeyHealthFactorAfter health factor after liquidation
	EventKeyHealthFactorAfter = "health_factor_after"
	// EventKeyPayer debt token payer
	EventKeyPayer = "payer"
)

// EventExtraData extra data
type EventExtraData map[string]interface{}

// NewEventExtra new event extra instance
func NewEventExtra() EventExtraData {
	return make(EventExtraData)
}

// Put put data
func (d EventExtraData) Put(key string, value interface{}) {
	d[key] = value
}

// Format format as []byte by default
func (d EventExtraData) Format() []byte {
	bs, err := json.Marshal(d)
	if err != nil {
		return []byte("{}")
	}

	return bs
}

// Event notification emitted by a committed engine operation
type Event struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	TraceID   string          `sql:"size:36;unique_index:idx_events_trace_id" json:"trace_id,omitempty"`
	Kind      EventKind       `sql:"size:32;index:idx_events_kind" json:"kind,omitempty"`
	From      string          `sql:"size:128;index:idx_events_from" json:"from,omitempty"`
	To        string          `sql:"size:128" json:"to,omitempty"`
	Asset     Asset           `sql:"size:36" json:"asset,omitempty"`
	Amount    decimal.Decimal `sql:"type:decimal(78,0)" json:"amount"`
	Data      types.JSONText  `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP;index:idx_events_created_at" json:"created_at,omitempty"`
}

// SetExtraData set extra data
func (e *Event) SetExtraData(extra EventExtraData) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	e.Data = data
}

// EventStore event store interface
type EventStore interface {
	Create(ctx context.Context, events ...*Event) error
	List(ctx context.Context, fromID int64, limit int) ([]*Event, error)
	ListByUser(ctx context.Context, user string, fromID int64, limit int) ([]*Event, error)
}
