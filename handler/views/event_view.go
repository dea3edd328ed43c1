package views

import (
	"encoding/json"
	"time"

	"dsc/core"
	"dsc/pkg/number"

	"github.com/shopspring/decimal"
)

// Event event view
type Event struct {
	ID        int64           `json:"id"`
	TraceID   string          `json:"trace_id"`
	Kind      core.EventKind  `json:"kind"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Asset     core.Asset      `json:"asset,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewEvents event views, raw integer amounts are shown with 18 decimals
func NewEvents(events []*core.Event) []*Event {
	views := make([]*Event, 0, len(events))
	for _, e := range events {
		views = append(views, &Event{
			ID:        e.ID,
			TraceID:   e.TraceID,
			Kind:      e.Kind,
			From:      e.From,
			To:        e.To,
			Asset:     e.Asset,
			Amount:    e.Amount.Shift(-number.Precision),
			Data:      json.RawMessage(e.Data),
			CreatedAt: e.CreatedAt,
		})
	}

	return views
}
