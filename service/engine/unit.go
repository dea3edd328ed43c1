package engine

import (
	"context"
	"strconv"
	"time"

	"dsc/core"
	"dsc/pkg/id"
	"dsc/pkg/logger"
	"dsc/pkg/metrics"
	"dsc/pkg/number"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

type (
	// unit all or nothing execution of one mutating call
	unit struct {
		engine   *Engine
		ctx      context.Context
		op       string
		log      *logrus.Entry
		snapshot int
		undo     []compensation
		events   []*core.Event
	}

	compensation struct {
		name string
		fn   func(ctx context.Context) error
	}

	// operationFields log fields of a mutating call
	operationFields struct {
		Operation string `json:"operation"`
		User      string `json:"user"`
		Asset     string `json:"asset,omitempty"`
		Amount    string `json:"amount,omitempty"`
		Debt      string `json:"debt,omitempty"`
	}
)

func (f operationFields) entry(ctx context.Context) *logrus.Entry {
	s := structs.New(f)
	s.TagName = "json"
	return logger.FromContext(ctx).WithFields(logrus.Fields(s.Map()))
}

// run execute fn as one guarded unit, every tentative change is discarded when fn fails
func (e *Engine) run(ctx context.Context, fields operationFields, fn func(u *unit) error) error {
	log := fields.entry(ctx)

	ctx, unlock, err := e.lock(ctx)
	if err != nil {
		log.WithError(err).Errorln("engine: rejected")
		e.metrics.RecordOperation(fields.Operation, core.CodeOf(err).String())
		return err
	}
	defer unlock()

	u := &unit{
		engine:   e,
		ctx:      ctx,
		op:       fields.Operation,
		log:      log,
		snapshot: e.ledger.Snapshot(),
	}

	if err := fn(u); err != nil {
		u.rollback()
		log.WithError(err).Infoln("engine: reverted")
		e.metrics.RecordOperation(fields.Operation, core.CodeOf(err).String())
		return err
	}

	u.commit()
	log.Infoln("engine: committed")
	e.metrics.RecordOperation(fields.Operation, metrics.ResultOK)
	return nil
}

// onRollback register a compensation of an external effect already performed
func (u *unit) onRollback(name string, fn func(ctx context.Context) error) {
	u.undo = append(u.undo, compensation{name: name, fn: fn})
}

func (u *unit) emit(kind core.EventKind, from, to string, asset core.Asset, amount *uint256.Int, extra core.EventExtraData) {
	event := &core.Event{
		Kind:   kind,
		From:   from,
		To:     to,
		Asset:  asset,
		Amount: number.FromInt(amount),
	}

	event.SetExtraData(extra)
	u.events = append(u.events, event)
}

func (u *unit) rollback() {
	for i := len(u.undo) - 1; i >= 0; i-- {
		c := u.undo[i]
		if err := c.fn(u.ctx); err != nil {
			u.log.WithError(err).WithField("compensation", c.name).Errorln("engine: compensation failed")
		}
	}

	u.engine.ledger.RevertToSnapshot(u.snapshot)
	u.undo = nil
	u.events = nil
}

func (u *unit) commit() {
	u.engine.ledger.Commit()

	if len(u.events) == 0 || u.engine.events == nil {
		return
	}

	trace := id.GenTraceID()
	now := time.Now()
	for idx, event := range u.events {
		event.TraceID = id.TraceIDFrom(trace, strconv.Itoa(idx))
		event.CreatedAt = now
	}

	if err := u.engine.events.Create(u.ctx, u.events...); err != nil {
		u.log.WithError(err).Errorln("engine: persist events")
	}
}
