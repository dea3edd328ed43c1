package solvency

import (
	"context"
	"time"

	"dsc/pkg/logger"
	"dsc/pkg/metrics"
	"dsc/pkg/number"
	"dsc/worker"

	"github.com/holiman/uint256"
)

// Engine the reserves and debt the worker compares
type Engine interface {
	TotalDebt(ctx context.Context) *uint256.Int
	ReservesValue(ctx context.Context) (*uint256.Int, error)
}

// Worker checks that the collateral held by the engine covers the debt it minted
type Worker struct {
	engine   Engine
	metrics  *metrics.EngineMetrics
	interval time.Duration
}

// New new solvency worker
func New(engine Engine, m *metrics.EngineMetrics, interval time.Duration) *Worker {
	return &Worker{
		engine:   engine,
		metrics:  m,
		interval: interval,
	}
}

var _ worker.Worker = (*Worker)(nil)

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return worker.Schedule(ctx, "solvency", w.interval, func(ctx context.Context) error {
		_, err := w.check(ctx)
		return err
	})
}

// check true when reserves >= total debt
func (w *Worker) check(ctx context.Context) (bool, error) {
	log := logger.FromContext(ctx).WithField("worker", "solvency")

	reserves, err := w.engine.ReservesValue(ctx)
	if err != nil {
		return false, err
	}

	debt := w.engine.TotalDebt(ctx)
	w.metrics.RecordSolvency(
		number.FromFixed(reserves).InexactFloat64(),
		number.FromFixed(debt).InexactFloat64(),
	)

	if reserves.Lt(debt) {
		log.WithField("reserves", reserves.Dec()).
			WithField("debt", debt.Dec()).
			Errorln("reserves below total debt")
		return false, nil
	}

	return true, nil
}
