package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// ResultOK committed operation
	ResultOK = "ok"
)

// EngineMetrics engine counters
type EngineMetrics struct {
	operations   *prometheus.CounterVec
	liquidations *prometheus.CounterVec
	priceReads   *prometheus.CounterVec
	reserves     prometheus.Gauge
	debt         prometheus.Gauge
}

var (
	engineOnce     sync.Once
	engineRegistry *EngineMetrics
)

// Engine process wide engine metrics
func Engine() *EngineMetrics {
	engineOnce.Do(func() {
		engineRegistry = &EngineMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "dsc_engine_operations_total",
				Help: "Engine operations by kind and result.",
			}, []string{"operation", "result"}),
			liquidations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "dsc_engine_liquidations_total",
				Help: "Committed liquidations by collateral asset.",
			}, []string{"asset"}),
			priceReads: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "dsc_oracle_price_reads_total",
				Help: "Oracle price reads by asset and result.",
			}, []string{"asset", "result"}),
			reserves: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "dsc_engine_reserves_usd",
				Help: "Usd value of the collateral held by the engine.",
			}),
			debt: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "dsc_engine_debt_total",
				Help: "Debt tokens minted and not burned.",
			}),
		}
		prometheus.MustRegister(
			engineRegistry.operations,
			engineRegistry.liquidations,
			engineRegistry.priceReads,
			engineRegistry.reserves,
			engineRegistry.debt,
		)
	})

	return engineRegistry
}

// RecordOperation count an engine operation, result is ResultOK or an error code
func (m *EngineMetrics) RecordOperation(operation, result string) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(operation, result).Inc()
}

// RecordLiquidation count a committed liquidation
func (m *EngineMetrics) RecordLiquidation(asset string) {
	if m == nil {
		return
	}

	m.liquidations.WithLabelValues(asset).Inc()
}

// RecordPriceRead count an oracle read
func (m *EngineMetrics) RecordPriceRead(asset, result string) {
	if m == nil {
		return
	}

	m.priceReads.WithLabelValues(asset, result).Inc()
}

// RecordSolvency set the reserves and debt gauges
func (m *EngineMetrics) RecordSolvency(reserves, debt float64) {
	if m == nil {
		return
	}

	m.reserves.Set(reserves)
	m.debt.Set(debt)
}
