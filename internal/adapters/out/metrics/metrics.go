// Package metrics exposes ledger and job activity as Prometheus collectors.
package metrics

import (
	"backoffice/internal/core/domain/model/agent"

	"github.com/prometheus/client_golang/prometheus"
)

// Ledger counts committed balance adjustments. It implements commands.AdjustmentObserver.
type Ledger struct {
	adjustments *prometheus.CounterVec
	amount      *prometheus.CounterVec
}

// NewLedger creates the collectors and registers them with reg.
func NewLedger(reg prometheus.Registerer) *Ledger {
	l := &Ledger{
		adjustments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_adjustments_total",
				Help: "Total number of committed balance adjustments",
			},
			[]string{"kind"},
		),
		amount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_adjustment_amount_total",
				Help: "Sum of committed adjustment amounts, in currency units",
			},
			[]string{"kind"},
		),
	}
	reg.MustRegister(l.adjustments, l.amount)
	return l
}

func (l *Ledger) ObserveAdjustment(kind agent.AdjustmentKind, amount int64) {
	l.adjustments.WithLabelValues(kind.String()).Inc()
	l.amount.WithLabelValues(kind.String()).Add(float64(amount))
}

// Settlement counts the outcome of commission settlement runs.
type Settlement struct {
	runs   *prometheus.CounterVec
	orders *prometheus.CounterVec
}

// NewSettlement creates the collectors and registers them with reg.
func NewSettlement(reg prometheus.Registerer) *Settlement {
	s := &Settlement{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_settlement_runs_total",
				Help: "Total number of settlement runs by result",
			},
			[]string{"result"},
		),
		orders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_settlement_orders_total",
				Help: "Total number of orders processed by settlement runs by outcome",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(s.runs, s.orders)
	return s
}

// ObserveRun records one run. err is the run-level error, if any.
func (s *Settlement) ObserveRun(settled, skipped, failed int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.runs.WithLabelValues(result).Inc()
	s.orders.WithLabelValues("settled").Add(float64(settled))
	s.orders.WithLabelValues("skipped").Add(float64(skipped))
	s.orders.WithLabelValues("failed").Add(float64(failed))
}
