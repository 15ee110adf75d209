package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type StrategyMetrics struct {
	Ballots       metrics.Counter
	Batches       metrics.Counter
	FailedBatches metrics.Counter
	BoundRounds   metrics.Counter
}

func (s *StrategyMetrics) AddBallots(n int) {
	s.Ballots.Add(float64(n))
}

func (s *StrategyMetrics) IncBatches() {
	s.Batches.Add(1)
}

func (s *StrategyMetrics) IncFailedBatches(errorKind string) {
	s.FailedBatches.With("kind", errorKind).Add(1)
}

func (s *StrategyMetrics) IncBoundRounds() {
	s.BoundRounds.Add(1)
}

func PromStrategyMetrics() *StrategyMetrics {
	return &StrategyMetrics{
		Ballots: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: StrategySubsystem,
			Name:      "ballots_total",
			Help:      "Total number of ballots executed.",
		}, []string{}),
		Batches: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: StrategySubsystem,
			Name:      "batches_total",
			Help:      "Total number of committed vote batches.",
		}, []string{}),
		FailedBatches: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: StrategySubsystem,
			Name:      "failed_batches_total",
			Help:      "Total number of aborted vote batches.",
		}, []string{"kind"}),
		BoundRounds: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: StrategySubsystem,
			Name:      "bound_rounds_total",
			Help:      "Number of strategy instances bound to a round.",
		}, []string{}),
	}
}

func NopStrategyMetrics() *StrategyMetrics {
	return &StrategyMetrics{
		Ballots:       discard.NewCounter(),
		Batches:       discard.NewCounter(),
		FailedBatches: discard.NewCounter(),
		BoundRounds:   discard.NewCounter(),
	}
}
