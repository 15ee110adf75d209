package metrics

var (
	Strategy = NopStrategyMetrics()
)
