package metrics

func InitPrometheusMetrics() {
	Strategy = PromStrategyMetrics()
}
