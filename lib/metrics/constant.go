package metrics

const (
	Namespace         = "quadra"
	StrategySubsystem = "strategy"
	APISubsystem      = "api"
)
