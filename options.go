package kollektiv

import "time"

// Option configures an Engine with optional dependencies.
type Option func(*engineOptions)

// engineOptions holds optional Engine configuration.
type engineOptions struct {
	distributor Distributor
	rotator     Rotator
	hooks       *Hooks
	metrics     MetricsCollector
	logger      Logger
	clock       func() time.Time
}

// WithDistributor replaces the fairness distributor used for week one.
//
// Parameters:
//   - d: Distributor implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	eng, _ := kollektiv.NewEngine(&cfg, kollektiv.WithDistributor(strategy.NewRoundRobin()))
func WithDistributor(d Distributor) Option {
	return func(o *engineOptions) {
		o.distributor = d
	}
}

// WithRotator replaces the rotation engine.
//
// The default rotator is built from Config.RebalanceTolerance; a custom
// rotator ignores that setting.
func WithRotator(r Rotator) Option {
	return func(o *engineOptions) {
		o.rotator = r
	}
}

// WithHooks sets mutation event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	hooks := &kollektiv.Hooks{
//	    OnAssignmentsChanged: func(ctx context.Context, reason string, a kollektiv.Assignments) error {
//	        return notify(ctx, reason, a)
//	    },
//	}
//	eng, _ := kollektiv.NewEngine(&cfg, kollektiv.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *engineOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewEngine
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *engineOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	logger := zap.NewExample().Sugar()
//	eng, _ := kollektiv.NewEngine(&cfg, kollektiv.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithClock sets the time source used to find the current week.
func WithClock(now func() time.Time) Option {
	return func(o *engineOptions) {
		o.clock = now
	}
}
