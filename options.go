package camlight

// Option configures a Manager with optional dependencies.
type Option func(*managerOptions)

// managerOptions holds optional Manager configuration.
type managerOptions struct {
	hooks     *Hooks
	metrics   MetricsCollector
	logger    Logger
	scheduler Scheduler
}

// WithHooks sets lifecycle event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewManager
//
// Example:
//
//	hooks := &camlight.Hooks{
//	    OnActiveCameraChanged: func(ctx context.Context, from, to string) error {
//	        return ui.Refresh(to)
//	    },
//	}
//	mgr, err := camlight.NewManager(&cfg, host, camlight.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *managerOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewManager
//
// Example:
//
//	metrics := camlight.NewPrometheusMetrics(prometheus.DefaultRegisterer, "studio")
//	mgr, err := camlight.NewManager(&cfg, host, camlight.WithMetrics(metrics))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *managerOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewManager
//
// Example:
//
//	logger := zap.NewExample().Sugar()
//	mgr, err := camlight.NewManager(&cfg, host, camlight.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *managerOptions) {
		o.logger = logger
	}
}

// WithScheduler sets the scheduler used for deferred initialization retries.
//
// Hosts with a main-loop timer API should provide one so retries run on
// the host thread. The default uses time.AfterFunc.
//
// Parameters:
//   - scheduler: Scheduler implementation
//
// Returns:
//   - Option: Functional option for NewManager
func WithScheduler(scheduler Scheduler) Option {
	return func(o *managerOptions) {
		o.scheduler = scheduler
	}
}
