package tagspace

type config struct {
	strict    bool
	logger    *Logger
	metrics   MetricsCollector
	cacheSize int
}

// Option configures TagSpace constructor behavior.
type Option func(*config)

// WithStrict requires every tag name to be registered via Define before use.
// Without it, first use of an unseen name on a tagging path auto-creates an
// unconstrained index typed after the first value supplied.
func WithStrict() Option {
	return func(c *config) {
		c.strict = true
	}
}

// WithLogger configures structured logging for operations.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(c *config) {
		if l == nil {
			l = NoopLogger()
		}
		c.logger = l
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(c *config) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		c.metrics = mc
	}
}

// WithQueryCache enables an LRU memo of query results. Entries are
// invalidated wholesale by any mutation; only queries whose selectors are
// finite value enumerations are cached (predicates are not keyable).
func WithQueryCache(size int) Option {
	return func(c *config) {
		if size <= 0 {
			size = DefaultQueryCacheSize
		}
		c.cacheSize = size
	}
}
