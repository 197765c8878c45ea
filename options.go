package sft

import "log/slog"

// Option configures a Rasterizer during creation.
//
// Example:
//
//	// Default: GOMAXPROCS workers, no debug assertions
//	r, err := sft.New(size, 4)
//
//	// Pin the worker pool and enable debug assertions
//	r, err := sft.New(size, 4, sft.WithWorkers(4), sft.WithDebugAssertions(true))
type Option func(*rasterizerOptions)

// rasterizerOptions holds optional configuration for Rasterizer creation.
type rasterizerOptions struct {
	workers          int
	logger           *slog.Logger
	debugAssertions  bool
	coverageEpsilon  float32
}

// defaultOptions returns the default rasterizer options.
func defaultOptions() rasterizerOptions {
	return rasterizerOptions{
		workers:         0, // 0 means runtime.GOMAXPROCS(0), resolved by the worker pool
		coverageEpsilon: 1e-5,
	}
}

// WithWorkers pins the rasterizer's tile-dispatch worker pool to a fixed
// number of goroutines. A value <= 0 falls back to runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *rasterizerOptions) {
		o.workers = n
	}
}

// WithLogger stores a logger in this rasterizer instance's options,
// without affecting the package-level logger set by SetLogger. The
// rasterizer emits no log records through it.
func WithLogger(l *slog.Logger) Option {
	return func(o *rasterizerOptions) {
		o.logger = l
	}
}

// WithDebugAssertions records whether debug assertions are enabled. No
// check in this module reads the setting, so it does not change what the
// rasterizer does.
func WithDebugAssertions(enabled bool) Option {
	return func(o *rasterizerOptions) {
		o.debugAssertions = enabled
	}
}

// WithCoverageEpsilon records a coverage tolerance in the rasterizer's
// options (default 1e-5). Coverage tests use the fixed geom.Epsilon and do
// not read this value.
func WithCoverageEpsilon(epsilon float32) Option {
	return func(o *rasterizerOptions) {
		o.coverageEpsilon = epsilon
	}
}
