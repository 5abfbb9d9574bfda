package bootstrap

import (
	"time"

	"github.com/kbukum/modkit/logger"
	"github.com/kbukum/modkit/modular"
	"github.com/kbukum/modkit/observability"
)

// Option configures the App during creation.
// Options are non-generic so they can be used with any config type.
type Option func(*appOptions)

// appOptions collects all option values before applying to App.
type appOptions struct {
	logger          *logger.Logger
	registry        *modular.Registry
	metrics         *observability.Metrics
	gracefulTimeout *time.Duration
}

// resolveOptions applies all options and returns the collected values.
func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is auto-initialized from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithRegistry sets a custom module registry for the application.
func WithRegistry(r *modular.Registry) Option {
	return func(o *appOptions) {
		o.registry = r
	}
}

// WithMetrics enables lifecycle metric recording on the registry created by
// NewApp. Ignored when WithRegistry supplies a prebuilt registry.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *appOptions) {
		o.metrics = m
	}
}
