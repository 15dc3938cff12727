package proxy

import (
	"fmt"

	"github.com/anoideaopen/hotswap/core/config"
	"github.com/anoideaopen/hotswap/core/delegate"
	"github.com/anoideaopen/hotswap/core/logger"
	"github.com/anoideaopen/hotswap/core/telemetry"
	"github.com/anoideaopen/hotswap/core/typesys"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a StandardFactory.
type Option func(f *StandardFactory)

// WithLogger sets the log entry of the factory and of its proxies.
func WithLogger(log *logrus.Entry) Option {
	return func(f *StandardFactory) {
		f.log = log
	}
}

// WithTracerProvider sets the provider of the tracer spanning every invocation.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(f *StandardFactory) {
		f.tracing = telemetry.NewTracingHandler(tp)
	}
}

// WithMode forces the delegation mode of every proxy created by the factory.
func WithMode(mode delegate.Mode) Option {
	return func(f *StandardFactory) {
		f.mode = &mode
	}
}

// NewStandardFactoryFromConfig configures the shared logger and the global trace
// provider from cfg and returns a standard factory using them. The default mode of
// cfg, when set, is forced on every proxy. Options are applied after the
// configuration.
func NewStandardFactoryFromConfig(
	u *typesys.Universe,
	cfg *config.Config,
	opts ...Option,
) (*StandardFactory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}

	tp, err := telemetry.InstallTraceProvider(cfg.CollectorEndpoint(), cfg.ServiceName())
	if err != nil {
		return nil, fmt.Errorf("installing trace provider: %w", err)
	}

	fromConfig := []Option{WithTracerProvider(tp)}
	if mode, ok, _ := cfg.Mode(); ok {
		fromConfig = append(fromConfig, WithMode(mode))
	}

	return NewStandardFactory(u, append(fromConfig, opts...)...), nil
}
