package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/modkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds instruments for module lifecycle observability.
type Metrics struct {
	initTotal       metric.Int64Counter
	resetTotal      metric.Int64Counter
	cascadeDuration metric.Float64Histogram
	notifyTotal     metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	initTotal, err := meter.Int64Counter("module.init.total",
		metric.WithDescription("Total number of module initializations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating module.init.total counter: %w", err)
	}

	resetTotal, err := meter.Int64Counter("module.reset.total",
		metric.WithDescription("Total number of module resets"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating module.reset.total counter: %w", err)
	}

	cascadeDuration, err := meter.Float64Histogram("module.cascade.duration",
		metric.WithDescription("Duration of dispose cascades in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating module.cascade.duration histogram: %w", err)
	}

	notifyTotal, err := meter.Int64Counter("module.notify.total",
		metric.WithDescription("Total number of change notifications fired"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating module.notify.total counter: %w", err)
	}

	return &Metrics{
		initTotal:       initTotal,
		resetTotal:      resetTotal,
		cascadeDuration: cascadeDuration,
		notifyTotal:     notifyTotal,
	}, nil
}

// RecordInit records one module initialization with the given status.
func (m *Metrics) RecordInit(ctx context.Context, module, status string) {
	if m == nil {
		return
	}
	m.initTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrModule, module),
		attribute.String(AttrStatus, status),
	))
}

// RecordReset records one module reset.
func (m *Metrics) RecordReset(ctx context.Context, module string) {
	if m == nil {
		return
	}
	m.resetTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrModule, module),
	))
}

// RecordCascade records the duration of a full dispose cascade and the
// number of dependents it reloaded.
func (m *Metrics) RecordCascade(ctx context.Context, module string, dependents int, d time.Duration) {
	if m == nil {
		return
	}
	m.cascadeDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(AttrModule, module),
		attribute.Int(AttrDependents, dependents),
	))
}

// RecordNotify records one change notification.
func (m *Metrics) RecordNotify(ctx context.Context, module string) {
	if m == nil {
		return
	}
	m.notifyTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrModule, module),
	))
}
