package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/streamext/logger"
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

// Metric names recorded by ShapingMetrics.
const (
	MetricItemsReceived = "stream.items.received"
	MetricItemsDropped  = "stream.items.dropped"
	MetricItemsEmitted  = "stream.items.emitted"
	MetricFinished      = "stream.finished"
)

// ShapingMetrics counts what a throttle or debounce stage did with its
// items. It satisfies stream.Observer:
//
//	m, _ := observability.NewShapingMetrics(observability.Meter("shaping"), "orders")
//	th := stream.ThrottleInterval(src, clock, cfg, 1, stream.WithObserver(m))
type ShapingMetrics struct {
	stage string
	id    string
	attrs metric.MeasurementOption

	received metric.Int64Counter
	dropped  metric.Int64Counter
	emitted  metric.Int64Counter
	finished metric.Int64Counter
}

// NewShapingMetrics creates the counters for one stage on meter. Every
// instance gets its own stage id so that two stages sharing a name can
// still be told apart.
func NewShapingMetrics(meter metric.Meter, stage string) (*ShapingMetrics, error) {
	received, err := meter.Int64Counter(MetricItemsReceived,
		metric.WithDescription("Items pulled from the source"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricItemsReceived, err)
	}

	dropped, err := meter.Int64Counter(MetricItemsDropped,
		metric.WithDescription("Items superseded by a newer item before release"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricItemsDropped, err)
	}

	emitted, err := meter.Int64Counter(MetricItemsEmitted,
		metric.WithDescription("Items released downstream"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricItemsEmitted, err)
	}

	finished, err := meter.Int64Counter(MetricFinished,
		metric.WithDescription("Stages that ran to completion"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFinished, err)
	}

	id := uuid.NewString()
	return &ShapingMetrics{
		stage: stage,
		id:    id,
		attrs: metric.WithAttributes(
			attribute.String(AttrStage, stage),
			attribute.String(AttrStageID, id),
		),
		received: received,
		dropped:  dropped,
		emitted:  emitted,
		finished: finished,
	}, nil
}

// Stage returns the stage name.
func (m *ShapingMetrics) Stage() string { return m.stage }

// ID returns the generated stage id.
func (m *ShapingMetrics) ID() string { return m.id }

// ItemReceived records an item pulled from the source.
func (m *ShapingMetrics) ItemReceived() {
	m.received.Add(context.Background(), 1, m.attrs)
}

// ItemDropped records an item that was coalesced away.
func (m *ShapingMetrics) ItemDropped() {
	m.dropped.Add(context.Background(), 1, m.attrs)
}

// ItemEmitted records an item handed downstream.
func (m *ShapingMetrics) ItemEmitted() {
	m.emitted.Add(context.Background(), 1, m.attrs)
}

// Finished records the end of the stage.
func (m *ShapingMetrics) Finished() {
	m.finished.Add(context.Background(), 1, m.attrs)
}
