package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "dagengine-scheduler"

	metricExecutions      = "scheduler.executions.total"
	metricExecuteDuration = "scheduler.execute.duration"
	metricExecuteSuccess  = "scheduler.executions.success.total"
	metricExecuteFailure  = "scheduler.executions.failure.total"
	metricNodeDispatches  = "scheduler.node.dispatches.total"
	metricNodeDuration    = "scheduler.node.duration"
	metricNodeSuccess     = "scheduler.node.success.total"
	metricNodeFailure     = "scheduler.node.failure.total"
	metricReadyQueueDepth = "scheduler.ready_queue.depth"
	metricRunningNodes    = "scheduler.nodes.running"
)

// Provider manages OpenTelemetry setup and provides access to tracers and
// meters for the scheduler's dispatch loop.
type Provider struct {
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider trace.TracerProvider
	meter          metric.Meter
	tracer         trace.Tracer

	executions      metric.Int64Counter
	executeDuration metric.Float64Histogram
	executeSuccess  metric.Int64Counter
	executeFailure  metric.Int64Counter
	nodeDispatches  metric.Int64Counter
	nodeDuration    metric.Float64Histogram
	nodeSuccess     metric.Int64Counter
	nodeFailure     metric.Int64Counter
	readyQueueDepth metric.Int64Gauge
	runningNodes    metric.Int64Gauge

	mu sync.RWMutex
}

// Config holds telemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	EnableTracing  bool
	EnableMetrics  bool
}

// DefaultConfig returns default telemetry configuration.
func DefaultConfig() Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		EnableTracing:  true,
		EnableMetrics:  true,
	}
}

// NewProvider creates a new telemetry provider with a Prometheus metrics
// exporter. It initializes OpenTelemetry with the given configuration and
// returns a provider that can be used to create tracers and record
// scheduler metrics.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	provider := &Provider{}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if config.EnableMetrics {
		if err := provider.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	if config.EnableTracing {
		provider.initTracing()
	}

	return provider, nil
}

func (p *Provider) initMetrics(res *resource.Resource) error {
	exporter, err := prometheus.New()
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	p.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	otel.SetMeterProvider(p.meterProvider)

	p.meter = p.meterProvider.Meter(serviceName)

	return p.createMetricInstruments()
}

func (p *Provider) initTracing() {
	// In production this should be configured with appropriate exporters
	// (OTLP, Jaeger, etc.); for now use the global tracer provider.
	p.tracerProvider = otel.GetTracerProvider()
	p.tracer = p.tracerProvider.Tracer(serviceName)
}

func (p *Provider) createMetricInstruments() error {
	var err error

	p.executions, err = p.meter.Int64Counter(
		metricExecutions,
		metric.WithDescription("Total number of graph executions"),
	)
	if err != nil {
		return err
	}

	p.executeDuration, err = p.meter.Float64Histogram(
		metricExecuteDuration,
		metric.WithDescription("Graph execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.executeSuccess, err = p.meter.Int64Counter(
		metricExecuteSuccess,
		metric.WithDescription("Total number of successful graph executions"),
	)
	if err != nil {
		return err
	}

	p.executeFailure, err = p.meter.Int64Counter(
		metricExecuteFailure,
		metric.WithDescription("Total number of failed graph executions"),
	)
	if err != nil {
		return err
	}

	p.nodeDispatches, err = p.meter.Int64Counter(
		metricNodeDispatches,
		metric.WithDescription("Total number of node dispatches"),
	)
	if err != nil {
		return err
	}

	p.nodeDuration, err = p.meter.Float64Histogram(
		metricNodeDuration,
		metric.WithDescription("Node execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.nodeSuccess, err = p.meter.Int64Counter(
		metricNodeSuccess,
		metric.WithDescription("Total number of successful node executions"),
	)
	if err != nil {
		return err
	}

	p.nodeFailure, err = p.meter.Int64Counter(
		metricNodeFailure,
		metric.WithDescription("Total number of failed node executions"),
	)
	if err != nil {
		return err
	}

	p.readyQueueDepth, err = p.meter.Int64Gauge(
		metricReadyQueueDepth,
		metric.WithDescription("Current depth of the scheduler's ready queue"),
	)
	if err != nil {
		return err
	}

	p.runningNodes, err = p.meter.Int64Gauge(
		metricRunningNodes,
		metric.WithDescription("Current number of nodes in the Running state"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Tracer returns the tracer for creating spans.
func (p *Provider) Tracer() trace.Tracer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tracer
}

// Meter returns the meter for recording metrics.
func (p *Provider) Meter() metric.Meter {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.meter
}

// RecordExecute records metrics for one Graph.Execute call.
func (p *Provider) RecordExecute(ctx context.Context, executionID string, duration time.Duration, success bool, nodesExecuted int) {
	if p.meter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("execution.id", executionID),
		attribute.Int("nodes.executed", nodesExecuted),
	}

	p.executions.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.executeDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if success {
		p.executeSuccess.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		p.executeFailure.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordNodeExecution records metrics for a single node invocation.
func (p *Provider) RecordNodeExecution(ctx context.Context, nodeID string, duration time.Duration, success bool) {
	if p.meter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("node.id", nodeID),
	}

	p.nodeDispatches.Add(ctx, 1, metric.WithAttributes(attrs...))
	p.nodeDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if success {
		p.nodeSuccess.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		p.nodeFailure.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordReadyQueueDepth reports the current size of the ready queue.
func (p *Provider) RecordReadyQueueDepth(ctx context.Context, depth int) {
	if p.meter == nil {
		return
	}
	p.readyQueueDepth.Record(ctx, int64(depth))
}

// RecordRunningNodes reports the current number of in-flight node
// invocations.
func (p *Provider) RecordRunningNodes(ctx context.Context, count int) {
	if p.meter == nil {
		return
	}
	p.runningNodes.Record(ctx, int64(count))
}

// Shutdown gracefully shuts down the telemetry provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.meterProvider != nil {
		if err := p.meterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
	}

	return nil
}
