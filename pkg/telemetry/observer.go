package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cosmic-gao/sylas-heap/pkg/observer"
)

// TelemetryObserver implements observer.Observer and records telemetry
// data for graph execution events.
type TelemetryObserver struct {
	provider *Provider

	executeSpan trace.Span
	nodeSpans   map[string]trace.Span

	executeStartTime time.Time
	nodeStartTimes   map[string]time.Time
}

// NewTelemetryObserver creates a new telemetry observer.
func NewTelemetryObserver(provider *Provider) *TelemetryObserver {
	return &TelemetryObserver{
		provider:       provider,
		nodeSpans:      make(map[string]trace.Span),
		nodeStartTimes: make(map[string]time.Time),
	}
}

// OnEvent handles execution events and records telemetry data.
func (o *TelemetryObserver) OnEvent(ctx context.Context, event observer.Event) {
	switch event.Type {
	case observer.EventExecuteStart:
		o.handleExecuteStart(ctx, event)
	case observer.EventExecuteEnd:
		o.handleExecuteEnd(ctx, event)
	case observer.EventNodeDispatched:
		o.handleNodeDispatched(ctx, event)
	case observer.EventNodeCompleted:
		o.handleNodeEnd(ctx, event, true)
	case observer.EventNodeFailed:
		o.handleNodeEnd(ctx, event, false)
	case observer.EventNodeCancelled:
		o.handleNodeEnd(ctx, event, false)
	}
}

func (o *TelemetryObserver) handleExecuteStart(ctx context.Context, event observer.Event) {
	_, span := o.provider.Tracer().Start(ctx, "graph.execute",
		trace.WithAttributes(
			attribute.String("execution.id", event.ExecutionID),
		),
	)

	o.executeSpan = span
	o.executeStartTime = event.Timestamp
}

func (o *TelemetryObserver) handleExecuteEnd(ctx context.Context, event observer.Event) {
	duration := time.Since(o.executeStartTime)

	nodesExecuted := 0
	if val, ok := event.Metadata["nodes_executed"]; ok {
		if count, ok := val.(int); ok {
			nodesExecuted = count
		}
	}

	success := event.Status == observer.StatusSuccess
	o.provider.RecordExecute(ctx, event.ExecutionID, duration, success, nodesExecuted)

	if o.executeSpan != nil {
		if event.Error != nil {
			o.executeSpan.RecordError(event.Error)
			o.executeSpan.SetStatus(codes.Error, event.Error.Error())
		} else {
			o.executeSpan.SetStatus(codes.Ok, "execution completed successfully")
		}
		o.executeSpan.End()
	}
}

func (o *TelemetryObserver) handleNodeDispatched(ctx context.Context, event observer.Event) {
	var spanCtx context.Context
	if o.executeSpan != nil {
		spanCtx = trace.ContextWithSpan(ctx, o.executeSpan)
	} else {
		spanCtx = ctx
	}

	_, span := o.provider.Tracer().Start(spanCtx, "node.dispatch",
		trace.WithAttributes(
			attribute.String("node.id", event.NodeID),
			attribute.String("execution.id", event.ExecutionID),
		),
	)

	o.nodeSpans[event.NodeID] = span
	o.nodeStartTimes[event.NodeID] = event.Timestamp
}

func (o *TelemetryObserver) handleNodeEnd(ctx context.Context, event observer.Event, success bool) {
	var duration time.Duration
	if startTime, ok := o.nodeStartTimes[event.NodeID]; ok {
		duration = time.Since(startTime)
		delete(o.nodeStartTimes, event.NodeID)
	}

	o.provider.RecordNodeExecution(ctx, event.NodeID, duration, success)

	if span, ok := o.nodeSpans[event.NodeID]; ok {
		if event.Error != nil {
			span.RecordError(event.Error)
			span.SetStatus(codes.Error, event.Error.Error())
		} else if success {
			span.SetStatus(codes.Ok, "node completed successfully")
		} else {
			span.SetStatus(codes.Error, "node cancelled")
		}
		span.End()
		delete(o.nodeSpans, event.NodeID)
	}
}
