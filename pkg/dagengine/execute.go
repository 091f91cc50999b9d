package dagengine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cosmic-gao/sylas-heap/pkg/node"
	"github.com/cosmic-gao/sylas-heap/pkg/observer"
)

// Result summarizes one Execute call.
type Result struct {
	ExecutionID   string
	Duration      time.Duration
	NodesExecuted int
	Stats         Stats
}

// invocationResult is what a per-node invocation goroutine reports back
// to the dispatch loop when it settles.
type invocationResult struct {
	nodeID string
	err    error
}

// Execute runs the dispatch loop until the ready queue is empty and no
// invocation is in flight, or until a node fails. Each call is assigned
// a fresh execution id.
//
// The loop invariant is: while admitting new work (no failure has been
// observed yet), the number of in-flight invocations never exceeds
// MaxConcurrency. On the first node failure, the loop stops admitting
// new work but keeps awaiting invocations already in flight — cancelling
// them would violate the cooperative-cancellation model the rest of the
// package follows. A caller wanting fail-fast behavior should call Clear
// from the returned error path.
func (g *Graph) Execute(ctx context.Context) (*Result, error) {
	executionID := uuid.New().String()
	startTime := time.Now()
	logger := g.logger.WithExecutionID(executionID)

	g.mu.Lock()
	g.executionID = executionID
	g.mu.Unlock()

	logger.Info("execute started")
	g.notifyExecuteStart(ctx, executionID, startTime)

	done := make(chan invocationResult)
	pendingCount := 0
	nodesExecuted := 0
	var firstErr error

	for {
		select {
		case <-ctx.Done():
			if firstErr == nil {
				firstErr = ctx.Err()
			}
		default:
		}

		var queueDepth int
		g.mu.Lock()
		if firstErr == nil {
			for pendingCount < g.cfg.MaxConcurrency {
				n, ok := g.ready.Poll()
				if !ok {
					break
				}
				delete(g.handles, n.ID())
				pendingCount++
				go g.invokeNode(ctx, n, executionID, done)
			}
		}
		queueDepth = g.ready.Size()
		g.mu.Unlock()

		if g.telemetry != nil {
			g.telemetry.RecordReadyQueueDepth(ctx, queueDepth)
		}

		if pendingCount == 0 {
			break
		}

		res := <-done
		pendingCount--
		nodesExecuted++
		if res.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("node %s: %w", res.nodeID, res.err)
		}
	}

	stats := g.GetStats()
	duration := time.Since(startTime)

	if firstErr != nil {
		logger.WithError(firstErr).Error("execute failed")
	} else {
		logger.WithField("duration_ms", duration.Milliseconds()).Info("execute completed successfully")
	}
	g.notifyExecuteEnd(ctx, executionID, startTime, nodesExecuted, firstErr)
	if g.telemetry != nil {
		g.telemetry.RecordExecute(ctx, executionID, duration, firstErr == nil, nodesExecuted)
	}

	return &Result{
		ExecutionID:   executionID,
		Duration:      duration,
		NodesExecuted: nodesExecuted,
		Stats:         stats,
	}, firstErr
}

// invokeNode is the per-node coroutine: gather inputs, run the node,
// propagate the outcome, re-evaluate downstream readiness, and report
// back on done.
func (g *Graph) invokeNode(ctx context.Context, n *node.Node, executionID string, done chan<- invocationResult) {
	startTime := time.Now()
	logger := g.logger.WithExecutionID(executionID).WithNodeID(n.ID())

	g.notifyNodeDispatched(ctx, executionID, n.ID(), startTime)
	logger.Debug("node dispatched")

	runCtx, err := n.BeginRunning(ctx)
	if err != nil {
		// Concurrently cancelled or removed between dequeue and dispatch.
		// Not a failure: the node is already terminal.
		g.notifyNodeCancelled(ctx, executionID, n.ID(), startTime)
		done <- invocationResult{nodeID: n.ID()}
		return
	}

	if g.telemetry != nil {
		g.telemetry.RecordRunningNodes(ctx, g.countRunning())
	}

	inputs := make(map[string]any)
	for _, in := range n.GetInputEndpoints() {
		if v, ok := in.PullData(); ok {
			inputs[in.ID()] = v
		}
	}

	nc := node.NewContext(n, inputs)
	runErr := n.Run(runCtx, nc)

	if n.State() == node.Cancelled {
		logger.Warn("node cancelled")
		g.notifyNodeCancelled(ctx, executionID, n.ID(), startTime)
		if g.telemetry != nil {
			g.telemetry.RecordNodeExecution(ctx, n.ID(), time.Since(startTime), false)
		}
		done <- invocationResult{nodeID: n.ID()}
		return
	}

	if runErr != nil {
		_ = n.Fail(runErr)
		logger.WithError(runErr).Error("node execution failed")
		g.notifyNodeFailed(ctx, executionID, n.ID(), startTime, runErr)
		if g.telemetry != nil {
			g.telemetry.RecordNodeExecution(ctx, n.ID(), time.Since(startTime), false)
		}
		g.mu.Lock()
		g.transitionedAt[n.ID()] = time.Now()
		g.mu.Unlock()
		done <- invocationResult{nodeID: n.ID(), err: runErr}
		return
	}

	_ = n.Complete()
	logger.WithField("duration_ms", time.Since(startTime).Milliseconds()).Info("node execution completed successfully")
	g.notifyNodeCompleted(ctx, executionID, n.ID(), startTime)
	if g.telemetry != nil {
		g.telemetry.RecordNodeExecution(ctx, n.ID(), time.Since(startTime), true)
	}

	g.mu.Lock()
	g.transitionedAt[n.ID()] = time.Now()
	if g.cfg.EnableDynamicScheduling {
		for _, out := range n.GetOutputEndpoints() {
			for _, in := range out.Downstream() {
				if target, ok := g.nodes[in.Owner().NodeID()]; ok {
					g.evaluateReadinessLocked(target)
				}
			}
		}
	}
	g.mu.Unlock()

	done <- invocationResult{nodeID: n.ID()}
}

// countRunning reports the number of nodes currently in the Running
// state, for the running-nodes telemetry gauge.
func (g *Graph) countRunning() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	count := 0
	for _, n := range g.nodes {
		if n.State() == node.Running {
			count++
		}
	}
	return count
}

func (g *Graph) notifyExecuteStart(ctx context.Context, executionID string, startTime time.Time) {
	if !g.observerMgr.HasObservers() {
		return
	}
	g.observerMgr.Notify(ctx, observer.Event{
		Type:        observer.EventExecuteStart,
		Status:      observer.StatusStarted,
		Timestamp:   startTime,
		ExecutionID: executionID,
		StartTime:   startTime,
	})
}

func (g *Graph) notifyExecuteEnd(ctx context.Context, executionID string, startTime time.Time, nodesExecuted int, err error) {
	if !g.observerMgr.HasObservers() {
		return
	}
	status := observer.StatusSuccess
	if err != nil {
		status = observer.StatusFailure
	}
	g.observerMgr.Notify(ctx, observer.Event{
		Type:        observer.EventExecuteEnd,
		Status:      status,
		Timestamp:   time.Now(),
		ExecutionID: executionID,
		StartTime:   startTime,
		ElapsedTime: time.Since(startTime),
		Error:       err,
		Metadata:    map[string]interface{}{"nodes_executed": nodesExecuted},
	})
}

func (g *Graph) notifyNodeDispatched(ctx context.Context, executionID, nodeID string, startTime time.Time) {
	if !g.observerMgr.HasObservers() {
		return
	}
	g.observerMgr.Notify(ctx, observer.Event{
		Type:        observer.EventNodeDispatched,
		Status:      observer.StatusStarted,
		Timestamp:   startTime,
		ExecutionID: executionID,
		NodeID:      nodeID,
		StartTime:   startTime,
	})
}

func (g *Graph) notifyNodeCompleted(ctx context.Context, executionID, nodeID string, startTime time.Time) {
	if !g.observerMgr.HasObservers() {
		return
	}
	g.observerMgr.Notify(ctx, observer.Event{
		Type:        observer.EventNodeCompleted,
		Status:      observer.StatusSuccess,
		Timestamp:   time.Now(),
		ExecutionID: executionID,
		NodeID:      nodeID,
		StartTime:   startTime,
		ElapsedTime: time.Since(startTime),
	})
}

func (g *Graph) notifyNodeFailed(ctx context.Context, executionID, nodeID string, startTime time.Time, err error) {
	if !g.observerMgr.HasObservers() {
		return
	}
	g.observerMgr.Notify(ctx, observer.Event{
		Type:        observer.EventNodeFailed,
		Status:      observer.StatusFailure,
		Timestamp:   time.Now(),
		ExecutionID: executionID,
		NodeID:      nodeID,
		StartTime:   startTime,
		ElapsedTime: time.Since(startTime),
		Error:       err,
	})
}

func (g *Graph) notifyNodeCancelled(ctx context.Context, executionID, nodeID string, startTime time.Time) {
	if !g.observerMgr.HasObservers() {
		return
	}
	g.observerMgr.Notify(ctx, observer.Event{
		Type:        observer.EventNodeCancelled,
		Status:      observer.StatusCancelled,
		Timestamp:   time.Now(),
		ExecutionID: executionID,
		NodeID:      nodeID,
		StartTime:   startTime,
		ElapsedTime: time.Since(startTime),
	})
}
