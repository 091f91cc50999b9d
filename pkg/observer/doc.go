// Package observer provides an event-driven observer pattern for graph
// execution.
//
// # Overview
//
// The observer package enables monitoring, logging, and reacting to
// scheduler events. Observers can track execute-level lifecycle and
// per-node dispatch, completion, failure, and cancellation without
// coupling to the engine implementation.
//
// # Event Timing
//
//	Execute Lifecycle:
//	  EventExecuteStart
//	    -> node becomes ready: EventNodeReady
//	    -> node dispatched: EventNodeDispatched
//	    -> EventNodeCompleted, EventNodeFailed, or EventNodeCancelled
//	  EventExecuteEnd
//
// # Basic Usage
//
//	mgr := observer.NewManager()
//	mgr.Register(observer.NewConsoleObserver())
//	mgr.Notify(ctx, observer.Event{Type: observer.EventNodeDispatched, NodeID: "fetch"})
//
// # Thread Safety
//
// Manager.Notify dispatches to each registered observer in its own
// goroutine and recovers observer panics so one misbehaving observer
// cannot affect another or the scheduler itself.
package observer
