// Package node implements the abstract node contract: a user-supplied
// unit of work with typed input/output ports, metadata, a cancellation
// handle, and a lifecycle state machine.
//
// # Lifecycle
//
//	Pending --(readiness satisfied)--> Ready
//	Ready --(dequeued and dispatched)--> Running
//	Running --(Run returns normally)--> Completed
//	Running --(Run returns an error)--> Failed
//	Pending|Ready|Running --(Cancel)--> Cancelled
//
// Completed, Failed, and Cancelled are terminal. Transitions are enforced
// by the Node itself; a caller attempting an invalid transition gets
// ErrInvalidTransition back.
//
// # Ports are fixed once added to a graph
//
// AddInputEndpoint and AddOutputEndpoint panic-free but return
// ErrPortsSealed once Seal has been called, which the owning graph does
// as part of addNode. A node's shape — its set of ports — must not
// change while it belongs to a live graph.
package node
