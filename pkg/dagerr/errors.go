// Package dagerr collects the sentinel errors raised across the scheduler,
// endpoint/edge transport, and addressable queue packages.
package dagerr

import "errors"

// Configuration errors, raised synchronously by graph mutators.
var (
	ErrDuplicateID           = errors.New("dagengine: duplicate node id")
	ErrUnknownNode           = errors.New("dagengine: unknown node id")
	ErrUnknownPort           = errors.New("dagengine: unknown port id")
	ErrUnknownEdge           = errors.New("dagengine: unknown edge id")
	ErrIncompatibleEndpoints = errors.New("dagengine: endpoints cannot connect")
	ErrPortsSealed           = errors.New("dagengine: node already belongs to a graph, ports are fixed")
)

// Endpoint transport errors.
var (
	ErrModeMismatch = errors.New("endpoint: operation not valid for this data flow mode")
)

// Addressable priority queue errors.
var (
	ErrEmptyQueue     = errors.New("pqueue: queue is empty")
	ErrUnknownHandle  = errors.New("pqueue: handle does not belong to this queue")
	ErrInvalidDecrease = errors.New("pqueue: decrease requires a value that is not greater than the current one")
)

// Node lifecycle errors.
var (
	ErrInvalidTransition = errors.New("node: invalid state transition")
)
