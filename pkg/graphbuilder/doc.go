// Package graphbuilder constructs a dagengine.Graph from a declarative
// JSON payload instead of a sequence of AddNode/Connect calls. The payload
// is validated against a bundled JSON Schema before any node.Node or
// edge.Edge is constructed, so a malformed topology is rejected before it
// ever touches the scheduler.
//
// The payload supplies structure only: node ids, port lists, scheduling
// metadata, and edge bindings. It never supplies node behavior. Callers
// pass a Runners map keyed by the node's "runner" field, the same way the
// workflow engine this package is modeled on resolves a node's executor
// from a registry rather than from the payload itself.
package graphbuilder
