// Package edge implements the immutable binding between one Output
// endpoint and one Input endpoint.
package edge

import (
	"fmt"

	"github.com/cosmic-gao/sylas-heap/pkg/endpoint"
)

// Edge is a directed conduit from a Source Output endpoint to a Target
// Input endpoint. Edges are immutable once created; rerouting means
// deleting and recreating one.
type Edge struct {
	id     string
	Source *endpoint.Output
	Target *endpoint.Input
}

// CanonicalID derives the deterministic id for an edge between the named
// ports: "<srcNode>.<srcPort>-><tgtNode>.<tgtPort>".
func CanonicalID(srcNode, srcPort, tgtNode, tgtPort string) string {
	return fmt.Sprintf("%s.%s->%s.%s", srcNode, srcPort, tgtNode, tgtPort)
}

// New wires source to target and returns the resulting Edge. The edge id
// is derived canonically from the endpoints' owning node ids and port
// ids.
func New(source *endpoint.Output, target *endpoint.Input) (*Edge, error) {
	if err := endpoint.Wire(source, target); err != nil {
		return nil, err
	}
	id := CanonicalID(source.Owner().NodeID(), source.ID(), target.Owner().NodeID(), target.ID())
	return &Edge{id: id, Source: source, Target: target}, nil
}

// ID returns this edge's canonical identifier.
func (e *Edge) ID() string { return e.id }

// TransferData delegates to the target endpoint's PushData. It exists so
// that callers wishing to drive an edge directly (bypassing the
// source's own push fan-out, e.g. in tests) have a single entry point to
// do so, and so that future per-edge metadata has somewhere to live
// without touching the endpoint types.
func (e *Edge) TransferData(v any) error {
	return e.Target.PushData(v)
}

// Unwire disconnects this edge's endpoints from one another. Called by
// the graph when the edge is removed from its registry.
func (e *Edge) Unwire() {
	endpoint.Unwire(e.Source, e.Target)
}
