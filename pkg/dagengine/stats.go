package dagengine

import (
	"time"

	"github.com/cosmic-gao/sylas-heap/pkg/node"
)

// Stats is a point-in-time snapshot of a Graph's registries, returned by
// GetStats.
type Stats struct {
	TotalNodes int
	TotalEdges int

	// States maps each node.State's String() form to the count of nodes
	// currently in it.
	States map[string]int

	RunningNodes []string
	ReadyNodes   []string

	// NodeElapsed is the time since each node's most recent lifecycle
	// transition, keyed by node id. Useful for diagnosing a node stuck in
	// Running.
	NodeElapsed map[string]time.Duration
}

// GetStats returns a snapshot of the graph's current node/edge counts,
// per-state breakdown, and the running/ready node id lists.
func (g *Graph) GetStats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()

	states := map[string]int{
		"pending":   0,
		"ready":     0,
		"running":   0,
		"completed": 0,
		"failed":    0,
		"cancelled": 0,
	}
	running := make([]string, 0)
	elapsed := make(map[string]time.Duration, len(g.nodes))
	now := time.Now()

	for id, n := range g.nodes {
		states[n.State().String()]++
		if n.State().String() == "running" {
			running = append(running, id)
		}
		if t, ok := g.transitionedAt[id]; ok {
			elapsed[id] = now.Sub(t)
		}
	}

	ready := make([]string, 0, g.ready.Size())
	g.ready.Iterate(func(n *node.Node) bool {
		ready = append(ready, n.ID())
		return true
	})

	return Stats{
		TotalNodes:   len(g.nodes),
		TotalEdges:   len(g.edges),
		States:       states,
		RunningNodes: running,
		ReadyNodes:   ready,
		NodeElapsed:  elapsed,
	}
}
