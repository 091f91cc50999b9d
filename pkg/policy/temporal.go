package policy

import (
	"cmp"
	"sync"

	"github.com/cosmic-gao/sylas-heap/pkg/node"
)

// Temporal orders nodes by insertion order into the graph: first added,
// first dequeued. It implements MutationAware so the graph can notify it
// of additions via OnNodeAdded.
type Temporal struct {
	tb *tieBreak

	mu   sync.Mutex
	seq  map[string]int
	next int
}

// NewTemporal creates a Temporal scheduling policy.
func NewTemporal() *Temporal {
	return &Temporal{tb: newTieBreak(), seq: make(map[string]int)}
}

// OnNodeAdded implements MutationAware.
func (p *Temporal) OnNodeAdded(n *node.Node) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, seen := p.seq[n.ID()]; seen {
		return
	}
	p.seq[n.ID()] = p.next
	p.next++
}

// Compare implements Policy.
func (p *Temporal) Compare(a, b *node.Node) int {
	p.mu.Lock()
	sa, okA := p.seq[a.ID()]
	sb, okB := p.seq[b.ID()]
	p.mu.Unlock()

	if okA && okB {
		if d := cmp.Compare(sa, sb); d != 0 {
			return d
		}
	} else if okA != okB {
		// A node never observed via OnNodeAdded sorts after any node
		// that was; this should not arise when the graph notifies
		// Temporal from addNode as documented.
		if okA {
			return -1
		}
		return 1
	}
	return p.tb.compare(a.ID(), b.ID())
}
