package policy

import (
	"cmp"

	"github.com/cosmic-gao/sylas-heap/pkg/node"
)

// Default orders nodes by priority ascending, then by in-degree
// ascending (favoring nodes with fewer remaining dependencies), then by
// cost ascending, with a deterministic tie-break on node id.
type Default struct {
	tb *tieBreak
}

// NewDefault creates the default scheduling policy.
func NewDefault() *Default {
	return &Default{tb: newTieBreak()}
}

// Compare implements Policy.
func (p *Default) Compare(a, b *node.Node) int {
	if d := cmp.Compare(a.Priority(), b.Priority()); d != 0 {
		return d
	}
	if d := cmp.Compare(a.GetInDegree(), b.GetInDegree()); d != 0 {
		return d
	}
	if d := cmp.Compare(a.Cost(), b.Cost()); d != 0 {
		return d
	}
	return p.tb.compare(a.ID(), b.ID())
}
