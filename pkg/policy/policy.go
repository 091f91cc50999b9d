// Package policy implements the scheduling policy contract: a total
// order over ready nodes that the dispatch loop consults at every
// enqueue.
package policy

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cosmic-gao/sylas-heap/pkg/node"
)

// Policy induces a total order over nodes. Compare must return a
// negative number if a should dequeue before b, zero if they are
// equivalent, and a positive number if a should dequeue after b.
// Implementations must be pure functions of each node's current
// observable attributes; any hidden state (such as Temporal's insertion
// sequence) must be explicitly tracked by the policy itself.
type Policy interface {
	Compare(a, b *node.Node) int
}

// MutationAware is an optional capability a Policy may implement when it
// needs to observe graph mutations, such as Temporal tracking insertion
// order. The graph consults this via a type assertion from addNode.
type MutationAware interface {
	OnNodeAdded(n *node.Node)
}

// tieBreak provides a deterministic, locale-aware fallback comparison
// over node ids, used whenever a policy's primary ordering keys compare
// equal. golang.org/x/text/collate.Collator is not safe for concurrent
// use, so each tieBreak instance owns a mutex.
type tieBreak struct {
	mu  sync.Mutex
	col *collate.Collator
}

func newTieBreak() *tieBreak {
	return &tieBreak{col: collate.New(language.Und)}
}

func (t *tieBreak) compare(a, b string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.col.CompareString(a, b)
}
