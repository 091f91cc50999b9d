// Package dagengine implements the scheduler: a registry of nodes and
// edges, readiness tracking, a priority-ordered dispatch loop bounded by a
// concurrency budget, and dynamic mutation of a live graph.
//
// A Graph owns its nodes and a parallel index of edges. Nodes become
// Ready as their readiness predicate is satisfied (see pkg/node), are
// held in an addressable priority queue (pkg/pqueue) ordered by the
// configured pkg/policy, and are dispatched by Execute as concurrency
// slots free up. Completing a node re-evaluates the readiness of every
// node downstream of it, so the dispatch loop advances the graph
// asynchronously rather than in synchronized levels.
//
// Execute aborts on the first node failure but does not forcibly cancel
// nodes already running: it stops admitting new work and awaits the
// nodes already in flight, matching the cooperative-cancellation model
// of the rest of the package. A caller wanting fail-fast behavior should
// call Clear on rejection.
package dagengine
