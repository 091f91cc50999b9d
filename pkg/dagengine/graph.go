package dagengine

import (
	"context"
	"sync"
	"time"

	"github.com/cosmic-gao/sylas-heap/pkg/config"
	"github.com/cosmic-gao/sylas-heap/pkg/dagerr"
	"github.com/cosmic-gao/sylas-heap/pkg/edge"
	"github.com/cosmic-gao/sylas-heap/pkg/logging"
	"github.com/cosmic-gao/sylas-heap/pkg/node"
	"github.com/cosmic-gao/sylas-heap/pkg/observer"
	"github.com/cosmic-gao/sylas-heap/pkg/policy"
	"github.com/cosmic-gao/sylas-heap/pkg/pqueue"
	"github.com/cosmic-gao/sylas-heap/pkg/telemetry"
)

// Graph is the registry of nodes and edges plus the dispatch loop that
// drives them to completion. The zero value is not usable; construct
// one with New.
type Graph struct {
	mu sync.Mutex

	cfg   *config.Config
	nodes map[string]*node.Node
	edges map[string]*edge.Edge

	ready   *pqueue.Queue[*node.Node]
	handles map[string]*pqueue.Handle[*node.Node]

	// transitionedAt records, per node id, the time of its most recent
	// lifecycle transition. GetStats surfaces this as elapsed-since-
	// transition, useful for spotting a node stuck in Running.
	transitionedAt map[string]time.Time

	policy policy.Policy

	observerMgr *observer.Manager
	logger      *logging.Logger
	telemetry   *telemetry.Provider

	executionID string
}

// New creates a Graph configured by cfg. A nil cfg falls back to
// config.Default(). Returns an error if cfg fails Validate.
func New(cfg *config.Config) (*Graph, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Graph{
		cfg:            cfg.Clone(),
		nodes:          make(map[string]*node.Node),
		edges:          make(map[string]*edge.Edge),
		handles:        make(map[string]*pqueue.Handle[*node.Node]),
		transitionedAt: make(map[string]time.Time),
		policy:         cfg.SchedulingStrategy,
		observerMgr:    observer.NewManager(),
		logger:         logging.New(logging.DefaultConfig()),
	}
	g.ready = pqueue.New(g.comparePolicy)
	return g, nil
}

func (g *Graph) comparePolicy(a, b *node.Node) int {
	return g.policy.Compare(a, b)
}

// SetPolicy swaps the active scheduling policy. Must be called before
// Execute, or between two Execute calls on a reused graph — not
// concurrently with a running Execute.
func (g *Graph) SetPolicy(p policy.Policy) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p != nil {
		g.policy = p
	}
}

// RegisterObserver adds an observer to receive execution events. Returns
// the graph for method chaining.
func (g *Graph) RegisterObserver(obs observer.Observer) *Graph {
	if obs != nil {
		g.observerMgr.Register(obs)
	}
	return g
}

// SetLogger sets the structured logger used by the dispatch loop.
// Returns the graph for method chaining.
func (g *Graph) SetLogger(l *logging.Logger) *Graph {
	if l != nil {
		g.logger = l
	}
	return g
}

// SetTelemetry attaches an OpenTelemetry provider; the dispatch loop
// records ready-queue depth, running-node count, and per-node/per-
// execute duration metrics through it. Returns the graph for method
// chaining.
func (g *Graph) SetTelemetry(p *telemetry.Provider) *Graph {
	g.telemetry = p
	return g
}

// AddNode registers n with the graph. Fails with ErrDuplicateID if n's
// id is already present. Notifies the active policy of the addition if
// it implements MutationAware, then evaluates n's readiness — a node
// with no input endpoints (or none with incident edges) becomes Ready
// immediately.
func (g *Graph) AddNode(n *node.Node) error {
	if n == nil {
		return dagerr.ErrUnknownNode
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[n.ID()]; exists {
		return dagerr.ErrDuplicateID
	}

	g.nodes[n.ID()] = n
	n.Seal()
	g.transitionedAt[n.ID()] = time.Now()

	if ma, ok := g.policy.(policy.MutationAware); ok {
		ma.OnNodeAdded(n)
	}

	g.evaluateReadinessLocked(n)
	return nil
}

// RemoveNode removes n from the graph. A no-op if the id is absent. If
// the node is queued, its ready-queue handle is deleted; Cancel is
// invoked on the node regardless of state (terminal states ignore it).
// Every edge incident to the node is removed via removeEdgeLocked,
// which also re-evaluates the readiness of the node at its far end.
func (g *Graph) RemoveNode(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil
	}

	if h, queued := g.handles[id]; queued {
		_ = g.ready.Delete(h)
		delete(g.handles, id)
	}
	n.Cancel()
	g.transitionedAt[id] = time.Now()

	var incident []string
	for eid, e := range g.edges {
		if e.Source.Owner().NodeID() == id || e.Target.Owner().NodeID() == id {
			incident = append(incident, eid)
		}
	}
	for _, eid := range incident {
		g.removeEdgeLocked(eid)
	}

	delete(g.nodes, id)
	delete(g.transitionedAt, id)
	return nil
}

// Connect wires the named output port of srcNodeID to the named input
// port of tgtNodeID and registers the resulting edge. Fails with
// ErrUnknownNode/ErrUnknownPort if either endpoint cannot be resolved,
// or ErrIncompatibleEndpoints if the pair cannot connect. Does not
// re-evaluate readiness: a newly incident edge can only delay a target's
// readiness, never satisfy it early, since the target was not waiting
// on an edge that did not yet exist.
func (g *Graph) Connect(srcNodeID, srcPort, tgtNodeID, tgtPort string) (*edge.Edge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	srcNode, ok := g.nodes[srcNodeID]
	if !ok {
		return nil, dagerr.ErrUnknownNode
	}
	tgtNode, ok := g.nodes[tgtNodeID]
	if !ok {
		return nil, dagerr.ErrUnknownNode
	}

	out, ok := srcNode.GetOutputEndpoint(srcPort)
	if !ok {
		return nil, dagerr.ErrUnknownPort
	}
	in, ok := tgtNode.GetInputEndpoint(tgtPort)
	if !ok {
		return nil, dagerr.ErrUnknownPort
	}

	e, err := edge.New(out, in)
	if err != nil {
		return nil, err
	}

	g.edges[e.ID()] = e
	return e, nil
}

// RemoveEdge removes the edge identified by id. Fails with
// ErrUnknownEdge if no such edge is registered.
func (g *Graph) RemoveEdge(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.edges[id]; !ok {
		return dagerr.ErrUnknownEdge
	}
	g.removeEdgeLocked(id)
	return nil
}

// removeEdgeLocked unwires and deregisters the edge, then re-evaluates
// the readiness of the node at its target end. Callers must hold g.mu.
func (g *Graph) removeEdgeLocked(id string) {
	e, ok := g.edges[id]
	if !ok {
		return
	}
	targetNodeID := e.Target.Owner().NodeID()
	e.Unwire()
	delete(g.edges, id)

	if target, ok := g.nodes[targetNodeID]; ok {
		g.evaluateReadinessLocked(target)
	}
}

// evaluateReadinessLocked transitions n from Pending to Ready and
// enqueues it if its readiness predicate now holds. A no-op for nodes
// not currently Pending, or whose predicate does not yet hold. Callers
// must hold g.mu.
func (g *Graph) evaluateReadinessLocked(n *node.Node) {
	if n.State() != node.Pending {
		return
	}
	if !n.IsReady() {
		return
	}
	if err := n.TransitionToReady(); err != nil {
		return
	}
	g.transitionedAt[n.ID()] = time.Now()
	g.handles[n.ID()] = g.ready.Insert(n)
	g.notifyNodeReady(n)
}

// Clear cancels every node currently tracked and empties every
// registry: nodes, edges, the ready queue, and the handle index.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, n := range g.nodes {
		n.Cancel()
	}
	g.ready.Clear()
	g.handles = make(map[string]*pqueue.Handle[*node.Node])
	g.nodes = make(map[string]*node.Node)
	g.edges = make(map[string]*edge.Edge)
	g.transitionedAt = make(map[string]time.Time)
}

// notifyNodeReady notifies observers that a node transitioned to Ready.
// Called from evaluateReadinessLocked, which may run outside of
// Execute (e.g. from AddNode before the graph is ever executed), so it
// uses a background context rather than threading one through every
// mutator.
func (g *Graph) notifyNodeReady(n *node.Node) {
	if !g.observerMgr.HasObservers() {
		return
	}
	g.observerMgr.Notify(context.Background(), observer.Event{
		Type:        observer.EventNodeReady,
		Status:      observer.StatusStarted,
		Timestamp:   time.Now(),
		ExecutionID: g.executionID,
		NodeID:      n.ID(),
	})
}
