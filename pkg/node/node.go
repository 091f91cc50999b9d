package node

import (
	"context"
	"sync"
	"time"

	"github.com/cosmic-gao/sylas-heap/pkg/dagerr"
	"github.com/cosmic-gao/sylas-heap/pkg/endpoint"
)

// State is one of the six states a Node can occupy during its lifetime.
type State int

const (
	Pending State = iota
	Ready
	Running
	Completed
	Failed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Runner is the user-supplied work function for a node.
type Runner interface {
	Run(ctx context.Context, nc *Context) error
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context, nc *Context) error

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, nc *Context) error { return f(ctx, nc) }

const (
	defaultCost    = 1
	defaultTimeout = 30 * time.Second
)

// Node is a vertex in the dataflow graph: a stable id, scheduling metadata,
// an ordered set of input/output ports, and a lifecycle state.
type Node struct {
	id       string
	runner   Runner
	priority int
	cost     int
	timeout  time.Duration
	retries  int
	metadata map[string]any

	mu          sync.Mutex
	inputs      map[string]*endpoint.Input
	inputOrder  []string
	outputs     map[string]*endpoint.Output
	outputOrder []string
	sealed      bool
	state       State
	cancelFunc  context.CancelFunc
}

// Option configures optional Node fields at construction time.
type Option func(*Node)

func WithPriority(p int) Option { return func(n *Node) { n.priority = p } }
func WithCost(c int) Option     { return func(n *Node) { n.cost = c } }
func WithTimeout(d time.Duration) Option {
	return func(n *Node) { n.timeout = d }
}
func WithRetries(r int) Option { return func(n *Node) { n.retries = r } }
func WithMetadata(m map[string]any) Option {
	return func(n *Node) {
		cp := make(map[string]any, len(m))
		for k, v := range m {
			cp[k] = v
		}
		n.metadata = cp
	}
}

// New creates a Pending node identified by id, backed by runner, with any
// Options applied over the defaults (cost=1, timeout=30s, priority=0,
// retries=0).
func New(id string, runner Runner, opts ...Option) *Node {
	n := &Node{
		id:      id,
		runner:  runner,
		cost:    defaultCost,
		timeout: defaultTimeout,
		state:   Pending,
		inputs:  make(map[string]*endpoint.Input),
		outputs: make(map[string]*endpoint.Output),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NodeID implements endpoint.Owner.
func (n *Node) NodeID() string { return n.id }

func (n *Node) ID() string                 { return n.id }
func (n *Node) Priority() int               { return n.priority }
func (n *Node) Cost() int                   { return n.cost }
func (n *Node) Timeout() time.Duration      { return n.timeout }
func (n *Node) Retries() int                { return n.retries }
func (n *Node) Metadata() map[string]any    { return n.metadata }

// State returns the node's current lifecycle state.
func (n *Node) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Seal fixes the node's set of ports. Called by the graph when the node
// is added; AddInputEndpoint/AddOutputEndpoint fail afterwards.
func (n *Node) Seal() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sealed = true
}

// AddInputEndpoint creates and registers a new Input port. Fails with
// ErrPortsSealed once the node belongs to a graph, or ErrDuplicateID if
// the port id is already in use.
func (n *Node) AddInputEndpoint(id string, mode endpoint.Mode) (*endpoint.Input, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sealed {
		return nil, dagerr.ErrPortsSealed
	}
	if _, exists := n.inputs[id]; exists {
		return nil, dagerr.ErrDuplicateID
	}
	in := endpoint.NewInput(id, n, mode)
	n.inputs[id] = in
	n.inputOrder = append(n.inputOrder, id)
	return in, nil
}

// AddOutputEndpoint creates and registers a new Output port.
func (n *Node) AddOutputEndpoint(id string, mode endpoint.Mode) (*endpoint.Output, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sealed {
		return nil, dagerr.ErrPortsSealed
	}
	if _, exists := n.outputs[id]; exists {
		return nil, dagerr.ErrDuplicateID
	}
	out := endpoint.NewOutput(id, n, mode)
	n.outputs[id] = out
	n.outputOrder = append(n.outputOrder, id)
	return out, nil
}

// GetInputEndpoint looks up an input port by id.
func (n *Node) GetInputEndpoint(id string) (*endpoint.Input, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	in, ok := n.inputs[id]
	return in, ok
}

// GetOutputEndpoint looks up an output port by id.
func (n *Node) GetOutputEndpoint(id string) (*endpoint.Output, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	out, ok := n.outputs[id]
	return out, ok
}

// GetInputEndpoints returns every input port in insertion order.
func (n *Node) GetInputEndpoints() []*endpoint.Input {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*endpoint.Input, len(n.inputOrder))
	for i, id := range n.inputOrder {
		out[i] = n.inputs[id]
	}
	return out
}

// GetOutputEndpoints returns every output port in insertion order.
func (n *Node) GetOutputEndpoints() []*endpoint.Output {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*endpoint.Output, len(n.outputOrder))
	for i, id := range n.outputOrder {
		out[i] = n.outputs[id]
	}
	return out
}

// GetInDegree is the number of edges incident to any of this node's
// input endpoints.
func (n *Node) GetInDegree() int {
	total := 0
	for _, in := range n.GetInputEndpoints() {
		total += len(in.Upstream())
	}
	return total
}

// GetOutDegree is the number of edges incident to any of this node's
// output endpoints.
func (n *Node) GetOutDegree() int {
	total := 0
	for _, out := range n.GetOutputEndpoints() {
		total += len(out.Downstream())
	}
	return total
}

// IsReady evaluates the readiness predicate from the node's current
// endpoint state, independent of its lifecycle state. The caller (the
// graph) only acts on the result while the node is Pending.
func (n *Node) IsReady() bool {
	inputs := n.GetInputEndpoints()
	if len(inputs) == 0 {
		return true
	}
	for _, in := range inputs {
		if len(in.Upstream()) == 0 {
			continue // no incident edges: treated as satisfied
		}
		switch in.Mode() {
		case endpoint.Push:
			if !in.HasData() {
				return false
			}
		case endpoint.Pull:
			if !in.UpstreamHasData() {
				return false
			}
		}
	}
	return true
}

// TransitionToReady moves a Pending node to Ready.
func (n *Node) TransitionToReady() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != Pending {
		return dagerr.ErrInvalidTransition
	}
	n.state = Ready
	return nil
}

// BeginRunning moves a Ready node to Running and returns a context
// derived from parent that Cancel will cancel.
func (n *Node) BeginRunning(parent context.Context) (context.Context, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != Ready {
		return nil, dagerr.ErrInvalidTransition
	}
	ctx, cancel := context.WithCancel(parent)
	n.state = Running
	n.cancelFunc = cancel
	return ctx, nil
}

// Complete moves a Running node to Completed.
func (n *Node) Complete() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != Running {
		return dagerr.ErrInvalidTransition
	}
	n.state = Completed
	n.cancelFunc = nil
	return nil
}

// Fail moves a Running node to Failed. The error itself is not retained
// on the node; callers surface it via the scheduler's result.
func (n *Node) Fail(_ error) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != Running {
		return dagerr.ErrInvalidTransition
	}
	n.state = Failed
	n.cancelFunc = nil
	return nil
}

// Cancel signals the node's cancellation token (if Running) and moves it
// to Cancelled from any non-terminal state. It is a no-op from a
// terminal state.
func (n *Node) Cancel() {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch n.state {
	case Pending, Ready, Running:
		if n.cancelFunc != nil {
			n.cancelFunc()
		}
		n.state = Cancelled
		n.cancelFunc = nil
	}
}

// Run invokes the node's work function; the scheduler calls it once per
// dispatch.
func (n *Node) Run(ctx context.Context, nc *Context) error {
	return n.runner.Run(ctx, nc)
}
