package node

import "github.com/cosmic-gao/sylas-heap/pkg/dagerr"

// Context is the per-invocation, read-only handle a Runner receives: the
// node being run, its resolved inputs, and a way to push a value through
// a named output endpoint.
type Context struct {
	node   *Node
	inputs map[string]any
}

// NewContext builds a Context around node and its resolved inputs. It is
// exported for use by the scheduler package, which owns invocation.
func NewContext(n *Node, inputs map[string]any) *Context {
	return &Context{node: n, inputs: inputs}
}

// Node returns the node this context was built for.
func (c *Context) Node() *Node { return c.node }

// Inputs returns the full resolved input map (port id -> value).
func (c *Context) Inputs() map[string]any { return c.inputs }

// GetInput returns the value resolved for portID, if any.
func (c *Context) GetInput(portID string) (any, bool) {
	v, ok := c.inputs[portID]
	return v, ok
}

// SetOutput pushes value through the named output endpoint.
func (c *Context) SetOutput(portID string, value any) error {
	out, ok := c.node.GetOutputEndpoint(portID)
	if !ok {
		return dagerr.ErrUnknownPort
	}
	return out.PushData(value)
}

// GetInput is a generic helper that also type-asserts the resolved
// value. It returns the zero value of T and false if the port was
// unresolved or held a value of a different type.
func GetInput[T any](c *Context, portID string) (T, bool) {
	var zero T
	v, ok := c.inputs[portID]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
