package graphbuilder

// GraphSpec is the parsed form of a graph payload: a set of node
// declarations and the edges binding them, the declarative counterpart
// to a sequence of Graph.AddNode/Graph.Connect calls.
type GraphSpec struct {
	WorkflowID string     `json:"workflow_id,omitempty"`
	Nodes      []NodeSpec `json:"nodes"`
	Edges      []EdgeSpec `json:"edges,omitempty"`
}

// NodeSpec declares one node: its id, the runner it resolves to, its
// scheduling metadata, and its port list.
type NodeSpec struct {
	ID        string         `json:"id"`
	Runner    string         `json:"runner"`
	Priority  int            `json:"priority,omitempty"`
	Cost      int            `json:"cost,omitempty"`
	TimeoutMS int            `json:"timeout_ms,omitempty"`
	Retries   int            `json:"retries,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Inputs    []PortSpec     `json:"inputs,omitempty"`
	Outputs   []PortSpec     `json:"outputs,omitempty"`
}

// PortSpec declares one endpoint: its id and transport mode. Mode
// defaults to "push" when omitted.
type PortSpec struct {
	ID   string `json:"id"`
	Mode string `json:"mode,omitempty"`
}

// EdgeSpec declares one binding between a source node's output port and
// a target node's input port. ID is optional and Build does not use it:
// the edge always gets its canonical id, derived by edge.New.
type EdgeSpec struct {
	ID         string `json:"id,omitempty"`
	Source     string `json:"source"`
	SourcePort string `json:"source_port"`
	Target     string `json:"target"`
	TargetPort string `json:"target_port"`
}
