package graphbuilder

import (
	"context"
	"testing"

	"github.com/cosmic-gao/sylas-heap/pkg/node"
)

func passthrough(field string, fn func(any) any) node.Runner {
	return node.RunnerFunc(func(ctx context.Context, nc *node.Context) error {
		v, _ := nc.GetInput(field)
		return nc.SetOutput("out", fn(v))
	})
}

const linearPayload = `{
  "workflow_id": "wf-1",
  "nodes": [
    {"id": "source", "runner": "source", "outputs": [{"id": "out"}]},
    {"id": "double", "runner": "double",
     "inputs": [{"id": "in"}], "outputs": [{"id": "out"}]},
    {"id": "sink", "runner": "sink", "inputs": [{"id": "in"}]}
  ],
  "edges": [
    {"source": "source", "source_port": "out", "target": "double", "target_port": "in"},
    {"source": "double", "source_port": "out", "target": "sink", "target_port": "in"}
  ]
}`

func TestBuild_ConstructsConnectedGraph(t *testing.T) {
	runners := map[string]node.Runner{
		"source": node.RunnerFunc(func(ctx context.Context, nc *node.Context) error {
			return nc.SetOutput("out", 10)
		}),
		"double": passthrough("in", func(v any) any { return v.(int) * 2 }),
		"sink":   node.RunnerFunc(func(ctx context.Context, nc *node.Context) error { return nil }),
	}

	g, spec, err := Build([]byte(linearPayload), runners, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if spec.WorkflowID != "wf-1" {
		t.Errorf("WorkflowID = %q, want wf-1", spec.WorkflowID)
	}

	stats := g.GetStats()
	if stats.TotalNodes != 3 {
		t.Errorf("TotalNodes = %d, want 3", stats.TotalNodes)
	}
	if stats.TotalEdges != 2 {
		t.Errorf("TotalEdges = %d, want 2", stats.TotalEdges)
	}

	res, err := g.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.NodesExecuted != 3 {
		t.Errorf("NodesExecuted = %d, want 3", res.NodesExecuted)
	}
}

func TestBuild_UnknownRunner(t *testing.T) {
	runners := map[string]node.Runner{
		"source": node.RunnerFunc(func(ctx context.Context, nc *node.Context) error { return nil }),
	}
	_, _, err := Build([]byte(linearPayload), runners, nil)
	if err == nil {
		t.Fatal("expected an error for an undeclared runner")
	}
}

func TestBuild_SchemaRejectsMissingRequiredFields(t *testing.T) {
	bad := `{"nodes": [{"id": "a"}]}`
	_, _, err := Build([]byte(bad), nil, nil)
	if err == nil {
		t.Fatal("expected schema validation to reject a node missing 'runner'")
	}
}

func TestBuild_EdgeToUndeclaredNodeFails(t *testing.T) {
	payload := `{
	  "nodes": [{"id": "a", "runner": "r", "outputs": [{"id": "out"}]}],
	  "edges": [{"source": "a", "source_port": "out", "target": "ghost", "target_port": "in"}]
	}`
	runners := map[string]node.Runner{
		"r": node.RunnerFunc(func(ctx context.Context, nc *node.Context) error { return nil }),
	}
	_, _, err := Build([]byte(payload), runners, nil)
	if err == nil {
		t.Fatal("expected Connect to fail for an edge targeting an undeclared node")
	}
}

func TestBuild_CyclicPayloadRejected(t *testing.T) {
	payload := `{
	  "nodes": [
	    {"id": "a", "runner": "r", "inputs": [{"id": "in"}], "outputs": [{"id": "out"}]},
	    {"id": "b", "runner": "r", "inputs": [{"id": "in"}], "outputs": [{"id": "out"}]}
	  ],
	  "edges": [
	    {"source": "a", "source_port": "out", "target": "b", "target_port": "in"},
	    {"source": "b", "source_port": "out", "target": "a", "target_port": "in"}
	  ]
	}`
	runners := map[string]node.Runner{
		"r": node.RunnerFunc(func(ctx context.Context, nc *node.Context) error { return nil }),
	}
	_, _, err := Build([]byte(payload), runners, nil)
	if err == nil {
		t.Fatal("expected a cyclic payload to be rejected before construction")
	}
}

func TestParse_RoundTripsEdgeFields(t *testing.T) {
	spec, err := Parse([]byte(linearPayload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(spec.Nodes) != 3 || len(spec.Edges) != 2 {
		t.Fatalf("got %d nodes, %d edges", len(spec.Nodes), len(spec.Edges))
	}
	if spec.Edges[0].Source != "source" || spec.Edges[0].Target != "double" {
		t.Errorf("unexpected first edge: %+v", spec.Edges[0])
	}
}

func TestValidate_ReportsMissingRequiredField(t *testing.T) {
	bad := `{"nodes": [{"runner": "x"}]}`
	msgs, err := Validate([]byte(bad))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(msgs) == 0 {
		t.Fatal("expected at least one validation error for a node missing 'id'")
	}
}
