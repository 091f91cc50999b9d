package node

import (
	"context"
	"testing"

	"github.com/cosmic-gao/sylas-heap/pkg/dagerr"
	"github.com/cosmic-gao/sylas-heap/pkg/endpoint"
)

func noopRunner() Runner {
	return RunnerFunc(func(ctx context.Context, nc *Context) error { return nil })
}

func TestNew_Defaults(t *testing.T) {
	n := New("a", noopRunner())
	if n.Priority() != 0 || n.Cost() != 1 || n.Retries() != 0 {
		t.Fatalf("unexpected defaults: priority=%d cost=%d retries=%d", n.Priority(), n.Cost(), n.Retries())
	}
	if n.State() != Pending {
		t.Fatalf("new node state = %v, want Pending", n.State())
	}
}

func TestOptions(t *testing.T) {
	n := New("a", noopRunner(), WithPriority(5), WithCost(3), WithRetries(2))
	if n.Priority() != 5 || n.Cost() != 3 || n.Retries() != 2 {
		t.Fatalf("options not applied: %+v", n)
	}
}

func TestIsReady_NoInputs(t *testing.T) {
	n := New("a", noopRunner())
	if !n.IsReady() {
		t.Fatalf("node with no inputs should be ready")
	}
}

func TestIsReady_UnconnectedInputTreatedReady(t *testing.T) {
	n := New("a", noopRunner())
	n.AddInputEndpoint("in", endpoint.Push)
	if !n.IsReady() {
		t.Fatalf("unconnected input endpoint should not block readiness")
	}
}

func TestIsReady_PushWaitsForData(t *testing.T) {
	n := New("a", noopRunner())
	in, _ := n.AddInputEndpoint("in", endpoint.Push)
	out := endpoint.NewOutput("out", fakeOwner("p"), endpoint.Push)
	endpoint.Wire(out, in)

	if n.IsReady() {
		t.Fatalf("push input with no data should not be ready")
	}
	out.PushData(1)
	if !n.IsReady() {
		t.Fatalf("push input with buffered data should be ready")
	}
}

func TestIsReady_PullWaitsForUpstreamData(t *testing.T) {
	n := New("a", noopRunner())
	in, _ := n.AddInputEndpoint("in", endpoint.Pull)
	out := endpoint.NewOutput("out", fakeOwner("p"), endpoint.Pull)
	endpoint.Wire(out, in)

	if n.IsReady() {
		t.Fatalf("pull input with no upstream data should not be ready")
	}
	out.PushData(1)
	if !n.IsReady() {
		t.Fatalf("pull input with upstream data should be ready")
	}
}

func TestAddEndpoint_SealedRejectsNewPorts(t *testing.T) {
	n := New("a", noopRunner())
	n.Seal()
	if _, err := n.AddInputEndpoint("in", endpoint.Push); err != dagerr.ErrPortsSealed {
		t.Fatalf("expected ErrPortsSealed, got %v", err)
	}
}

func TestAddEndpoint_DuplicateID(t *testing.T) {
	n := New("a", noopRunner())
	n.AddInputEndpoint("in", endpoint.Push)
	if _, err := n.AddInputEndpoint("in", endpoint.Push); err != dagerr.ErrDuplicateID {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestLifecycle_HappyPath(t *testing.T) {
	n := New("a", noopRunner())
	if err := n.TransitionToReady(); err != nil {
		t.Fatalf("ready: %v", err)
	}
	ctx, err := n.BeginRunning(context.Background())
	if err != nil {
		t.Fatalf("running: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatalf("context should not be cancelled yet")
	}
	if err := n.Complete(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if n.State() != Completed {
		t.Fatalf("state = %v, want Completed", n.State())
	}
}

func TestLifecycle_FailPath(t *testing.T) {
	n := New("a", noopRunner())
	n.TransitionToReady()
	n.BeginRunning(context.Background())
	if err := n.Fail(nil); err != nil {
		t.Fatalf("fail: %v", err)
	}
	if n.State() != Failed {
		t.Fatalf("state = %v, want Failed", n.State())
	}
}

func TestLifecycle_InvalidTransition(t *testing.T) {
	n := New("a", noopRunner())
	// Cannot go straight to Running without being Ready first.
	if _, err := n.BeginRunning(context.Background()); err != dagerr.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCancel_FromRunningCancelsContext(t *testing.T) {
	n := New("a", noopRunner())
	n.TransitionToReady()
	ctx, _ := n.BeginRunning(context.Background())

	n.Cancel()
	if n.State() != Cancelled {
		t.Fatalf("state = %v, want Cancelled", n.State())
	}
	select {
	case <-ctx.Done():
	default:
		t.Fatalf("expected cancellation context to be Done")
	}
}

func TestCancel_FromTerminalIsNoOp(t *testing.T) {
	n := New("a", noopRunner())
	n.TransitionToReady()
	n.BeginRunning(context.Background())
	n.Complete()
	n.Cancel()
	if n.State() != Completed {
		t.Fatalf("state = %v, want Completed (cancel should not affect terminal states)", n.State())
	}
}

func TestGetInDegreeOutDegree(t *testing.T) {
	a := New("a", noopRunner())
	b := New("b", noopRunner())
	aOut, _ := a.AddOutputEndpoint("out", endpoint.Push)
	bIn, _ := b.AddInputEndpoint("in", endpoint.Push)
	endpoint.Wire(aOut, bIn)

	if a.GetOutDegree() != 1 {
		t.Fatalf("a.GetOutDegree() = %d, want 1", a.GetOutDegree())
	}
	if b.GetInDegree() != 1 {
		t.Fatalf("b.GetInDegree() = %d, want 1", b.GetInDegree())
	}
}

func TestContext_SetOutputAndGetInput(t *testing.T) {
	n := New("a", noopRunner())
	out, _ := n.AddOutputEndpoint("out", endpoint.Pull)

	nc := NewContext(n, map[string]any{"in": 7})
	v, ok := GetInput[int](nc, "in")
	if !ok || v != 7 {
		t.Fatalf("GetInput = %v,%v want 7,true", v, ok)
	}

	if err := nc.SetOutput("out", "hello"); err != nil {
		t.Fatalf("set output: %v", err)
	}
	got, ok, err := out.PullData()
	if err != nil || !ok || got != "hello" {
		t.Fatalf("pulled %v,%v,%v want hello,true,nil", got, ok, err)
	}
}

func TestContext_SetOutput_UnknownPort(t *testing.T) {
	n := New("a", noopRunner())
	nc := NewContext(n, nil)
	if err := nc.SetOutput("missing", 1); err != dagerr.ErrUnknownPort {
		t.Fatalf("expected ErrUnknownPort, got %v", err)
	}
}

type fakeOwner string

func (f fakeOwner) NodeID() string { return string(f) }
