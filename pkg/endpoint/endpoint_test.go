package endpoint

import (
	"context"
	"testing"
	"time"
)

type fakeOwner string

func (f fakeOwner) NodeID() string { return string(f) }

func TestPush_FIFO(t *testing.T) {
	// Testable property 7: a single push edge delivers values in emission
	// order.
	out := NewOutput("out", fakeOwner("producer"), Push)
	in := NewInput("in", fakeOwner("consumer"), Push)
	if err := Wire(out, in); err != nil {
		t.Fatalf("wire: %v", err)
	}

	for _, v := range []int{1, 2, 3} {
		if err := out.PushData(v); err != nil {
			t.Fatalf("push: %v", err)
		}
	}

	for _, want := range []int{1, 2, 3} {
		got, ok := in.PullData()
		if !ok {
			t.Fatalf("expected value, got none")
		}
		if got.(int) != want {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestInput_PushData_ModeMismatch(t *testing.T) {
	in := NewInput("in", fakeOwner("n"), Pull)
	if err := in.PushData(1); err == nil {
		t.Fatalf("expected ModeMismatch pushing into a Pull-mode input")
	}
}

func TestOutput_PullData_ModeMismatch(t *testing.T) {
	out := NewOutput("out", fakeOwner("n"), Push)
	v, ok, err := out.PullData()
	if err == nil {
		t.Fatalf("expected ModeMismatch pulling from a Push-mode output")
	}
	if ok || v != nil {
		t.Fatalf("expected (nil, false) alongside the error, got (%v, %v)", v, ok)
	}
}

func TestOutput_PullData_DrainsBufferInPullMode(t *testing.T) {
	out := NewOutput("out", fakeOwner("n"), Pull)
	if err := out.PushData("buffered"); err != nil {
		t.Fatalf("push: %v", err)
	}
	v, ok, err := out.PullData()
	if err != nil || !ok || v != "buffered" {
		t.Fatalf("got %v,%v,%v want buffered,true,nil", v, ok, err)
	}
	if _, ok, err := out.PullData(); err != nil || ok {
		t.Fatalf("expected (_, false, nil) once drained, got (_, %v, %v)", ok, err)
	}
}

func TestInput_WaitForData_ResolvesFromBuffer(t *testing.T) {
	in := NewInput("in", fakeOwner("n"), Push)
	in.PushData("buffered")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := in.WaitForData(ctx)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if v != "buffered" {
		t.Fatalf("got %v, want buffered", v)
	}
}

func TestInput_WaitForData_ResolvesFromLateAwaiter(t *testing.T) {
	in := NewInput("in", fakeOwner("n"), Push)

	type result struct {
		v   any
		err error
	}
	done := make(chan result, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		v, err := in.WaitForData(ctx)
		done <- result{v, err}
	}()

	time.Sleep(20 * time.Millisecond)
	if err := in.PushData("late"); err != nil {
		t.Fatalf("push: %v", err)
	}

	select {
	case r := <-done:
		if r.err != nil {
			t.Fatalf("wait: %v", r.err)
		}
		if r.v != "late" {
			t.Fatalf("got %v, want late", r.v)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for awaiter to resolve")
	}

	if in.HasData() {
		t.Fatalf("value delivered to awaiter should not also be buffered")
	}
}

func TestPullMode_ChasesUpstream(t *testing.T) {
	out := NewOutput("out", fakeOwner("producer"), Pull)
	in := NewInput("in", fakeOwner("consumer"), Pull)
	if err := Wire(out, in); err != nil {
		t.Fatalf("wire: %v", err)
	}

	out.PushData(1)
	out.PushData(2)

	if !in.UpstreamHasData() {
		t.Fatalf("expected UpstreamHasData true once the producer has buffered values")
	}

	v1, ok := in.PullData()
	if !ok || v1.(int) != 1 {
		t.Fatalf("got %v,%v want 1,true", v1, ok)
	}
	v2, ok := in.PullData()
	if !ok || v2.(int) != 2 {
		t.Fatalf("got %v,%v want 2,true", v2, ok)
	}
	if in.UpstreamHasData() {
		t.Fatalf("expected UpstreamHasData false once drained")
	}
}

func TestOutput_PushMode_FanOutOrderUnspecifiedButAllDelivered(t *testing.T) {
	out := NewOutput("out", fakeOwner("producer"), Push)
	inA := NewInput("a", fakeOwner("a"), Push)
	inB := NewInput("b", fakeOwner("b"), Push)
	Wire(out, inA)
	Wire(out, inB)

	if err := out.PushData("x"); err != nil {
		t.Fatalf("push: %v", err)
	}

	for _, in := range []*Input{inA, inB} {
		v, ok := in.PullData()
		if !ok || v != "x" {
			t.Fatalf("endpoint %s got %v,%v want x,true", in.ID(), v, ok)
		}
	}
}

func TestWire_Idempotent(t *testing.T) {
	out := NewOutput("out", fakeOwner("p"), Push)
	in := NewInput("in", fakeOwner("c"), Push)
	Wire(out, in)
	Wire(out, in)
	if len(out.Downstream()) != 1 {
		t.Fatalf("expected exactly one downstream peer after duplicate wiring, got %d", len(out.Downstream()))
	}
}

func TestUnwire_RemovesPeer(t *testing.T) {
	out := NewOutput("out", fakeOwner("p"), Push)
	in := NewInput("in", fakeOwner("c"), Push)
	Wire(out, in)
	Unwire(out, in)
	if len(out.Downstream()) != 0 || len(in.Upstream()) != 0 {
		t.Fatalf("expected peers removed after Unwire")
	}
}
