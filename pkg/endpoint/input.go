package endpoint

import (
	"context"
	"sync"

	"github.com/cosmic-gao/sylas-heap/pkg/dagerr"
)

// Input is the consuming side of an edge.
type Input struct {
	id    string
	owner Owner
	mode  Mode

	mu       sync.Mutex
	buffer   []any
	upstream []*Output
	awaiters []chan any
}

// NewInput creates an Input endpoint with the given id, owner, and mode.
func NewInput(id string, owner Owner, mode Mode) *Input {
	return &Input{id: id, owner: owner, mode: mode}
}

func (in *Input) ID() string     { return in.id }
func (in *Input) Kind() Kind     { return KindInput }
func (in *Input) Mode() Mode     { return in.mode }
func (in *Input) Owner() Owner   { return in.owner }

// Upstream returns the connected Output endpoints, in connection order.
func (in *Input) Upstream() []*Output {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]*Output, len(in.upstream))
	copy(out, in.upstream)
	return out
}

// CanConnect reports whether other may be wired to this Input. Structurally
// an Input only ever connects to an Output.
func (in *Input) CanConnect(other Endpoint) bool {
	return other != nil && other.Kind() == KindOutput
}

// connect records out as an upstream peer. Idempotent by identity.
func (in *Input) connect(out *Output) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for _, existing := range in.upstream {
		if existing == out {
			return
		}
	}
	in.upstream = append(in.upstream, out)
}

// disconnect removes out from the upstream peer list.
func (in *Input) disconnect(out *Output) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for i, existing := range in.upstream {
		if existing == out {
			in.upstream = append(in.upstream[:i], in.upstream[i+1:]...)
			return
		}
	}
}

// PushData delivers v to this endpoint. Valid only in Push mode. If an
// awaiter is already blocked in WaitForData, the oldest one is resolved
// directly and v is never buffered; otherwise v is appended to the FIFO
// buffer.
func (in *Input) PushData(v any) error {
	if in.mode != Push {
		return dagerr.ErrModeMismatch
	}
	in.mu.Lock()
	if len(in.awaiters) > 0 {
		ch := in.awaiters[0]
		in.awaiters = in.awaiters[1:]
		in.mu.Unlock()
		ch <- v
		return nil
	}
	in.buffer = append(in.buffer, v)
	in.mu.Unlock()
	return nil
}

// PullData retrieves one value. In Push mode it pops the front of the
// local buffer. In Pull mode it asks each upstream Output, in connection
// order, for a value and returns the first one offered.
func (in *Input) PullData() (any, bool) {
	if in.mode == Push {
		in.mu.Lock()
		defer in.mu.Unlock()
		if len(in.buffer) == 0 {
			return nil, false
		}
		v := in.buffer[0]
		in.buffer = in.buffer[1:]
		return v, true
	}

	for _, out := range in.Upstream() {
		if v, ok, err := out.PullData(); err == nil && ok {
			return v, true
		}
	}
	return nil, false
}

// HasData reports whether this endpoint's own buffer is non-empty. A
// Pull-mode endpoint normally never buffers locally; see UpstreamHasData
// for the readiness-relevant check in that mode.
func (in *Input) HasData() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.buffer) > 0
}

// UpstreamHasData reports whether any connected Output endpoint currently
// has buffered data. This is the readiness predicate for a Pull-mode
// Input with incident edges.
func (in *Input) UpstreamHasData() bool {
	for _, out := range in.Upstream() {
		if out.HasData() {
			return true
		}
	}
	return false
}

// WaitForData resolves with the next available value: immediately from
// the buffer if non-empty, otherwise by registering an awaiter that the
// next PushData resolves. It returns ctx.Err() if ctx is cancelled first.
func (in *Input) WaitForData(ctx context.Context) (any, error) {
	in.mu.Lock()
	if len(in.buffer) > 0 {
		v := in.buffer[0]
		in.buffer = in.buffer[1:]
		in.mu.Unlock()
		return v, nil
	}
	ch := make(chan any, 1)
	in.awaiters = append(in.awaiters, ch)
	in.mu.Unlock()

	select {
	case v := <-ch:
		return v, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
