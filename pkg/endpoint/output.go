package endpoint

import (
	"sync"

	"github.com/cosmic-gao/sylas-heap/pkg/dagerr"
)

// Output is the producing side of an edge.
type Output struct {
	id    string
	owner Owner
	mode  Mode

	mu         sync.Mutex
	buffer     []any
	downstream []*Input
}

// NewOutput creates an Output endpoint with the given id, owner, and mode.
func NewOutput(id string, owner Owner, mode Mode) *Output {
	return &Output{id: id, owner: owner, mode: mode}
}

func (out *Output) ID() string   { return out.id }
func (out *Output) Kind() Kind   { return KindOutput }
func (out *Output) Mode() Mode   { return out.mode }
func (out *Output) Owner() Owner { return out.owner }

// Downstream returns the connected Input endpoints, in connection order.
func (out *Output) Downstream() []*Input {
	out.mu.Lock()
	defer out.mu.Unlock()
	ins := make([]*Input, len(out.downstream))
	copy(ins, out.downstream)
	return ins
}

// CanConnect reports whether other may be wired to this Output.
// Structurally an Output only ever connects to an Input.
func (out *Output) CanConnect(other Endpoint) bool {
	return other != nil && other.Kind() == KindInput
}

func (out *Output) connect(in *Input) {
	out.mu.Lock()
	defer out.mu.Unlock()
	for _, existing := range out.downstream {
		if existing == in {
			return
		}
	}
	out.downstream = append(out.downstream, in)
}

func (out *Output) disconnect(in *Input) {
	out.mu.Lock()
	defer out.mu.Unlock()
	for i, existing := range out.downstream {
		if existing == in {
			out.downstream = append(out.downstream[:i], out.downstream[i+1:]...)
			return
		}
	}
}

// PushData delivers v downstream. In Push mode it forwards v to every
// connected Input's PushData concurrently, waiting for all fan-out
// deliveries to finish (and returning the first error, if any) before
// returning. In Pull mode it simply appends v to the local buffer, to be
// drained later by downstream PullData chains.
func (out *Output) PushData(v any) error {
	if out.mode != Push {
		out.mu.Lock()
		out.buffer = append(out.buffer, v)
		out.mu.Unlock()
		return nil
	}

	targets := out.Downstream()
	if len(targets) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, len(targets))
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target *Input) {
			defer wg.Done()
			errs[i] = target.PushData(v)
		}(i, target)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// PullData removes and returns the front of the local buffer. Valid only
// in Pull mode; in Push mode the buffer is never populated by PushData
// and attempting to pull from it is a mode error, surfaced as
// dagerr.ErrModeMismatch (mirroring Input.PushData's own mode check).
func (out *Output) PullData() (any, bool, error) {
	if out.mode != Pull {
		return nil, false, dagerr.ErrModeMismatch
	}
	out.mu.Lock()
	defer out.mu.Unlock()
	if len(out.buffer) == 0 {
		return nil, false, nil
	}
	v := out.buffer[0]
	out.buffer = out.buffer[1:]
	return v, true, nil
}

// HasData reports whether this endpoint's local buffer is non-empty.
func (out *Output) HasData() bool {
	out.mu.Lock()
	defer out.mu.Unlock()
	return len(out.buffer) > 0
}
