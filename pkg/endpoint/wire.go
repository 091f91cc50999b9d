package endpoint

import "github.com/cosmic-gao/sylas-heap/pkg/dagerr"

// Wire connects out to in, recording each as the other's peer. It is
// idempotent: wiring the same pair twice is a no-op on the second call.
func Wire(out *Output, in *Input) error {
	if out == nil || in == nil {
		return dagerr.ErrIncompatibleEndpoints
	}
	if !out.CanConnect(in) || !in.CanConnect(out) {
		return dagerr.ErrIncompatibleEndpoints
	}
	out.connect(in)
	in.connect(out)
	return nil
}

// Unwire removes the connection between out and in, if one exists.
func Unwire(out *Output, in *Input) {
	if out == nil || in == nil {
		return
	}
	out.disconnect(in)
	in.disconnect(out)
}
