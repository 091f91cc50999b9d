// Package endpoint implements the Input and Output port types that carry
// data between nodes across an edge, in one of two data-flow modes.
//
// # Push vs Pull
//
// In Push mode the producer drives delivery: an Output endpoint's PushData
// fans a value out to every connected Input's PushData concurrently,
// awaiting all of them before returning. In Pull mode the consumer drives
// delivery: an Input endpoint's PullData reaches upstream through its
// connected Output endpoints and asks each, in connection order, for a
// buffered value.
//
// # Readiness
//
// A Pending node becomes Ready only once every one of its input endpoints
// is satisfied: an endpoint with no incident edges is trivially satisfied;
// a Push endpoint is satisfied once it has buffered data; a Pull endpoint
// is satisfied once at least one of its upstream Output endpoints reports
// buffered data. See HasData and UpstreamHasData.
package endpoint
