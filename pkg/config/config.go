package config

import (
	"time"

	"github.com/cosmic-gao/sylas-heap/pkg/policy"
)

// Config holds scheduler configuration. All tunables are centralized here
// for easy management and validation, the way thaiyyal/backend/pkg/config
// centralizes workflow-engine tunables.
type Config struct {
	// MaxConcurrency bounds how many nodes may be Running at once.
	MaxConcurrency int

	// SchedulingStrategy is the policy consulted whenever a node becomes
	// Ready and must be placed in the ready queue.
	SchedulingStrategy policy.Policy

	// EnableDynamicScheduling controls whether completing a node
	// re-evaluates downstream readiness immediately (true) or only at
	// initial graph construction (false) — useful for statically
	// pre-planned executions.
	EnableDynamicScheduling bool

	// DefaultNodeTimeout is an advisory per-node timeout value. It is not
	// applied to nodes: a node's own timeout comes from node.WithTimeout
	// (30s when unset), and the scheduler itself never kills a running
	// node on timeout.
	DefaultNodeTimeout time.Duration

	// DefaultRetries is an advisory retry count. It is not applied to
	// nodes (their retry count comes from node.WithRetries), and the
	// scheduler makes no retry attempt itself.
	DefaultRetries int
}

// Default returns a Config with production-ready default values:
// concurrency bound 4, the Default scheduling policy, dynamic
// re-scheduling enabled, a 30s advisory node timeout, and no retries.
func Default() *Config {
	return &Config{
		MaxConcurrency:          4,
		SchedulingStrategy:      policy.NewDefault(),
		EnableDynamicScheduling: true,
		DefaultNodeTimeout:      30 * time.Second,
		DefaultRetries:          0,
	}
}

// Development returns a Config tuned for local iteration: a wider
// concurrency budget and a generous advisory timeout.
func Development() *Config {
	cfg := Default()
	cfg.MaxConcurrency = 8
	cfg.DefaultNodeTimeout = 2 * time.Minute
	return cfg
}

// Production returns a Config tuned for steady-state operation: the same
// concurrency bound as Default but with dynamic re-scheduling explicitly
// pinned on, since static pre-planning is a development/debugging aid.
func Production() *Config {
	cfg := Default()
	cfg.EnableDynamicScheduling = true
	return cfg
}

// Testing returns a Config tuned for deterministic, fast test runs: a
// serial concurrency bound (1) so dispatch order is exactly the policy's
// comparator order, and a short advisory timeout.
func Testing() *Config {
	cfg := Default()
	cfg.MaxConcurrency = 1
	cfg.DefaultNodeTimeout = 5 * time.Second
	return cfg
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.MaxConcurrency < 1 {
		return ErrInvalidMaxConcurrency
	}
	if c.DefaultNodeTimeout < 0 {
		return ErrInvalidNodeTimeout
	}
	if c.SchedulingStrategy == nil {
		return ErrMissingPolicy
	}
	return nil
}

// Clone creates a shallow copy of the configuration. SchedulingStrategy
// is shared, not duplicated: Policy implementations are themselves safe
// for concurrent use.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
