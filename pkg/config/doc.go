// Package config centralizes the scheduler's tunables: concurrency
// budget, scheduling policy, dynamic re-scheduling, and advisory node
// defaults.
//
// # Presets
//
// Default returns production-ready defaults (concurrency bound 4, the
// Default scheduling policy, dynamic re-scheduling enabled). Development,
// Production, and Testing adjust from there the way thaiyyal's own
// config package layers environment-specific presets on top of Default.
package config
