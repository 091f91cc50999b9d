// Package telemetry provides OpenTelemetry integration for distributed
// tracing and metrics. It enables observability for the scheduler's
// dispatch loop with support for:
//   - Distributed tracing with trace IDs and span context propagation
//   - Prometheus metrics for execute- and node-level statistics, plus
//     ready-queue depth and running-node gauges
//   - Integration with industry-standard observability platforms
package telemetry
