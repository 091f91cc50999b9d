package graphbuilder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/cosmic-gao/sylas-heap/pkg/config"
	"github.com/cosmic-gao/sylas-heap/pkg/dagengine"
	"github.com/cosmic-gao/sylas-heap/pkg/endpoint"
	"github.com/cosmic-gao/sylas-heap/pkg/graph"
	"github.com/cosmic-gao/sylas-heap/pkg/node"
)

var schemaLoader = gojsonschema.NewStringLoader(graphSchema)

// Validate checks payloadJSON against the bundled graph schema without
// constructing anything. Returns the list of validation error messages,
// empty when the payload is valid.
func Validate(payloadJSON []byte) ([]string, error) {
	documentLoader := gojsonschema.NewBytesLoader(payloadJSON)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("graphbuilder: schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return msgs, nil
}

// Parse validates payloadJSON against the bundled schema and unmarshals
// it into a GraphSpec. Returns ErrInvalidPayload (wrapping the collected
// schema error messages) when validation fails.
func Parse(payloadJSON []byte) (*GraphSpec, error) {
	msgs, err := Validate(payloadJSON)
	if err != nil {
		return nil, err
	}
	if len(msgs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, msgs)
	}

	var spec GraphSpec
	if err := json.Unmarshal(payloadJSON, &spec); err != nil {
		return nil, fmt.Errorf("graphbuilder: decoding payload: %w", err)
	}
	return &spec, nil
}

// Build validates payloadJSON, constructs a node.Node per declared
// NodeSpec (wired to the matching entry in runners by its "runner"
// field), registers every node and edge with a fresh dagengine.Graph
// configured by cfg (nil falls back to config.Default), and returns the
// ready-to-Execute graph alongside the parsed GraphSpec.
//
// Runners is the registry half of the construction, mirroring how
// thaiyyal/backend's engine.NewWithRegistry resolves node behavior from
// a caller-supplied registry rather than the payload: the payload never
// carries executable code, only structure.
func Build(payloadJSON []byte, runners map[string]node.Runner, cfg *config.Config) (*dagengine.Graph, *GraphSpec, error) {
	spec, err := Parse(payloadJSON)
	if err != nil {
		return nil, nil, err
	}

	if err := checkAcyclic(spec); err != nil {
		return nil, nil, err
	}

	g, err := dagengine.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	for _, ns := range spec.Nodes {
		n, err := buildNode(ns, runners)
		if err != nil {
			return nil, nil, fmt.Errorf("graphbuilder: node %q: %w", ns.ID, err)
		}
		if err := g.AddNode(n); err != nil {
			return nil, nil, fmt.Errorf("graphbuilder: node %q: %w", ns.ID, err)
		}
	}

	for _, es := range spec.Edges {
		if _, err := g.Connect(es.Source, es.SourcePort, es.Target, es.TargetPort); err != nil {
			return nil, nil, fmt.Errorf("graphbuilder: edge %s.%s->%s.%s: %w",
				es.Source, es.SourcePort, es.Target, es.TargetPort, err)
		}
	}

	return g, spec, nil
}

// checkAcyclic runs pkg/graph's topological sort over the spec's bare
// node ids before any node.Node/edge.Edge is constructed. Every node on
// a cycle waits for data from another node on the same cycle, so none of
// them can satisfy its Push readiness predicate. Edges naming an
// undeclared node are left out of the check; Connect rejects them later.
func checkAcyclic(spec *GraphSpec) error {
	declared := make(map[string]bool, len(spec.Nodes))
	nodes := make([]graph.Node, len(spec.Nodes))
	for i, ns := range spec.Nodes {
		nodes[i] = graph.Node{ID: ns.ID}
		declared[ns.ID] = true
	}
	edges := make([]graph.Edge, 0, len(spec.Edges))
	for _, es := range spec.Edges {
		if !declared[es.Source] || !declared[es.Target] {
			continue
		}
		edges = append(edges, graph.Edge{Source: es.Source, Target: es.Target})
	}
	g := graph.New(nodes, edges)
	if err := g.DetectCycles(); err != nil {
		return fmt.Errorf("%w: %v", ErrCyclicPayload, err)
	}
	return nil
}

func buildNode(ns NodeSpec, runners map[string]node.Runner) (*node.Node, error) {
	runner, ok := runners[ns.Runner]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRunner, ns.Runner)
	}

	opts := []node.Option{
		node.WithPriority(ns.Priority),
		node.WithCost(nonZeroOr(ns.Cost, 1)),
		node.WithRetries(ns.Retries),
	}
	if ns.TimeoutMS > 0 {
		opts = append(opts, node.WithTimeout(time.Duration(ns.TimeoutMS)*time.Millisecond))
	}
	if len(ns.Metadata) > 0 {
		opts = append(opts, node.WithMetadata(ns.Metadata))
	}

	n := node.New(ns.ID, runner, opts...)

	seen := make(map[string]bool, len(ns.Inputs)+len(ns.Outputs))
	for _, p := range ns.Inputs {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePort, p.ID)
		}
		seen[p.ID] = true
		if _, err := n.AddInputEndpoint(p.ID, parseMode(p.Mode)); err != nil {
			return nil, err
		}
	}
	for _, p := range ns.Outputs {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePort, p.ID)
		}
		seen[p.ID] = true
		if _, err := n.AddOutputEndpoint(p.ID, parseMode(p.Mode)); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func parseMode(m string) endpoint.Mode {
	if m == "pull" {
		return endpoint.Pull
	}
	return endpoint.Push
}

func nonZeroOr(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
