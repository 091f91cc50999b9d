// Package graph provides DAG topology validation for declarative graph
// payloads: topological sorting, cycle detection, and edge traversal
// over plain node ids, independent of any scheduler's live node objects.
//
// # Overview
//
// graphbuilder runs a Graph over a parsed GraphSpec before constructing
// any node.Node or edge.Edge, so a cyclic payload is rejected before it
// ever reaches the scheduler. Push-mode readiness depends on data
// arriving on every connected input; on a cycle each node waits for data
// from another node of the same cycle, so every node inside it has a
// permanently unsatisfied predicate, which would otherwise manifest as nodes that
// simply never run rather than as a clear construction-time error.
//
// # Graph Representation
//
// A payload's topology is represented as a directed graph where:
//
//   - Nodes are bare ids (Node.ID)
//   - Edges are id pairs (Edge.Source, Edge.Target)
//   - Direction indicates data flow (source → target)
//
// # Usage
//
//	g := graph.New(nodes, edges)
//	order, err := g.TopologicalSort()
//	if err != nil {
//	    // payload contains a cycle
//	}
//
// # Algorithm
//
// TopologicalSort implements Kahn's algorithm:
//  1. Calculate in-degree for all nodes
//  2. Seed the queue with zero in-degree nodes, sorted by id for a
//     deterministic result
//  3. Dequeue, append to the order, decrement neighbor in-degrees
//  4. Enqueue any neighbor whose in-degree reaches zero
//  5. If the resulting order is shorter than the node count, a cycle
//     exists among the unprocessed nodes
//
// Complexity is O(V + E); the queue is a pre-allocated ring buffer and
// orphan-node sorting uses insertion sort, since payload graphs are
// small enough that this outperforms a general-purpose sort.
package graph
