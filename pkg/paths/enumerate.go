package paths

import (
	"sleuth/pkg/common"
)

// candidate is one enumerated walk: the visited node ids in order plus the
// edges traversed between them.
type candidate struct {
	nodes []string
	edges []common.Edge
}

// stepDecision is the termination test evaluated once per node visit.
type stepDecision int

const (
	// stepContinue keeps walking without emitting.
	stepContinue stepDecision = iota
	// stepEmitAndStop emits the current walk and stops descending.
	stepEmitAndStop
	// stepEmitAndContinue emits the current walk and keeps exploring
	// outgoing edges (an outcome node that still has unvisited targets).
	stepEmitAndContinue
)

// decide evaluates the termination test for the node at the tip of the walk.
//
// A walk may terminate once it carries at least MinPathNodes nodes and the
// tip is either an outcome or a dead end. A node whose outgoing edges all
// lead back into the walk counts as a dead end too, so a chain that runs
// into a cycle is not silently lost.
func decide(id string, pathLen int, t topology, visited map[string]bool, cfg Config) stepDecision {
	if pathLen >= cfg.MaxDepth {
		if pathLen >= cfg.MinPathNodes {
			return stepEmitAndStop
		}
		return stepContinue
	}

	unvisited := 0
	for _, e := range t.out[id] {
		if !visited[e.To] {
			unvisited++
		}
	}

	if pathLen < cfg.MinPathNodes {
		return stepContinue
	}
	if unvisited == 0 {
		return stepEmitAndStop
	}
	if _, ok := t.outcomes[id]; ok {
		return stepEmitAndContinue
	}
	return stepContinue
}

// enumerate runs a bounded depth-first walk from rootID and returns every
// emitted candidate. Walks are simple paths: an edge whose target is already
// part of the walk is never taken, which makes cycles harmless (a cycle
// contributes at most one pass through each node per candidate).
func enumerate(rootID string, t topology, cfg Config) []candidate {
	var found []candidate

	nodes := make([]string, 0, cfg.MaxDepth)
	edges := make([]common.Edge, 0, cfg.MaxDepth)
	visited := make(map[string]bool, cfg.MaxDepth)

	var walk func(id string)
	walk = func(id string) {
		nodes = append(nodes, id)
		visited[id] = true
		defer func() {
			nodes = nodes[:len(nodes)-1]
			delete(visited, id)
		}()

		switch decide(id, len(nodes), t, visited, cfg) {
		case stepEmitAndStop:
			found = append(found, snapshot(nodes, edges))
			return
		case stepEmitAndContinue:
			found = append(found, snapshot(nodes, edges))
		}

		if len(nodes) >= cfg.MaxDepth {
			return
		}
		for _, e := range t.out[id] {
			if visited[e.To] {
				continue
			}
			edges = append(edges, e)
			walk(e.To)
			edges = edges[:len(edges)-1]
		}
	}

	walk(rootID)
	return found
}

// snapshot copies the mutable walk state into an immutable candidate.
func snapshot(nodes []string, edges []common.Edge) candidate {
	c := candidate{
		nodes: make([]string, len(nodes)),
		edges: make([]common.Edge, len(edges)),
	}
	copy(c.nodes, nodes)
	copy(c.edges, edges)
	return c
}
