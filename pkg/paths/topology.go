package paths

import (
	"sleuth/pkg/common"
)

// topology is the adjacency view derived from a graph in a single pass over
// its edge list. Roots and outcomes keep the node input order so enumeration
// stays deterministic.
type topology struct {
	out      map[string][]common.Edge
	in       map[string][]common.Edge
	roots    []string
	outcomes map[string]struct{}
}

// buildTopology derives the out-edge and in-edge indexes, roots (no incoming
// edges) and outcomes (no outgoing edges) of the graph. Edges referencing a
// node id absent from the node list are skipped; the graph is otherwise
// trusted as-is.
//
// When no node qualifies as an outcome (fully cyclic or fully saturated
// graph), every node becomes an outcome so enumeration can still terminate.
func buildTopology(g common.Graph) topology {
	known := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		known[n.ID] = struct{}{}
	}

	t := topology{
		out:      make(map[string][]common.Edge, len(g.Nodes)),
		in:       make(map[string][]common.Edge, len(g.Nodes)),
		outcomes: make(map[string]struct{}),
	}

	for _, e := range g.Edges {
		if _, ok := known[e.From]; !ok {
			continue
		}
		if _, ok := known[e.To]; !ok {
			continue
		}
		t.out[e.From] = append(t.out[e.From], e)
		t.in[e.To] = append(t.in[e.To], e)
	}

	for _, n := range g.Nodes {
		if len(t.in[n.ID]) == 0 {
			t.roots = append(t.roots, n.ID)
		}
		if len(t.out[n.ID]) == 0 {
			t.outcomes[n.ID] = struct{}{}
		}
	}

	if len(t.outcomes) == 0 {
		for _, n := range g.Nodes {
			t.outcomes[n.ID] = struct{}{}
		}
	}

	return t
}
