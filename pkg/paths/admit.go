package paths

import (
	"strings"

	"sleuth/pkg/common"
)

// dedupeCandidates drops candidates that repeat an already-seen node-id
// sequence, keeping the first occurrence. The same walk can be re-derived
// through different branches of the search, so candidates are keyed by their
// joined id sequence before filtering.
func dedupeCandidates(cands []candidate) []candidate {
	seen := make(map[string]struct{}, len(cands))
	out := make([]candidate, 0, len(cands))
	for _, c := range cands {
		key := strings.Join(c.nodes, "->")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// distinctSources returns the deduplicated union of source strings across
// the given nodes. A node without listed sources contributes its label as a
// weak attribution fallback.
func distinctSources(nodes []common.Node) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(nodes))
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	for _, n := range nodes {
		if len(n.Sources) == 0 {
			add(n.Label)
			continue
		}
		for _, s := range n.Sources {
			add(s)
		}
	}
	return out
}

// passesBirthRule is the admissibility test a candidate must pass to become
// a reportable path: at least MinPathNodes nodes and at least
// MinDistinctSources distinct sources. A one- or two-node chain is an
// assertion, and a narrative backed by a single voice is not yet a competing
// hypothesis.
func passesBirthRule(c candidate, byID map[string]common.Node, cfg Config) bool {
	if len(c.nodes) < cfg.MinPathNodes {
		return false
	}
	return len(distinctSources(resolveNodes(c.nodes, byID))) >= cfg.MinDistinctSources
}

// resolveNodes maps a sequence of node ids onto the node values, preserving
// order and skipping unknown ids.
func resolveNodes(ids []string, byID map[string]common.Node) []common.Node {
	out := make([]common.Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			out = append(out, n)
		}
	}
	return out
}
