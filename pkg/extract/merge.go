package extract

import (
	"sleuth/pkg/common"
)

// mergeEvidence folds freshly extracted nodes and edges into the accumulated
// sets. Nodes merge by id: sources are unioned, confidence keeps the maximum,
// and a date fills in only when the existing node has none. Edges merge by
// (from, to, relation): strength is averaged, confidence keeps the maximum.
func mergeEvidence(
	nodes []common.Node,
	newNodes []common.Node,
	edges []common.Edge,
	newEdges []common.Edge,
) ([]common.Node, []common.Edge) {
	for _, node := range newNodes {
		found := false
		for j := range nodes {
			if nodes[j].ID == node.ID {
				nodes[j].Sources = unionSources(nodes[j].Sources, node.Sources)
				if node.Confidence > nodes[j].Confidence {
					nodes[j].Confidence = node.Confidence
				}
				if nodes[j].Date == "" {
					nodes[j].Date = node.Date
				}
				found = true
				break
			}
		}
		if !found {
			nodes = append(nodes, node)
		}
	}

	known := make(map[string]struct{}, len(nodes))
	for i := range nodes {
		known[nodes[i].ID] = struct{}{}
	}

	for _, edge := range newEdges {
		if _, ok := known[edge.From]; !ok {
			continue
		}
		if _, ok := known[edge.To]; !ok {
			continue
		}

		found := false
		for j := range edges {
			if edges[j].From == edge.From &&
				edges[j].To == edge.To &&
				edges[j].Relation == edge.Relation {
				edges[j].Strength = (edges[j].Strength + edge.Strength) / 2
				if edge.Confidence > edges[j].Confidence {
					edges[j].Confidence = edge.Confidence
				}
				found = true
				break
			}
		}

		if !found {
			edges = append(edges, edge)
		}
	}

	return nodes, edges
}

func unionSources(existing []string, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[s] = struct{}{}
	}
	for _, s := range incoming {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		existing = append(existing, s)
	}
	return existing
}
