package extract

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/invopop/jsonschema"

	"sleuth/internal/util"
	"sleuth/pkg/ai"
	"sleuth/pkg/common"
	"sleuth/pkg/logger"
)

type dedupeGroup struct {
	CanonicalLabel string   `json:"canonicalLabel" jsonschema_description:"Chosen final label for the group"`
	Nodes          []string `json:"nodes" jsonschema_description:"Ids of the duplicate nodes in this group"`
}

type dedupeResponse struct {
	Duplicates []dedupeGroup `json:"duplicates" jsonschema_description:"Groups of duplicate nodes"`
}

// DedupeEvidence asks the model which nodes in the graph describe the same
// real-world thing and merges each group into its first member. Edges are
// remapped onto the surviving node; self-loops produced by a merge are
// dropped. Groups that mix node types are ignored.
func (c *ExtractClient) DedupeEvidence(
	ctx context.Context,
	g *common.Graph,
	aiClient ai.InvestigationAIClient,
) (*common.Graph, error) {
	if len(g.Nodes) < 2 {
		return g, nil
	}

	var list strings.Builder
	for _, n := range g.Nodes {
		fmt.Fprintf(&list, "- %s (%s): %s\n", n.ID, n.Type, n.Label)
	}

	prompt := fmt.Sprintf(ai.DedupePrompt, list.String())

	res, err := util.RetryWithContext(ctx, c.maxRetries, func(ctx context.Context) (*dedupeResponse, error) {
		var out dedupeResponse
		err := aiClient.GenerateCompletionWithFormat(
			ctx,
			"dedupe_evidence",
			"Identify groups of duplicate evidence nodes.",
			prompt,
			&out,
		)
		if err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to deduplicate evidence: %w", err)
	}

	if len(res.Duplicates) == 0 {
		return g, nil
	}

	byID := make(map[string]*common.Node, len(g.Nodes))
	for i := range g.Nodes {
		byID[g.Nodes[i].ID] = &g.Nodes[i]
	}

	// rewrite maps a merged-away node id to its surviving canonical id
	rewrite := make(map[string]string)
	for _, group := range res.Duplicates {
		members := make([]*common.Node, 0, len(group.Nodes))
		for _, id := range group.Nodes {
			if n, ok := byID[id]; ok {
				members = append(members, n)
			}
		}
		if len(members) < 2 {
			continue
		}

		mixed := false
		for _, m := range members[1:] {
			if m.Type != members[0].Type {
				mixed = true
				break
			}
		}
		if mixed {
			logger.Warn("[Dedupe] Skipping group with mixed node types", "label", group.CanonicalLabel)
			continue
		}

		canonical := members[0]
		if strings.TrimSpace(group.CanonicalLabel) != "" {
			canonical.Label = strings.TrimSpace(group.CanonicalLabel)
		}
		for _, m := range members[1:] {
			canonical.Sources = unionSources(canonical.Sources, m.Sources)
			if m.Confidence > canonical.Confidence {
				canonical.Confidence = m.Confidence
			}
			if canonical.Date == "" {
				canonical.Date = m.Date
			}
			rewrite[m.ID] = canonical.ID
		}
	}

	if len(rewrite) == 0 {
		return g, nil
	}

	nodes := make([]common.Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, merged := rewrite[n.ID]; merged {
			continue
		}
		nodes = append(nodes, n)
	}

	edges := make([]common.Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if to, ok := rewrite[e.From]; ok {
			e.From = to
		}
		if to, ok := rewrite[e.To]; ok {
			e.To = to
		}
		if e.From == e.To {
			continue
		}
		nodes, edges = mergeNodesKeepEdges(nodes, edges, e)
	}

	logger.Debug("[Dedupe] Merged duplicate nodes", "merged", len(rewrite), "remaining", len(nodes))

	return &common.Graph{Nodes: nodes, Edges: edges}, nil
}

// mergeNodesKeepEdges folds one remapped edge into the edge set, collapsing
// duplicates the same way cross-chunk merging does.
func mergeNodesKeepEdges(nodes []common.Node, edges []common.Edge, edge common.Edge) ([]common.Node, []common.Edge) {
	for j := range edges {
		if edges[j].From == edge.From &&
			edges[j].To == edge.To &&
			edges[j].Relation == edge.Relation {
			edges[j].Strength = (edges[j].Strength + edge.Strength) / 2
			if edge.Confidence > edges[j].Confidence {
				edges[j].Confidence = edge.Confidence
			}
			return nodes, edges
		}
	}
	return nodes, append(edges, edge)
}
