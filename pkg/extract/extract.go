package extract

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/invopop/jsonschema"

	"sleuth/pkg/ai"
	"sleuth/pkg/common"
	"sleuth/pkg/loader"
)

type extractNode struct {
	NodeID     string `json:"node_id" jsonschema_description:"Short snake_case identifier derived from the label"`
	NodeType   string `json:"node_type" jsonschema_description:"One of: event, actor, resource, decision"`
	Label      string `json:"label" jsonschema_description:"Short human-readable name of the evidence"`
	Date       string `json:"date" jsonschema_description:"Date the evidence refers to, YYYY-MM-DD, or empty when the text gives none"`
	Confidence int    `json:"confidence" jsonschema_description:"Reliability of this piece of evidence, 0-100"`
}

type extractEdge struct {
	FromNode   string  `json:"from_node" jsonschema_description:"Node id of the cause or earlier element"`
	ToNode     string  `json:"to_node" jsonschema_description:"Node id of the effect or later element"`
	Relation   string  `json:"relation" jsonschema_description:"Short verb phrase describing the relation"`
	Strength   float64 `json:"strength" jsonschema_description:"How strongly the text supports the relation, 0.0-1.0"`
	Confidence int     `json:"confidence" jsonschema_description:"Reliability of the relation, 0-100"`
}

type extractResponse struct {
	Nodes []extractNode `json:"nodes" jsonschema_description:"Evidence nodes identified in the chunk"`
	Edges []extractEdge `json:"edges" jsonschema_description:"Directed relations identified in the chunk"`
}

func extractFromChunk(
	ctx context.Context,
	chunk articleChunk,
	article loader.Article,
	client ai.InvestigationAIClient,
) ([]common.Node, []common.Edge, error) {
	systemPrompt := fmt.Sprintf(ai.ExtractionPrompt, article.Source())

	var res extractResponse
	opts := []ai.GenerateOption{
		ai.WithSystemPrompts(systemPrompt),
	}
	err := client.GenerateCompletionWithFormat(
		ctx,
		"extract_evidence",
		"Extract evidence nodes and edges from a source document chunk.",
		chunk.text,
		&res,
		opts...,
	)
	if err != nil {
		return nil, nil, err
	}

	source := article.Source()

	nodes := make([]common.Node, 0, len(res.Nodes))
	known := make(map[string]struct{}, len(res.Nodes))
	for _, n := range res.Nodes {
		id := normalizeNodeID(n.NodeID)
		if id == "" {
			id = normalizeNodeID(n.Label)
		}
		if id == "" {
			continue
		}
		if _, dup := known[id]; dup {
			continue
		}
		known[id] = struct{}{}

		nodes = append(nodes, common.Node{
			ID:         id,
			Type:       normalizeNodeType(n.NodeType),
			Label:      strings.TrimSpace(n.Label),
			Date:       strings.TrimSpace(n.Date),
			Confidence: clampConfidence(n.Confidence),
			Sources:    []string{source},
		})
	}

	edges := make([]common.Edge, 0, len(res.Edges))
	for _, e := range res.Edges {
		from := normalizeNodeID(e.FromNode)
		to := normalizeNodeID(e.ToNode)
		if from == "" || to == "" || from == to {
			continue
		}
		if _, ok := known[from]; !ok {
			continue
		}
		if _, ok := known[to]; !ok {
			continue
		}

		edges = append(edges, common.Edge{
			From:       from,
			To:         to,
			Relation:   strings.TrimSpace(e.Relation),
			Strength:   clampStrength(e.Strength),
			Confidence: clampConfidence(e.Confidence),
		})
	}

	return nodes, edges, nil
}

// normalizeNodeID lowercases the id and squashes separators into single
// underscores so ids coming back from the model stay join-safe.
func normalizeNodeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

func normalizeNodeType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case common.NodeTypeActor:
		return common.NodeTypeActor
	case common.NodeTypeResource:
		return common.NodeTypeResource
	case common.NodeTypeDecision:
		return common.NodeTypeDecision
	default:
		return common.NodeTypeEvent
	}
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

func clampStrength(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
