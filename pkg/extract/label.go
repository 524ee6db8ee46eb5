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

	"golang.org/x/sync/errgroup"
)

type labelResponse struct {
	Label string `json:"label" jsonschema_description:"Short hypothesis label for the evidence chain"`
}

// LabelPaths generates a hypothesis label for every synthesized path and
// writes it into the path's HypothesisLabel field. Paths are labeled
// concurrently.
//
// Labeling is best-effort: a path whose label generation fails after retries
// keeps an empty label and the error is logged, not returned. The ranked
// paths themselves are already final at this point.
func (c *ExtractClient) LabelPaths(
	ctx context.Context,
	g *common.Graph,
	paths []common.Path,
	aiClient ai.InvestigationAIClient,
) {
	if len(paths) == 0 {
		return
	}

	byID := make(map[string]common.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.parallelAiRequests)
	for i := range paths {
		idx := i
		eg.Go(func() error {
			chain := describeChain(paths[idx].Nodes, byID)
			if chain == "" {
				return nil
			}

			prompt := fmt.Sprintf(ai.HypothesisLabelPrompt, chain)

			res, err := util.RetryWithContext(gCtx, c.maxRetries, func(ctx context.Context) (*labelResponse, error) {
				var out labelResponse
				err := aiClient.GenerateCompletionWithFormat(
					ctx,
					"hypothesis_label",
					"Name the causal story an evidence chain tells.",
					prompt,
					&out,
				)
				if err != nil {
					return nil, err
				}
				return &out, nil
			})
			if err != nil {
				logger.Warn("[Label] Failed to label path", "path", paths[idx].ID, "err", err)
				return nil
			}

			paths[idx].HypothesisLabel = strings.TrimSpace(res.Label)
			return nil
		})
	}

	// errors are swallowed per path, Wait only observes context cancellation
	_ = eg.Wait()
}

func describeChain(nodeIDs []string, byID map[string]common.Node) string {
	parts := make([]string, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		n, ok := byID[id]
		if !ok {
			continue
		}
		label := n.Label
		if label == "" {
			label = n.ID
		}
		if n.Date != "" {
			label = fmt.Sprintf("%s (%s)", label, n.Date)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " -> ")
}
