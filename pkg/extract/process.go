package extract

import (
	"context"
	"fmt"
	"sync"

	"sleuth/internal/util"
	"sleuth/pkg/ai"
	"sleuth/pkg/common"
	"sleuth/pkg/loader"
	"sleuth/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// ProcessArticle loads one article, splits it into token-bounded chunks and
// extracts evidence nodes and edges from each chunk concurrently. Results
// from all chunks are merged into a single evidence graph fragment.
//
// The fragment is not deduplicated against other articles; callers merge
// fragments with MergeGraphs and run DedupeEvidence over the combined graph.
func (c *ExtractClient) ProcessArticle(
	ctx context.Context,
	article loader.Article,
	aiClient ai.InvestigationAIClient,
) (*common.Graph, error) {
	chunks, err := getChunksFromArticle(ctx, article, c.tokenEncoder)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk article %s: %w", article.ID, err)
	}
	if len(chunks) == 0 {
		return &common.Graph{Nodes: []common.Node{}, Edges: []common.Edge{}}, nil
	}

	logger.Debug("[Extract] Processing article", "article", article.ID, "chunks", len(chunks))

	nodes := make([]common.Node, 0)
	edges := make([]common.Edge, 0)
	mergeMu := sync.Mutex{}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelChunks)
	for _, chunk := range chunks {
		ch := chunk
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return nil
			default:
				n, e, err := util.Retry2WithContext(gCtx, c.maxRetries, func(ctx context.Context) ([]common.Node, []common.Edge, error) {
					return extractFromChunk(ctx, ch, article, aiClient)
				})
				if err != nil {
					return fmt.Errorf("failed to extract evidence from chunk %s: %w", ch.id, err)
				}

				mergeMu.Lock()
				nodes, edges = mergeEvidence(nodes, n, edges, e)
				mergeMu.Unlock()
				return nil
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &common.Graph{Nodes: nodes, Edges: edges}, nil
}

// MergeGraphs folds fragment into base using the same merge rules applied
// across chunks. Both inputs are left untouched.
func MergeGraphs(base *common.Graph, fragment *common.Graph) *common.Graph {
	nodes := make([]common.Node, len(base.Nodes))
	copy(nodes, base.Nodes)
	edges := make([]common.Edge, len(base.Edges))
	copy(edges, base.Edges)

	nodes, edges = mergeEvidence(nodes, fragment.Nodes, edges, fragment.Edges)
	return &common.Graph{Nodes: nodes, Edges: edges}
}
