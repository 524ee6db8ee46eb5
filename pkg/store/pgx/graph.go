package pgx

import (
	"context"
	"fmt"

	"sleuth/internal/util"
	"sleuth/pkg/common"
	"sleuth/pkg/store"

	"github.com/pgvector/pgvector-go"
)

const nodeEmbedChunk = 100

// SaveGraph replaces the stored evidence graph of an investigation with g.
// Node labels are embedded in batches so similar evidence can later be found
// via vector search. The replace runs in a single transaction; readers never
// observe a half-written graph.
func (s *InvestigationDBStorage) SaveGraph(
	ctx context.Context,
	investigationID string,
	g *common.Graph,
) error {
	invID, err := s.resolveInvestigationID(ctx, investigationID)
	if err != nil {
		return err
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	embeddings, err := s.embedNodeLabels(ctx, g.Nodes)
	if err != nil {
		return fmt.Errorf("failed to embed node labels: %w", err)
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM edges WHERE investigation_id = $1`, invID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM nodes WHERE investigation_id = $1`, invID); err != nil {
		return err
	}

	for i, n := range g.Nodes {
		label := util.SanitizePostgresText(n.Label)
		var embedding any
		if embeddings != nil {
			embedding = pgvector.NewVector(embeddings[i])
		}
		_, err := tx.Exec(
			ctx,
			`INSERT INTO nodes (investigation_id, node_id, node_type, label, node_date, confidence, sources, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			invID, n.ID, n.Type, label, n.Date, n.Confidence, store.DedupeStrings(n.Sources), embedding,
		)
		if err != nil {
			return fmt.Errorf("failed to insert node %s: %w", n.ID, err)
		}
	}

	for _, e := range g.Edges {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO edges (investigation_id, from_node, to_node, relation, strength, confidence)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			invID, e.From, e.To, util.SanitizePostgresText(e.Relation), e.Strength, e.Confidence,
		)
		if err != nil {
			return fmt.Errorf("failed to insert edge %s->%s: %w", e.From, e.To, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *InvestigationDBStorage) embedNodeLabels(ctx context.Context, nodes []common.Node) ([][]float32, error) {
	if s.aiClient == nil || len(nodes) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(nodes))
	err := store.ChunkRange(len(nodes), nodeEmbedChunk, func(start, end int) error {
		inputs := make([][]byte, 0, end-start)
		for _, n := range nodes[start:end] {
			inputs = append(inputs, []byte(n.Label))
		}
		vecs, err := store.GenerateEmbeddings(ctx, s.aiClient, inputs)
		if err != nil {
			return err
		}
		copy(out[start:end], vecs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetGraph loads the stored evidence graph of an investigation. Nodes and
// edges come back in insertion order, which synthesis depends on for
// deterministic output.
func (s *InvestigationDBStorage) GetGraph(
	ctx context.Context,
	investigationID string,
) (*common.Graph, error) {
	invID, err := s.resolveInvestigationID(ctx, investigationID)
	if err != nil {
		return nil, err
	}

	g := &common.Graph{Nodes: []common.Node{}, Edges: []common.Edge{}}

	rows, err := s.conn.Query(
		ctx,
		`SELECT node_id, node_type, label, node_date, confidence, sources
		 FROM nodes WHERE investigation_id = $1 ORDER BY id`,
		invID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		n := common.Node{}
		if err := rows.Scan(&n.ID, &n.Type, &n.Label, &n.Date, &n.Confidence, &n.Sources); err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	rows, err = s.conn.Query(
		ctx,
		`SELECT from_node, to_node, relation, strength, confidence
		 FROM edges WHERE investigation_id = $1 ORDER BY id`,
		invID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		e := common.Edge{}
		if err := rows.Scan(&e.From, &e.To, &e.Relation, &e.Strength, &e.Confidence); err != nil {
			return nil, err
		}
		g.Edges = append(g.Edges, e)
	}
	return g, rows.Err()
}

// FindSimilarNodes returns the ids of stored nodes whose label embedding is
// close to the given embedding, nearest first. Nodes beyond a cosine distance
// of 0.4 are not considered similar.
func (s *InvestigationDBStorage) FindSimilarNodes(
	ctx context.Context,
	investigationID string,
	embedding []float32,
	topK int32,
) ([]string, error) {
	invID, err := s.resolveInvestigationID(ctx, investigationID)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(
		ctx,
		`SELECT node_id FROM nodes
		 WHERE investigation_id = $1
		   AND embedding IS NOT NULL
		   AND embedding <=> $2 <= $3
		 ORDER BY embedding <=> $2
		 LIMIT $4`,
		invID, pgvector.NewVector(embedding), 0.4, topK,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, topK)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
