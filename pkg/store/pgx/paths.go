package pgx

import (
	"context"
	"fmt"

	"sleuth/internal/util"
	"sleuth/pkg/common"
)

// ReplacePaths swaps the stored path set of an investigation for the given
// ranked list. Rank is the position in the slice; synthesis already sorted
// by confidence.
func (s *InvestigationDBStorage) ReplacePaths(
	ctx context.Context,
	investigationID string,
	paths []common.Path,
) error {
	invID, err := s.resolveInvestigationID(ctx, investigationID)
	if err != nil {
		return err
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM paths WHERE investigation_id = $1`, invID); err != nil {
		return err
	}

	for rank, p := range paths {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO paths (investigation_id, path_id, rank, nodes, status, confidence, hypothesis_label)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			invID, p.ID, rank, p.Nodes, string(p.Status), p.Confidence, util.SanitizePostgresText(p.HypothesisLabel),
		)
		if err != nil {
			return fmt.Errorf("failed to insert path %s: %w", p.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// GetPaths loads the stored paths of an investigation in rank order.
func (s *InvestigationDBStorage) GetPaths(
	ctx context.Context,
	investigationID string,
) ([]common.Path, error) {
	invID, err := s.resolveInvestigationID(ctx, investigationID)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(
		ctx,
		`SELECT path_id, nodes, status, confidence, hypothesis_label
		 FROM paths WHERE investigation_id = $1 ORDER BY rank`,
		invID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]common.Path, 0)
	for rows.Next() {
		p := common.Path{}
		var status string
		if err := rows.Scan(&p.ID, &p.Nodes, &status, &p.Confidence, &p.HypothesisLabel); err != nil {
			return nil, err
		}
		p.Status = common.PathStatus(status)
		out = append(out, p)
	}
	return out, rows.Err()
}
