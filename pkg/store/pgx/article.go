package pgx

import (
	"context"
	"fmt"

	"sleuth/pkg/store"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// SaveArticle stores the metadata record for one source article. The article
// id is generated here; the caller provides the investigation, location and
// kind.
func (s *InvestigationDBStorage) SaveArticle(
	ctx context.Context,
	record store.ArticleRecord,
) (*store.ArticleRecord, error) {
	invID, err := s.resolveInvestigationID(ctx, record.InvestigationID)
	if err != nil {
		return nil, err
	}

	publicID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate article id: %w", err)
	}

	status := record.Status
	if status == "" {
		status = store.ArticleStatusPending
	}

	out := store.ArticleRecord{InvestigationID: record.InvestigationID}
	err = s.conn.QueryRow(
		ctx,
		`INSERT INTO articles (public_id, investigation_id, location, source_name, kind, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING public_id, location, source_name, kind, status, created_at`,
		publicID, invID, record.Location, record.SourceName, record.Kind, status,
	).Scan(&out.ID, &out.Location, &out.SourceName, &out.Kind, &out.Status, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save article: %w", err)
	}

	return &out, nil
}

// ListArticles returns the article records of an investigation in insertion order.
func (s *InvestigationDBStorage) ListArticles(
	ctx context.Context,
	investigationID string,
) ([]store.ArticleRecord, error) {
	invID, err := s.resolveInvestigationID(ctx, investigationID)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(
		ctx,
		`SELECT public_id, location, source_name, kind, status, created_at
		 FROM articles WHERE investigation_id = $1 ORDER BY id`,
		invID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]store.ArticleRecord, 0)
	for rows.Next() {
		rec := store.ArticleRecord{InvestigationID: investigationID}
		if err := rows.Scan(&rec.ID, &rec.Location, &rec.SourceName, &rec.Kind, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// UpdateArticleStatus marks one article as extracted or failed.
func (s *InvestigationDBStorage) UpdateArticleStatus(
	ctx context.Context,
	articleID string,
	status string,
) error {
	tag, err := s.conn.Exec(
		ctx,
		`UPDATE articles SET status = $2 WHERE public_id = $1`,
		articleID, status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
