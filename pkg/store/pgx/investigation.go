package pgx

import (
	"context"
	"fmt"

	"sleuth/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// CreateInvestigation inserts a new investigation in status "open" and
// returns the stored record.
func (s *InvestigationDBStorage) CreateInvestigation(
	ctx context.Context,
	name string,
	description string,
) (*store.Investigation, error) {
	publicID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate investigation id: %w", err)
	}

	inv := store.Investigation{}
	err = s.conn.QueryRow(
		ctx,
		`INSERT INTO investigations (public_id, name, description, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING public_id, name, description, status, created_at, updated_at`,
		publicID, name, description, store.InvestigationStatusOpen,
	).Scan(&inv.ID, &inv.Name, &inv.Description, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create investigation: %w", err)
	}

	return &inv, nil
}

// GetInvestigation fetches one investigation by its public id.
func (s *InvestigationDBStorage) GetInvestigation(
	ctx context.Context,
	id string,
) (*store.Investigation, error) {
	inv := store.Investigation{}
	err := s.conn.QueryRow(
		ctx,
		`SELECT public_id, name, description, status, created_at, updated_at
		 FROM investigations WHERE public_id = $1`,
		id,
	).Scan(&inv.ID, &inv.Name, &inv.Description, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if err == pgxv5.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// ListInvestigations returns all investigations, newest first.
func (s *InvestigationDBStorage) ListInvestigations(ctx context.Context) ([]store.Investigation, error) {
	rows, err := s.conn.Query(
		ctx,
		`SELECT public_id, name, description, status, created_at, updated_at
		 FROM investigations ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]store.Investigation, 0)
	for rows.Next() {
		inv := store.Investigation{}
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Description, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// UpdateInvestigationStatus moves an investigation through its lifecycle.
func (s *InvestigationDBStorage) UpdateInvestigationStatus(
	ctx context.Context,
	id string,
	status string,
) error {
	tag, err := s.conn.Exec(
		ctx,
		`UPDATE investigations SET status = $2, updated_at = now() WHERE public_id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteInvestigation removes an investigation and, via cascading foreign
// keys, its articles, nodes, edges and paths.
func (s *InvestigationDBStorage) DeleteInvestigation(ctx context.Context, id string) error {
	tag, err := s.conn.Exec(
		ctx,
		`DELETE FROM investigations WHERE public_id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
