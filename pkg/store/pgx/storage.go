package pgx

import (
	"context"
	"sync"

	"sleuth/pkg/ai"
	"sleuth/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// InvestigationDBStorage implements the InvestigationStorage interface using
// PostgreSQL with pgvector for node similarity search. Write paths that span
// multiple statements run inside transactions; the mutex serializes
// embedding-generating writes so a burst of saves cannot overload the
// AI endpoint.
type InvestigationDBStorage struct {
	conn     pgxIConn
	aiClient ai.InvestigationAIClient
	dbLock   sync.Mutex
}

var _ store.InvestigationStorage = (*InvestigationDBStorage)(nil)

// NewInvestigationDBStorageWithConnection creates a new InvestigationDBStorage
// using an existing database connection or pool. The AI client is used for
// generating node embeddings; it may be nil, in which case nodes are stored
// without embeddings and similarity search returns no results.
func NewInvestigationDBStorageWithConnection(
	ctx context.Context,
	conn pgxIConn,
	aiClient ai.InvestigationAIClient,
) (*InvestigationDBStorage, error) {
	s := &InvestigationDBStorage{
		conn:     conn,
		aiClient: aiClient,
		dbLock:   sync.Mutex{},
	}
	return s, nil
}

func (s *InvestigationDBStorage) resolveInvestigationID(ctx context.Context, publicID string) (int64, error) {
	var id int64
	err := s.conn.QueryRow(
		ctx,
		`SELECT id FROM investigations WHERE public_id = $1`,
		publicID,
	).Scan(&id)
	if err != nil {
		if err == pgxv5.ErrNoRows {
			return 0, store.ErrNotFound
		}
		return 0, err
	}
	return id, nil
}
