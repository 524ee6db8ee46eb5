package store

import (
	"context"
	"errors"
	"time"

	"sleuth/pkg/common"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Investigation is the top-level unit of work: a case with an evidence graph
// and a set of synthesized paths.
type Investigation struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Investigation status values.
const (
	InvestigationStatusOpen         = "open"
	InvestigationStatusExtracting   = "extracting"
	InvestigationStatusSynthesizing = "synthesizing"
	InvestigationStatusReady        = "ready"
	InvestigationStatusFailed       = "failed"
)

// ArticleRecord is the stored metadata for one source article attached to an
// investigation. The article body lives in object storage or on the web; only
// the pointer is kept here.
type ArticleRecord struct {
	ID              string    `json:"id"`
	InvestigationID string    `json:"investigation_id"`
	Location        string    `json:"location"`
	SourceName      string    `json:"source_name"`
	Kind            string    `json:"kind"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// Article kinds.
const (
	ArticleKindWeb    = "web"
	ArticleKindStored = "stored"
)

// Article status values.
const (
	ArticleStatusPending   = "pending"
	ArticleStatusExtracted = "extracted"
	ArticleStatusFailed    = "failed"
)

// InvestigationStorage defines the interface for persisting investigations,
// their evidence graphs and their synthesized paths. Implementations must be
// safe for concurrent use.
type InvestigationStorage interface {
	CreateInvestigation(ctx context.Context, name string, description string) (*Investigation, error)
	GetInvestigation(ctx context.Context, id string) (*Investigation, error)
	ListInvestigations(ctx context.Context) ([]Investigation, error)
	UpdateInvestigationStatus(ctx context.Context, id string, status string) error
	DeleteInvestigation(ctx context.Context, id string) error

	SaveArticle(ctx context.Context, record ArticleRecord) (*ArticleRecord, error)
	ListArticles(ctx context.Context, investigationID string) ([]ArticleRecord, error)
	UpdateArticleStatus(ctx context.Context, articleID string, status string) error

	SaveGraph(ctx context.Context, investigationID string, g *common.Graph) error
	GetGraph(ctx context.Context, investigationID string) (*common.Graph, error)
	FindSimilarNodes(ctx context.Context, investigationID string, embedding []float32, topK int32) ([]string, error)

	ReplacePaths(ctx context.Context, investigationID string, paths []common.Path) error
	GetPaths(ctx context.Context, investigationID string) ([]common.Path, error)
}
