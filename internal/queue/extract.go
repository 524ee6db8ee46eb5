package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sleuth/internal/util"
	"sleuth/pkg/ai"
	"sleuth/pkg/extract"
	"sleuth/pkg/leaselock"
	"sleuth/pkg/loader"
	s3loader "sleuth/pkg/loader/s3"
	"sleuth/pkg/loader/web"
	"sleuth/pkg/logger"
	"sleuth/pkg/store"
	graphstorage "sleuth/pkg/store/pgx"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
)

// ProcessExtractMessage extracts evidence from one article and merges it into
// the investigation's graph. The merge, dedupe and save run under a
// per-investigation lease so two articles of the same investigation cannot
// clobber each other's writes. On success a synthesis message is published so
// the path set catches up with the new evidence.
func ProcessExtractMessage(
	ctx context.Context,
	s3Client *awss3.Client,
	aiClient ai.InvestigationAIClient,
	ch *amqp091.Channel,
	conn *pgxpool.Pool,
	msg string,
) (err error) {
	var data QueueExtractMsg
	if err = json.Unmarshal([]byte(msg), &data); err != nil {
		return err
	}

	storageClient, err := graphstorage.NewInvestigationDBStorageWithConnection(ctx, conn, aiClient)
	if err != nil {
		return err
	}

	defer func() {
		if err == nil {
			return
		}
		updateCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if updateErr := storageClient.UpdateArticleStatus(updateCtx, data.ArticleID, store.ArticleStatusFailed); updateErr != nil {
			logger.Warn("[Queue] Failed to mark article as failed", "article_id", data.ArticleID, "err", updateErr)
		}
	}()

	if err = storageClient.UpdateInvestigationStatus(ctx, data.InvestigationID, store.InvestigationStatusExtracting); err != nil {
		return err
	}

	var articleLoader loader.ArticleLoader
	switch data.Kind {
	case store.ArticleKindStored:
		articleLoader = s3loader.NewS3ArticleLoaderWithClient(util.GetEnv("AWS_BUCKET"), s3Client)
	default:
		articleLoader = web.NewWebArticleLoader()
	}

	article := loader.NewArticle(loader.NewArticleParams{
		ID:         data.ArticleID,
		Location:   data.Location,
		SourceName: data.SourceName,
		MaxTokens:  int(util.GetEnvNumeric("EXTRACT_CHUNK_TOKENS", 1200)),
		Loader:     articleLoader,
	})

	extractClient, err := extract.NewExtractClient(extract.NewExtractClientParams{
		TokenEncoder:       util.GetEnvString("TOKEN_ENCODER", "o200k_base"),
		ParallelChunks:     int(util.GetEnvNumeric("EXTRACT_PARALLEL_CHUNKS", 2)),
		ParallelAiRequests: int(util.GetEnvNumeric("EXTRACT_PARALLEL_AI_REQUESTS", 4)),
		MaxRetries:         int(util.GetEnvNumeric("EXTRACT_MAX_RETRIES", 3)),
	})
	if err != nil {
		return err
	}

	fragment, err := extractClient.ProcessArticle(ctx, article, aiClient)
	if err != nil {
		return fmt.Errorf("failed to extract article %s: %w", data.ArticleID, err)
	}

	logger.Info(
		"[Queue] Extracted article",
		"investigation_id", data.InvestigationID,
		"article_id", data.ArticleID,
		"nodes", len(fragment.Nodes),
		"edges", len(fragment.Edges),
	)

	lockClient := leaselock.New(conn)
	lease, err := lockClient.Acquire(ctx, leaselock.GraphKey(data.InvestigationID), leaselock.Options{
		TTL:         10 * time.Minute,
		RenewEvery:  4 * time.Minute,
		Wait:        true,
		TokenPrefix: fmt.Sprintf("graph-merge/%s/", data.InvestigationID),
	})
	if err != nil {
		return err
	}
	releaseLease := func() error {
		if lease == nil {
			return nil
		}
		if releaseErr := lease.Release(context.Background()); releaseErr != nil {
			return releaseErr
		}
		lease = nil
		return nil
	}
	defer func() {
		if releaseErr := releaseLease(); releaseErr != nil {
			logger.Warn("[Queue] Failed to release graph lease", "investigation_id", data.InvestigationID, "err", releaseErr)
		}
	}()

	existing, err := storageClient.GetGraph(lease.Context, data.InvestigationID)
	if err != nil {
		return fmt.Errorf("failed to load graph for %s: %w", data.InvestigationID, err)
	}

	merged := extract.MergeGraphs(existing, fragment)

	deduped, err := extractClient.DedupeEvidence(lease.Context, merged, aiClient)
	if err != nil {
		logger.Warn("[Queue] Dedupe failed, saving merged graph as-is", "investigation_id", data.InvestigationID, "err", err)
		deduped = merged
	}

	if err = storageClient.SaveGraph(lease.Context, data.InvestigationID, deduped); err != nil {
		return fmt.Errorf("failed to save graph for %s: %w", data.InvestigationID, err)
	}

	if err = storageClient.UpdateArticleStatus(lease.Context, data.ArticleID, store.ArticleStatusExtracted); err != nil {
		return err
	}

	if releaseErr := releaseLease(); releaseErr != nil {
		logger.Warn("[Queue] Failed to release graph lease", "investigation_id", data.InvestigationID, "err", releaseErr)
	}

	queueData := QueueSynthesizeMsg{
		Message:         "Article extracted",
		InvestigationID: data.InvestigationID,
	}
	msgBytes, err := json.Marshal(queueData)
	if err != nil {
		return err
	}
	if err = PublishFIFO(ch, SynthesizeQueue, msgBytes); err != nil {
		return fmt.Errorf("failed to publish synthesize message for %s: %w", data.InvestigationID, err)
	}

	return nil
}
