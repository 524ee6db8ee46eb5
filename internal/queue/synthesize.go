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
	"sleuth/pkg/logger"
	"sleuth/pkg/paths"
	"sleuth/pkg/store"
	graphstorage "sleuth/pkg/store/pgx"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
)

// engineConfigFromEnv starts from the tuned defaults and applies any knobs
// overridden through the environment.
func engineConfigFromEnv() paths.Config {
	cfg := paths.DefaultConfig()
	cfg.MaxDepth = int(util.GetEnvNumeric("PATHS_MAX_DEPTH", cfg.MaxDepth))
	cfg.MinPathNodes = int(util.GetEnvNumeric("PATHS_MIN_NODES", cfg.MinPathNodes))
	cfg.MinDistinctSources = int(util.GetEnvNumeric("PATHS_MIN_SOURCES", cfg.MinDistinctSources))
	cfg.WeakEdgeThreshold = util.GetEnvFloat("PATHS_WEAK_EDGE_THRESHOLD", cfg.WeakEdgeThreshold)
	cfg.DeadScore = util.GetEnvFloat("PATHS_DEAD_SCORE", cfg.DeadScore)
	cfg.ActiveScore = util.GetEnvFloat("PATHS_ACTIVE_SCORE", cfg.ActiveScore)
	return cfg
}

// ProcessSynthesizeMessage rebuilds the ranked path set of one investigation
// from its stored evidence graph. The whole rebuild runs under a
// per-investigation lease; a redelivered or duplicate message waits for the
// running rebuild instead of racing it.
func ProcessSynthesizeMessage(
	ctx context.Context,
	aiClient ai.InvestigationAIClient,
	ch *amqp091.Channel,
	conn *pgxpool.Pool,
	msg string,
) (err error) {
	var data QueueSynthesizeMsg
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
		if updateErr := storageClient.UpdateInvestigationStatus(updateCtx, data.InvestigationID, store.InvestigationStatusFailed); updateErr != nil {
			logger.Warn("[Queue] Failed to mark investigation as failed", "investigation_id", data.InvestigationID, "err", updateErr)
		}
	}()

	lockClient := leaselock.New(conn)
	lease, err := lockClient.Acquire(ctx, leaselock.SynthesisKey(data.InvestigationID), leaselock.Options{
		TTL:         10 * time.Minute,
		RenewEvery:  4 * time.Minute,
		Wait:        true,
		TokenPrefix: fmt.Sprintf("synthesis/%s/", data.InvestigationID),
	})
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lease.Release(context.Background()); releaseErr != nil {
			logger.Warn("[Queue] Failed to release synthesis lease", "investigation_id", data.InvestigationID, "err", releaseErr)
		}
	}()

	if err = storageClient.UpdateInvestigationStatus(lease.Context, data.InvestigationID, store.InvestigationStatusSynthesizing); err != nil {
		return err
	}

	g, err := storageClient.GetGraph(lease.Context, data.InvestigationID)
	if err != nil {
		return fmt.Errorf("failed to load graph for %s: %w", data.InvestigationID, err)
	}

	engine := paths.NewEngine(engineConfigFromEnv())
	result := engine.Synthesize(*g)

	extractClient, err := extract.NewExtractClient(extract.NewExtractClientParams{
		TokenEncoder:       util.GetEnvString("TOKEN_ENCODER", "o200k_base"),
		ParallelAiRequests: int(util.GetEnvNumeric("EXTRACT_PARALLEL_AI_REQUESTS", 4)),
		MaxRetries:         int(util.GetEnvNumeric("EXTRACT_MAX_RETRIES", 3)),
	})
	if err != nil {
		return err
	}
	extractClient.LabelPaths(lease.Context, g, result, aiClient)

	if err = storageClient.ReplacePaths(lease.Context, data.InvestigationID, result); err != nil {
		return fmt.Errorf("failed to save paths for %s: %w", data.InvestigationID, err)
	}

	if err = storageClient.UpdateInvestigationStatus(lease.Context, data.InvestigationID, store.InvestigationStatusReady); err != nil {
		return err
	}

	logger.Info(
		"[Queue] Synthesized paths",
		"investigation_id", data.InvestigationID,
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"paths", len(result),
	)

	return nil
}
